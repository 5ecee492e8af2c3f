package worker

import (
	"strings"
	"testing"
	"time"

	"news-portal/internal/config"
)

func validWorkerConfig() config.WorkerConfig {
	return config.WorkerConfig{
		PruneSchedule:      "@hourly",
		QueueGaugeSchedule: "*/5 * * * *",
		Timezone:           "UTC",
		HealthPort:         9091,
		JobTimeout:         time.Minute,
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(validWorkerConfig()); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg := validWorkerConfig()
	cfg.PruneSchedule = "30 5 * * *"
	cfg.Timezone = "Asia/Tokyo"
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("expected valid custom config, got %v", err)
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.WorkerConfig)
		want   string
	}{
		{
			name:   "bad prune schedule",
			mutate: func(c *config.WorkerConfig) { c.PruneSchedule = "every hour" },
			want:   "PRUNE_SCHEDULE",
		},
		{
			name:   "six field gauge schedule",
			mutate: func(c *config.WorkerConfig) { c.QueueGaugeSchedule = "0 */5 * * * *" },
			want:   "QUEUE_GAUGE_SCHEDULE",
		},
		{
			name:   "empty timezone",
			mutate: func(c *config.WorkerConfig) { c.Timezone = "" },
			want:   "WORKER_TIMEZONE",
		},
		{
			name:   "unknown timezone",
			mutate: func(c *config.WorkerConfig) { c.Timezone = "Mars/Olympus" },
			want:   "WORKER_TIMEZONE",
		},
		{
			name:   "privileged port",
			mutate: func(c *config.WorkerConfig) { c.HealthPort = 80 },
			want:   "WORKER_HEALTH_PORT",
		},
		{
			name:   "port too high",
			mutate: func(c *config.WorkerConfig) { c.HealthPort = 70000 },
			want:   "WORKER_HEALTH_PORT",
		},
		{
			name:   "zero timeout",
			mutate: func(c *config.WorkerConfig) { c.JobTimeout = 0 },
			want:   "WORKER_JOB_TIMEOUT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validWorkerConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %s, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateConfig_MultipleErrors(t *testing.T) {
	cfg := validWorkerConfig()
	cfg.PruneSchedule = "bad"
	cfg.HealthPort = 1

	err := ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"PRUNE_SCHEDULE", "WORKER_HEALTH_PORT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestLocation(t *testing.T) {
	cfg := validWorkerConfig()
	cfg.Timezone = "Asia/Tokyo"
	if got := Location(cfg).String(); got != "Asia/Tokyo" {
		t.Errorf("expected Asia/Tokyo, got %s", got)
	}

	cfg.Timezone = "nowhere"
	if got := Location(cfg); got != time.UTC {
		t.Errorf("expected UTC fallback, got %s", got)
	}
}
