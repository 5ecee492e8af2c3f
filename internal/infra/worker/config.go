package worker

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"news-portal/internal/config"
)

// scheduleParser accepts the five-field format and descriptors such as @hourly.
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateConfig checks the worker settings loaded by config.Load.
// All problems are reported together.
//
// Validation rules:
//   - PruneSchedule, QueueGaugeSchedule: valid cron expressions or descriptors
//   - Timezone: a valid IANA timezone name
//   - HealthPort: 1024-65535 (avoid privileged ports)
//   - JobTimeout: between 1 second and 1 hour
func ValidateConfig(c config.WorkerConfig) error {
	var errs []error

	if _, err := scheduleParser.Parse(c.PruneSchedule); err != nil {
		errs = append(errs, fmt.Errorf("PRUNE_SCHEDULE %q: %w", c.PruneSchedule, err))
	}
	if _, err := scheduleParser.Parse(c.QueueGaugeSchedule); err != nil {
		errs = append(errs, fmt.Errorf("QUEUE_GAUGE_SCHEDULE %q: %w", c.QueueGaugeSchedule, err))
	}
	if c.Timezone == "" {
		errs = append(errs, errors.New("WORKER_TIMEZONE must not be empty"))
	} else if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("WORKER_TIMEZONE %q: %w", c.Timezone, err))
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		errs = append(errs, fmt.Errorf("WORKER_HEALTH_PORT %d out of range [1024, 65535]", c.HealthPort))
	}
	if c.JobTimeout < time.Second || c.JobTimeout > time.Hour {
		errs = append(errs, fmt.Errorf("WORKER_JOB_TIMEOUT %s out of range [1s, 1h]", c.JobTimeout))
	}

	return errors.Join(errs...)
}

// Location resolves the configured timezone, falling back to UTC.
func Location(c config.WorkerConfig) *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || c.Timezone == "" {
		return time.UTC
	}
	return loc
}
