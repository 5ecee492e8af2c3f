package pagination_test

import (
	"testing"

	"news-portal/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	config := pagination.DefaultConfig()
	if config.DefaultPage != 1 || config.DefaultLimit != 20 || config.MaxLimit != 100 {
		t.Errorf("DefaultConfig() = %+v", config)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("with all env vars set", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "2")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "30")
		t.Setenv("PAGINATION_MAX_LIMIT", "200")

		config := pagination.LoadFromEnv()
		want := pagination.Config{DefaultPage: 2, DefaultLimit: 30, MaxLimit: 200}
		if config != want {
			t.Errorf("LoadFromEnv() = %+v, want %+v", config, want)
		}
	})

	t.Run("unparseable value falls back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "many")

		if got := pagination.LoadFromEnv(); got != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want defaults", got)
		}
	})

	t.Run("default above max falls back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "50")
		t.Setenv("PAGINATION_MAX_LIMIT", "10")

		if got := pagination.LoadFromEnv(); got != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want defaults", got)
		}
	})
}

func TestParams_Validate(t *testing.T) {
	config := pagination.DefaultConfig()
	if err := (pagination.Params{Page: 1, Limit: 20}).Validate(config); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if err := (pagination.Params{Page: 0, Limit: 20}).Validate(config); err == nil {
		t.Error("Validate() want error for page 0")
	}
	if err := (pagination.Params{Page: 1, Limit: 500}).Validate(config); err == nil {
		t.Error("Validate() want error for limit over max")
	}
}
