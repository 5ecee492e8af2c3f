package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents security configuration.
type SecurityConfig struct {
	Security struct {
		Password struct {
			MinLength     int      `yaml:"min_length"`
			WeakPasswords []string `yaml:"weak_passwords"`
		} `yaml:"password"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			ExpiryHours int `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// LoadSecurityConfig loads security configuration from YAML file.
// The path parameter is expected to come from a trusted source (environment or hardcoded default).
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (env or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// validateSecurityConfig validates the loaded configuration.
func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Password.MinLength <= 0 {
		return fmt.Errorf("min_length must be positive")
	}
	if config.Security.Password.MinLength < 8 {
		return fmt.Errorf("min_length must be at least 8")
	}
	// bcrypt の上限
	if config.Security.Password.MinLength > 72 {
		return fmt.Errorf("min_length must not exceed 72")
	}
	if config.Security.JWT.ExpiryHours < 0 {
		return fmt.Errorf("jwt expiry_hours must not be negative")
	}
	return nil
}

// GetMinPasswordLength returns the minimum password length requirement.
func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Password.MinLength
}

// GetWeakPasswords returns the list of weak passwords.
func (c *SecurityConfig) GetWeakPasswords() []string {
	return c.Security.Password.WeakPasswords
}

// GetPublicEndpoints returns the list of public endpoints.
func (c *SecurityConfig) GetPublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// GetJWTExpiryHours returns the token lifetime override in hours. Zero means unset.
func (c *SecurityConfig) GetJWTExpiryHours() int {
	return c.Security.JWT.ExpiryHours
}
