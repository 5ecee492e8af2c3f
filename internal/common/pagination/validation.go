package pagination

import "fmt"

// Validate checks that params fit within config.
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	return nil
}

// Validate checks the internal consistency of the configuration.
func (c Config) Validate() error {
	if c.DefaultPage < 1 {
		return fmt.Errorf("default page must be positive")
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("max limit must be positive")
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default limit must be between 1 and max limit (%d)", c.MaxLimit)
	}
	return nil
}
