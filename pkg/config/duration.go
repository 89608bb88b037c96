package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration validates that a duration is greater than zero.
func ValidatePositiveDuration(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, d)
	}
	return nil
}

// ValidateDurationRange validates that a duration is within [min, max] inclusive.
func ValidateDurationRange(name string, d, min, max time.Duration) error {
	if d < min || d > max {
		return fmt.Errorf("%s must be between %v and %v, got %v", name, min, max, d)
	}
	return nil
}
