package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidNumber = errors.New("must be a valid number")
	ErrInvalidRange  = errors.New("value out of valid range")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // Empty is valid (will use default)
	}
	_, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 300ms, 1s): %w", err)
	}
	return nil
}

// ValidateDurationAtLeast validates a duration that may not be shorter than min
func ValidateDurationAtLeast(min time.Duration) func(string) error {
	return func(s string) error {
		if err := ValidateDuration(s); err != nil || strings.TrimSpace(s) == "" {
			return err
		}
		d, _ := time.ParseDuration(strings.TrimSpace(s))
		if d < min {
			return fmt.Errorf("%w: must be at least %s", ErrInvalidRange, min)
		}
		return nil
	}
}

// ValidateIntRange validates that a string represents an integer within a range
func ValidateIntRange(min, max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return ErrInvalidNumber
		}
		if n < min || n > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidRange, min, max)
		}
		return nil
	}
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(s)] {
		return fmt.Errorf("invalid log level: must be one of trace, debug, info, warn, error")
	}
	return nil
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	switch strings.ToLower(s) {
	case "json", "pretty":
		return nil
	}
	return fmt.Errorf("invalid log format: must be json or pretty")
}

// ValidateFragments checks the raw fragment list, one per line or comma
// separated. Manifest values are single-quoted so a quote can never match.
func ValidateFragments(s string) error {
	for _, f := range SplitList(s) {
		if strings.ContainsAny(f, `'"`) {
			return fmt.Errorf("fragment %q must not contain quotes", f)
		}
	}
	return nil
}

// SplitList splits comma or newline separated input, dropping blanks
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
