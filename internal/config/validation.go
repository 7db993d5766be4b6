package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors holds multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidateHostConfig validates a host configuration
func ValidateHostConfig(host *HostConfig) ValidationErrors {
	var errors ValidationErrors

	if host.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "host",
			Message: "host address is required",
		})
	} else if strings.ContainsAny(host.Host, " \t\n") {
		errors = append(errors, ValidationError{
			Field:   "host",
			Message: "host address must not contain whitespace",
		})
	}

	if host.User == "" {
		errors = append(errors, ValidationError{
			Field:   "user",
			Message: "user is required",
		})
	}

	if host.Port < 0 || host.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "port",
			Message: fmt.Sprintf("port must be between 0 and 65535, got %d", host.Port),
		})
	}

	return errors
}
