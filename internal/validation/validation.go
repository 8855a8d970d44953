// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidatePassword checks if a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	// Prevent unreasonable inputs; bcrypt truncates past 72 bytes anyway
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateName checks the display name supplied at registration.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}

	if len(trimmed) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidateProfileStatus checks the required professional status field on a profile.
func ValidateProfileStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("status is required")
	}
	if len(status) > 100 {
		return fmt.Errorf("status must not exceed 100 characters")
	}
	return nil
}

// ParseSkills splits a comma-separated skills string into a trimmed, non-empty list.
func ParseSkills(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("skills is required")
	}
	return skills, nil
}
