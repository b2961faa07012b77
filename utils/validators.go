package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks presence and basic shape of an email address
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("Email is required")
	}
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("Please provide a valid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("Password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("Password must be at least 6 characters long")
	}
	return nil
}

// EventFields carries the user-supplied event attributes for validation
type EventFields struct {
	Title       string
	Description string
	DateTime    time.Time
	City        string
	Address     string
	Capacity    int
}

// ValidateEventFields validates a complete set of event attributes
func ValidateEventFields(f EventFields) error {
	if f.Title == "" || f.Description == "" || f.DateTime.IsZero() || f.City == "" || f.Address == "" || f.Capacity == 0 {
		return fmt.Errorf("All fields are required: title, description, dateTime, city, address, capacity")
	}
	if len(strings.TrimSpace(f.Title)) < 3 {
		return fmt.Errorf("Title must be at least 3 characters")
	}
	if len(strings.TrimSpace(f.Description)) < 10 {
		return fmt.Errorf("Description must be at least 10 characters")
	}
	if !f.DateTime.After(time.Now()) {
		return fmt.Errorf("Event date must be in the future")
	}
	if len(strings.TrimSpace(f.City)) < 2 {
		return fmt.Errorf("City must be at least 2 characters")
	}
	if len(strings.TrimSpace(f.Address)) < 5 {
		return fmt.Errorf("Address must be at least 5 characters")
	}
	if f.Capacity < 1 {
		return fmt.Errorf("Capacity must be a positive whole number")
	}
	return nil
}

// ParseDateTime accepts RFC3339 plus a few friendlier layouts
func ParseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format, use RFC3339 or YYYY-MM-DD")
}
