package utils

import (
	"strings"
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail(""); err == nil {
		t.Error("expected error for empty email")
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Error("expected error for malformed email")
	}
	if err := ValidateEmail("user@host"); err == nil {
		t.Error("expected error for email without TLD")
	}
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Errorf("unexpected error for valid email: %v", err)
	}
	if err := ValidateEmail("  user@example.com  "); err != nil {
		t.Errorf("unexpected error for valid email with whitespace: %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	if err := ValidatePassword("12345"); err == nil {
		t.Error("expected error for password under 6 characters")
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Errorf("unexpected error for valid password: %v", err)
	}
}

func validEventFields() EventFields {
	return EventFields{
		Title:       "Go Meetup",
		Description: "An evening of talks about Go.",
		DateTime:    time.Now().Add(48 * time.Hour),
		City:        "Nairobi",
		Address:     "123 Main Street",
		Capacity:    50,
	}
}

func TestValidateEventFields(t *testing.T) {
	if err := ValidateEventFields(validEventFields()); err != nil {
		t.Fatalf("unexpected error for valid fields: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*EventFields)
		want   string
	}{
		{"missing title", func(f *EventFields) { f.Title = "" }, "All fields are required"},
		{"short title", func(f *EventFields) { f.Title = "Go" }, "Title must be at least 3 characters"},
		{"short description", func(f *EventFields) { f.Description = "too short" }, "Description must be at least 10 characters"},
		{"past date", func(f *EventFields) { f.DateTime = time.Now().Add(-time.Hour) }, "Event date must be in the future"},
		{"short city", func(f *EventFields) { f.City = "X" }, "City must be at least 2 characters"},
		{"short address", func(f *EventFields) { f.Address = "St 1" }, "Address must be at least 5 characters"},
		{"zero capacity", func(f *EventFields) { f.Capacity = 0 }, "All fields are required"},
		{"negative capacity", func(f *EventFields) { f.Capacity = -3 }, "Capacity must be a positive whole number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validEventFields()
			tc.mutate(&fields)
			err := ValidateEventFields(fields)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %q, want message containing %q", err.Error(), tc.want)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	inputs := []string{
		"2030-05-01T18:00:00Z",
		"2030-05-01",
		"2030-05-01 18:00",
		"2030-05-01 18:00:00",
	}
	for _, in := range inputs {
		if _, err := ParseDateTime(in); err != nil {
			t.Errorf("ParseDateTime(%q) unexpected error: %v", in, err)
		}
	}

	if _, err := ParseDateTime("May 1st 2030"); err == nil {
		t.Error("expected error for unsupported layout")
	}
	if _, err := ParseDateTime(""); err == nil {
		t.Error("expected error for empty input")
	}
}
