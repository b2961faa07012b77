package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAvailableSpots(t *testing.T) {
	cases := []struct {
		capacity   int
		registered int64
		want       int64
	}{
		{10, 0, 10},
		{10, 3, 7},
		{10, 10, 0},
		{5, 8, 0}, // capacity lowered below registration count
		{1, 0, 1},
	}
	for _, tc := range cases {
		if got := AvailableSpots(tc.capacity, tc.registered); got != tc.want {
			t.Errorf("AvailableSpots(%d, %d) = %d, want %d", tc.capacity, tc.registered, got, tc.want)
		}
	}
}

// The API envelope is camelCase throughout; timestamps must not leak their
// snake_case storage names.
func TestEventJSONFieldNames(t *testing.T) {
	now := time.Now()
	out, err := json.Marshal(Event{Title: "Go Meetup", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatal(err)
	}
	body := string(out)

	for _, want := range []string{`"createdAt"`, `"updatedAt"`, `"dateTime"`, `"availableSpots"`} {
		if !strings.Contains(body, want) {
			t.Errorf("serialized event is missing %s: %s", want, body)
		}
	}
	for _, reject := range []string{`"created_at"`, `"updated_at"`, `"date_time"`} {
		if strings.Contains(body, reject) {
			t.Errorf("serialized event leaked storage field %s: %s", reject, body)
		}
	}
}
