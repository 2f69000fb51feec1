package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var validDayNames = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// validateScheduleWindow rejects bad campaign schedule settings at the
// boundary, before any state is created.
func validateScheduleWindow(startHour, endHour int, days []string, timezone string) error {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 23 {
		return errors.New("hours must be between 0 and 23")
	}
	if startHour >= endHour {
		return errors.New("start hour must be before end hour")
	}
	for _, day := range days {
		if !validDayNames[strings.ToLower(strings.TrimSpace(day))] {
			return fmt.Errorf("unknown day name: %s", day)
		}
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return fmt.Errorf("unknown timezone: %s", timezone)
		}
	}
	return nil
}

// joinDays normalizes a day-name list to the comma-joined storage form
func joinDays(days []string) string {
	normalized := make([]string, 0, len(days))
	for _, day := range days {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(day)))
	}
	return strings.Join(normalized, ",")
}

// splitDays splits the storage form back into a list for responses
func splitDays(days string) []string {
	if days == "" {
		return nil
	}
	return strings.Split(days, ",")
}

// parseStartAt parses an optional explicit start instant, defaulting to now
func parseStartAt(startAt *string) (time.Time, error) {
	if startAt == nil || *startAt == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, *startAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_at: %w", err)
	}
	return t, nil
}
