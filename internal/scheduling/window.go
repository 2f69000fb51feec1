package scheduling

import (
	"strings"
	"time"
)

var dayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Window describes when a campaign is allowed to reach contacts: an
// allowed-day set and a local-hour range [StartHour, EndHour) in Timezone.
type Window struct {
	Days      map[time.Weekday]bool
	StartHour int
	EndHour   int
	Timezone  string
}

// NewWindow builds a Window from a comma-joined day-name list as stored on a
// campaign. An empty or unparseable day list defaults to Monday through Friday.
func NewWindow(allowedDays string, startHour, endHour int, timezone string) Window {
	return Window{
		Days:      ParseDays(allowedDays),
		StartHour: startHour,
		EndHour:   endHour,
		Timezone:  timezone,
	}
}

// ParseDays parses a comma-joined list of day names into a weekday set.
// Unknown names are ignored; an empty result defaults to weekdays.
func ParseDays(allowedDays string) map[time.Weekday]bool {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(allowedDays, ",") {
		if d, ok := dayNames[strings.ToLower(strings.TrimSpace(part))]; ok {
			days[d] = true
		}
	}
	if len(days) == 0 {
		for d := time.Monday; d <= time.Friday; d++ {
			days[d] = true
		}
	}
	return days
}

// FormatDays renders a weekday set back to the comma-joined storage form,
// ordered Sunday first.
func FormatDays(days map[time.Weekday]bool) string {
	ordered := []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	var names []string
	for _, d := range ordered {
		if days[d] {
			names = append(names, strings.ToLower(d.String()))
		}
	}
	return strings.Join(names, ",")
}

// DayAllowed reports whether the window permits the given weekday
func (w Window) DayAllowed(d time.Weekday) bool {
	return w.Days[d]
}

// Contains reports whether t falls on an allowed day inside [StartHour, EndHour)
// as perceived in the window's timezone.
func (w Window) Contains(t time.Time) bool {
	if !w.DayAllowed(WeekdayInZone(t, w.Timezone)) {
		return false
	}
	h := HourInZone(t, w.Timezone)
	return h >= w.StartHour && h < w.EndHour
}

// Minutes returns the width of the daily send window in minutes
func (w Window) Minutes() int {
	return (w.EndHour - w.StartHour) * 60
}
