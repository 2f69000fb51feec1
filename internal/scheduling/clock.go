package scheduling

import (
	"time"

	"github.com/sirupsen/logrus"
)

// locationOrLocal resolves an IANA timezone name, falling back to the host
// zone when the name is unknown. The fallback is a lenient degradation so a
// bad campaign timezone never aborts scheduling.
func locationOrLocal(tz string) *time.Location {
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logrus.Debugf("Unknown timezone %q, falling back to host local", tz)
		return time.Local
	}
	return loc
}

// HourInZone returns the hour of day (0-23) of t as rendered in the given timezone
func HourInZone(t time.Time, tz string) int {
	return t.In(locationOrLocal(tz)).Hour()
}

// WeekdayInZone returns the day of week (Sunday=0) of t as rendered in the given timezone
func WeekdayInZone(t time.Time, tz string) time.Weekday {
	return t.In(locationOrLocal(tz)).Weekday()
}

// SetHourInZone returns t with its hour in the given timezone set to hour,
// minutes and seconds zeroed. The result is rebuilt through the zone so a
// daylight-saving transition cannot shift the intended local hour.
func SetHourInZone(t time.Time, tz string, hour int) time.Time {
	loc := locationOrLocal(tz)
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), hour, 0, 0, 0, loc)
}

// AddDays adds n calendar days to t in the given timezone, preserving the
// local clock time across daylight-saving transitions.
func AddDays(t time.Time, tz string, n int) time.Time {
	loc := locationOrLocal(tz)
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day()+n, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), loc)
}
