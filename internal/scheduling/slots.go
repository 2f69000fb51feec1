package scheduling

import (
	"math/rand"
	"sort"
	"time"
)

// lookAheadDays bounds the day-by-day probe in NextValidTime
const lookAheadDays = 14

// MinSlotGap is the hard floor on spacing between adjacent scheduled sends
const MinSlotGap = time.Minute

// Test-mode call campaigns: fixed cadence, small capped batch, repeated waves
const (
	testModeWaves      = 3
	testModeMaxContact = 3
	testModeCadence    = 10 * time.Minute
)

// Anchor fractions of the send window for rotating wave start times,
// indexed by wave number modulo 4 (morning, late morning, afternoon, evening).
var waveAnchorFractions = [4]float64{0, 0.25, 0.5, 0.75}

// Slot pairs a generated send time with the contact and wave it belongs to
type Slot struct {
	ContactIndex int
	Wave         int
	At           time.Time
}

// NextValidTime walks forward from t to the next instant that falls on an
// allowed day inside the window's hour range. If t is already valid it is
// returned unchanged, so the operation is a fixed point. The probe is bounded
// to 14 days; when every probe day is disallowed it falls back to tomorrow at
// the start hour rather than erroring.
func NextValidTime(t time.Time, w Window) time.Time {
	probe := t
	for i := 0; i < lookAheadDays; i++ {
		if w.DayAllowed(WeekdayInZone(probe, w.Timezone)) {
			h := HourInZone(probe, w.Timezone)
			if h < w.StartHour {
				return SetHourInZone(probe, w.Timezone, w.StartHour)
			}
			if h < w.EndHour {
				return probe
			}
		}
		probe = SetHourInZone(AddDays(probe, w.Timezone, 1), w.Timezone, w.StartHour)
	}
	return SetHourInZone(AddDays(t, w.Timezone, 1), w.Timezone, w.StartHour)
}

// CallSlots generates one send time per contact attempt for a call campaign,
// wave-major. Test mode emits exactly 3 waves at a fixed 10-minute cadence,
// capped at 3 contacts. Production mode emits one wave with semi-random
// 15-30 minute spacing plus 0-10 minutes of jitter per slot; the jitter keeps
// the dial pattern from looking perfectly periodic.
func CallSlots(w Window, mode string, contactCount int, now time.Time) []time.Time {
	if contactCount == 0 {
		return nil
	}

	if mode == "test" {
		n := contactCount
		if n > testModeMaxContact {
			n = testModeMaxContact
		}
		slots := make([]time.Time, 0, n*testModeWaves)
		cursor := NextValidTime(now, w)
		for i := 0; i < n*testModeWaves; i++ {
			slots = append(slots, cursor.Add(time.Duration(i)*testModeCadence))
		}
		return slots
	}

	slots := make([]time.Time, 0, contactCount)
	cursor := NextValidTime(now, w)
	for i := 0; i < contactCount; i++ {
		if i > 0 {
			spacing := 15 + rand.Intn(16) // 15-30 minutes between contacts
			jitter := rand.Intn(11)       // 0-10 minutes of jitter
			cursor = NextValidTime(cursor.Add(time.Duration(spacing+jitter)*time.Minute), w)
		}
		slots = append(slots, cursor)
	}
	return slots
}

// WaveSlots generates send slots for SMS/email campaigns: the contact list is
// repeated once per wave, waves are spaced by the campaign frequency, each
// wave's anchor hour rotates through fixed fractions of the window, and
// contacts within a wave are spaced evenly. The result carries contact and
// wave indices since there may be more waves than contacts.
func WaveSlots(w Window, frequencyType string, frequencyValue, contactCount int, now time.Time) []Slot {
	if contactCount == 0 {
		return nil
	}

	waves, gapDays := waveCadence(frequencyType, frequencyValue)

	// Evenly spaced contacts, reserving a small end-of-window buffer
	interval := (w.Minutes() - 30) / contactCount
	if interval < 1 {
		interval = 1
	}

	base := NextValidTime(now, w)

	slots := make([]Slot, 0, waves*contactCount)
	for wave := 0; wave < waves; wave++ {
		waveDay := AddDays(base, w.Timezone, wave*gapDays)
		anchorOffset := int(float64(w.Minutes()) * waveAnchorFractions[wave%4])
		anchor := SetHourInZone(waveDay, w.Timezone, w.StartHour).Add(time.Duration(anchorOffset) * time.Minute)
		anchor = NextValidTime(anchor, w)

		for c := 0; c < contactCount; c++ {
			at := NextValidTime(anchor.Add(time.Duration(c*interval)*time.Minute), w)
			slots = append(slots, Slot{ContactIndex: c, Wave: wave + 1, At: at})
		}
	}

	EnforceSlotGap(slots)
	return slots
}

// waveCadence maps a campaign frequency onto a wave count and the day gap
// between waves. Unknown frequency types degrade to a single wave.
func waveCadence(frequencyType string, frequencyValue int) (waves, gapDays int) {
	if frequencyValue < 1 {
		frequencyValue = 1
	}
	switch frequencyType {
	case "weekly":
		return frequencyValue, 7
	case "monthly":
		return frequencyValue, 30
	case "days":
		return frequencyValue, 1
	default:
		return 1, 7
	}
}

// EnforceMinGap sorts the given times ascending and pushes forward any entry
// closer than MinSlotGap to its predecessor, guaranteeing a hard floor on
// inter-message spacing regardless of upstream rounding.
func EnforceMinGap(times []time.Time) []time.Time {
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) < MinSlotGap {
			times[i] = times[i-1].Add(MinSlotGap)
		}
	}
	return times
}

// EnforceSlotGap applies the same minimum-spacing pass to contact/wave slots
func EnforceSlotGap(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].At.Before(slots[j].At) })
	for i := 1; i < len(slots); i++ {
		if slots[i].At.Sub(slots[i-1].At) < MinSlotGap {
			slots[i].At = slots[i-1].At.Add(MinSlotGap)
		}
	}
}
