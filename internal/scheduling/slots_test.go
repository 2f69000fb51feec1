package scheduling

import (
	"testing"
	"time"
)

func businessWindow() Window {
	return NewWindow("monday,tuesday,wednesday,thursday,friday", 9, 17, "UTC")
}

func TestNextValidTime(t *testing.T) {
	t.Parallel()

	w := businessWindow()

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "inside window is returned unchanged",
			from: time.Date(2025, 3, 3, 12, 30, 0, 0, time.UTC), // Monday noon
			want: time.Date(2025, 3, 3, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "before start hour snaps forward to start",
			from: time.Date(2025, 3, 3, 6, 15, 0, 0, time.UTC),
			want: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "after end hour advances to next day start",
			from: time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "weekend advances to Monday start",
			from: time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC), // Saturday
			want: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "Friday evening skips the weekend",
			from: time.Date(2025, 3, 7, 17, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NextValidTime(tt.from, w)
			if !got.Equal(tt.want) {
				t.Errorf("NextValidTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextValidTimeIsFixedPoint(t *testing.T) {
	t.Parallel()

	w := businessWindow()
	starts := []time.Time{
		time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 4, 30, 0, 0, time.UTC),
	}

	for _, from := range starts {
		once := NextValidTime(from, w)
		twice := NextValidTime(once, w)
		if !twice.Equal(once) {
			t.Errorf("NextValidTime not idempotent: %v -> %v -> %v", from, once, twice)
		}
	}
}

func TestNextValidTimeAllDaysDisallowedFallsBack(t *testing.T) {
	t.Parallel()

	w := Window{Days: map[time.Weekday]bool{}, StartHour: 9, EndHour: 17, Timezone: "UTC"}
	from := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	got := NextValidTime(from, w)
	want := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("fallback = %v, want tomorrow at start hour %v", got, want)
	}
}

func TestEmptyAllowedDaysDefaultsToWeekdays(t *testing.T) {
	t.Parallel()

	days := ParseDays("")
	for d := time.Monday; d <= time.Friday; d++ {
		if !days[d] {
			t.Errorf("weekday %v missing from default set", d)
		}
	}
	if days[time.Saturday] || days[time.Sunday] {
		t.Error("weekend days should not be in the default set")
	}
}

func TestCallSlotsZeroContacts(t *testing.T) {
	t.Parallel()

	slots := CallSlots(businessWindow(), "production", 0, time.Now())
	if len(slots) != 0 {
		t.Errorf("expected empty slots for zero contacts, got %d", len(slots))
	}
}

func TestCallSlotsTestMode(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	slots := CallSlots(businessWindow(), "test", 5, now)

	// min(5, 3) contacts x 3 waves
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if gap := slots[i].Sub(slots[i-1]); gap != 10*time.Minute {
			t.Errorf("slot %d gap = %v, want 10m", i, gap)
		}
	}
	if !slots[0].Equal(now) {
		t.Errorf("first slot = %v, want %v", slots[0], now)
	}
}

func TestCallSlotsProduction(t *testing.T) {
	t.Parallel()

	w := businessWindow()
	now := time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)
	slots := CallSlots(w, "production", 8, now)

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	for i, s := range slots {
		if !w.Contains(s) {
			t.Errorf("slot %d (%v) outside the send window", i, s)
		}
		if i == 0 {
			continue
		}
		gap := s.Sub(slots[i-1])
		if gap < 15*time.Minute {
			t.Errorf("slot %d gap = %v, want at least 15m", i, gap)
		}
	}
}

func TestWaveSlotsWeekly(t *testing.T) {
	t.Parallel()

	w := businessWindow()
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC) // Monday at window start
	slots := WaveSlots(w, "weekly", 3, 2, now)

	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}

	// Wave anchors rotate through fractions {0, 0.25, 0.5} of the 480-minute window
	wantAnchors := []time.Time{
		time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 13, 0, 0, 0, time.UTC),
	}
	for wave := 0; wave < 3; wave++ {
		first := slots[wave*2]
		if first.Wave != wave+1 {
			t.Errorf("slot %d wave = %d, want %d", wave*2, first.Wave, wave+1)
		}
		if first.ContactIndex != 0 {
			t.Errorf("slot %d contact = %d, want 0", wave*2, first.ContactIndex)
		}
		if !first.At.Equal(wantAnchors[wave]) {
			t.Errorf("wave %d anchor = %v, want %v", wave+1, first.At, wantAnchors[wave])
		}
	}

	// Contacts within a wave are spaced (480-30)/2 = 225 minutes apart
	if gap := slots[1].At.Sub(slots[0].At); gap != 225*time.Minute {
		t.Errorf("intra-wave spacing = %v, want 225m", gap)
	}
}

func TestWaveSlotsZeroContacts(t *testing.T) {
	t.Parallel()

	slots := WaveSlots(businessWindow(), "weekly", 3, 0, time.Now())
	if len(slots) != 0 {
		t.Errorf("expected empty slots for zero contacts, got %d", len(slots))
	}
}

func TestWaveSlotsStayInsideWindow(t *testing.T) {
	t.Parallel()

	w := NewWindow("tuesday,thursday", 10, 15, "America/New_York")
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	slots := WaveSlots(w, "monthly", 2, 4, now)

	for i, s := range slots {
		if !w.Contains(s.At) {
			t.Errorf("slot %d (%v) outside window", i, s.At)
		}
	}
}

func TestEnforceMinGap(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(30 * time.Second), // out of order and too close
		base,
		base.Add(45 * time.Second),
		base.Add(10 * time.Minute),
	}

	got := EnforceMinGap(times)

	for i := 1; i < len(got); i++ {
		if got[i].Sub(got[i-1]) < time.Minute {
			t.Errorf("gap between %d and %d below one minute: %v", i-1, i, got[i].Sub(got[i-1]))
		}
		if got[i].Before(got[i-1]) {
			t.Errorf("times not sorted at %d", i)
		}
	}
	// Untouched entries keep their original value
	if !got[0].Equal(base) {
		t.Errorf("first time = %v, want %v", got[0], base)
	}
}
