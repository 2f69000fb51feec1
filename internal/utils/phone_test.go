package utils

import (
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"(555) 010-0200", "5550100200"},
		{"+1 555 010 0200", "+15550100200"},
		{"555.010.0200", "5550100200"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPhoneVariants(t *testing.T) {
	t.Parallel()

	got := PhoneVariants("555-010-0200")

	want := map[string]bool{"5550100200": true, "+5550100200": true, "+15550100200": true}
	if len(got) != len(want) {
		t.Fatalf("variants = %v, want %d entries", got, len(want))
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected variant %q", v)
		}
	}

	if got := PhoneVariants(""); got != nil {
		t.Errorf("empty phone should yield no variants, got %v", got)
	}
}
