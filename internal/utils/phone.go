package utils

import (
	"strings"
	"unicode"
)

// NormalizePhone strips formatting characters from a phone number, keeping a
// leading plus sign. "(555) 010-0200" becomes "5550100200".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneVariants returns the raw digits plus plausible E.164 forms of a phone
// number, for matching against suppression lists that may store either shape.
func PhoneVariants(phone string) []string {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil
	}

	seen := map[string]bool{normalized: true}
	variants := []string{normalized}

	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	if strings.HasPrefix(normalized, "+") {
		add(strings.TrimPrefix(normalized, "+"))
	} else {
		add("+" + normalized)
		// US-style ten-digit numbers also match their +1 form
		if len(normalized) == 10 {
			add("+1" + normalized)
		}
	}

	return variants
}
