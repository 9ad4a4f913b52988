package utils

import (
	"testing"
	"time"
)

func TestParseDeparture(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01T08:30:00.000Z", time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2025-03-01T14:00", time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)},
		{" 2025-03-01 14:00 ", time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2025-03-01T14:00:15", time.Date(2025, 3, 1, 8, 30, 15, 0, time.UTC)},
		{"2025-03-01T14:00:15.250", time.Date(2025, 3, 1, 8, 30, 15, 250000000, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDeparture(tc.in, ist)
		if err != nil {
			t.Fatalf("ParseDeparture(%q) error: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDeparture(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseDeparture("tomorrow", ist); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestOptionalString(t *testing.T) {
	if OptionalString("   ") != nil {
		t.Fatalf("blank should be nil")
	}
	if got := OptionalString(" hi "); got == nil || *got != "hi" {
		t.Fatalf("OptionalString = %v", got)
	}
}

func TestSafeAndNormalize(t *testing.T) {
	if Safe(" ", "-") != "-" || Safe("x", "-") != "x" {
		t.Fatalf("Safe misbehaves")
	}
	if NormalizeSpace("  a   b \n c ") != "a b c" {
		t.Fatalf("NormalizeSpace misbehaves")
	}
}
