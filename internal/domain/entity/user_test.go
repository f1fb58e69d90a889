package entity

import (
	"testing"
	"time"
)

func TestFormatBalance(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0h 0min"},
		{"minutes only", 45 * time.Minute, "0h 45min"},
		{"hours only", 3 * time.Hour, "3h 0min"},
		{"mixed", 2*time.Hour + 30*time.Minute, "2h 30min"},
		{"negative", -(3*time.Hour + 15*time.Minute), "-3h 15min"},
		{"negative minutes only", -20 * time.Minute, "-0h 20min"},
		{"large", 26 * time.Hour, "26h 0min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatBalance(tc.d); got != tc.want {
				t.Errorf("FormatBalance(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestBalance(t *testing.T) {
	u := &User{TimeSent: 2 * time.Hour, TimeReceived: 45 * time.Minute}
	if got, want := u.Balance(), -(time.Hour + 15*time.Minute); got != want {
		t.Errorf("Balance() = %v, want %v", got, want)
	}
}

func TestValidServiceDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want bool
	}{
		{14 * time.Minute, false},
		{15 * time.Minute, true},
		{time.Hour, true},
		{4 * time.Hour, true},
		{4*time.Hour + time.Minute, false},
		{0, false},
		{-time.Hour, false},
	}
	for _, tc := range cases {
		if got := ValidServiceDuration(tc.d); got != tc.want {
			t.Errorf("ValidServiceDuration(%v) = %v, want %v", tc.d, got, tc.want)
		}
	}
}
