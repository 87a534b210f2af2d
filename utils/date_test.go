package utils

import "testing"

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-09-02T19:30:00", "2 wrz 2025, 19:30"},
		{"2025-09-02T19:30:00Z", "2 wrz 2025, 19:30"},
		{"2026-01-01", "1 sty 2026, 00:00"},
		{"nie-data", "nie-data"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateOnly(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-10-15", "15 paź 2025"},
		{"2025-12-24T10:00:00", "24 gru 2025"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatDateOnly(tc.in); got != tc.want {
			t.Errorf("FormatDateOnly(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
