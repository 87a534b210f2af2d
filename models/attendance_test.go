package models

import "testing"

func TestValidPresent(t *testing.T) {
	cases := []struct {
		value float64
		want  bool
	}{
		{0, true},
		{0.5, true},
		{1, true},
		{0.7, false},
		{-1, false},
		{2, false},
		{0.25, false},
	}
	for _, tc := range cases {
		if got := ValidPresent(tc.value); got != tc.want {
			t.Errorf("ValidPresent(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestCheckPresent(t *testing.T) {
	if err := CheckPresent(PresentHalf); err != nil {
		t.Fatalf("0.5 must be accepted: %v", err)
	}
	if err := CheckPresent(0.7); err == nil {
		t.Fatalf("0.7 must be rejected")
	}
}

func TestAttendanceRate(t *testing.T) {
	cases := []struct {
		name    string
		present []float64
		want    int
	}{
		{"empty", nil, 0},
		{"all present", []float64{1, 1, 1}, 100},
		{"all absent", []float64{0, 0}, 0},
		{"mixed", []float64{1, 0.5, 0}, 50},
		{"rounded up", []float64{1, 1, 0}, 67},
		{"rounded down", []float64{1, 0, 0}, 33},
		{"single half", []float64{0.5}, 50},
	}
	for _, tc := range cases {
		if got := AttendanceRate(tc.present); got != tc.want {
			t.Errorf("%s: AttendanceRate(%v) = %d, want %d", tc.name, tc.present, got, tc.want)
		}
	}
}
