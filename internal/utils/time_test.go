package utils

import "testing"

func TestCalculateDuration(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"10:00 PM", "6:00 AM", "8 hrs"},
		{"6:00 AM", "12:30 PM", "6 hrs 30 mins"},
		{"9:30 AM", "9:55 AM", "25 mins"},
		{"11:45 PM", "12:15 AM", "30 mins"},
		{"12:00 PM", "12:00 AM", "12 hrs"},
		{"2:00 PM", "8:45 PM", "6 hrs 45 mins"},
	}
	for _, tc := range cases {
		if got := CalculateDuration(tc.start, tc.end); got != tc.want {
			t.Fatalf("CalculateDuration(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestCalculateDurationBadInput(t *testing.T) {
	if got := CalculateDuration("25:00", "6:00 AM"); got != "" {
		t.Fatalf("invalid input should give empty string, got %q", got)
	}
	if got := CalculateDuration("10:00 XX", "6:00 AM"); got != "" {
		t.Fatalf("invalid meridiem should give empty string, got %q", got)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-24")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatDate(d); got != "2024-03-24" {
		t.Fatalf("round trip = %q", got)
	}
	if _, err := ParseDate("24/03/2024"); err == nil {
		t.Fatal("slash-separated date should not parse")
	}
}
