package utils

import "testing"

func TestNormalizeSpace(t *testing.T) {
	cases := map[string]string{
		"  AC   Sleeper \n bus ": "AC Sleeper bus",
		"Bangalore":              "Bangalore",
		"   ":                    "",
	}
	for in, want := range cases {
		if got := NormalizeSpace(in); got != want {
			t.Fatalf("NormalizeSpace(%q) = %q, want %q", in, got, want)
		}
	}
}
