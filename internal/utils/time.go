package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// CalculateDuration renders the wall-clock span between two 12-hour clock
// times ("10:00 PM", "6:00 AM") as "8 hrs" / "30 mins" / "7 hrs 30 mins".
// An end before the start is treated as a next-day arrival.
func CalculateDuration(startTime, endTime string) string {
	sh, sm, err := parseClock12(startTime)
	if err != nil {
		return ""
	}
	eh, em, err := parseClock12(endTime)
	if err != nil {
		return ""
	}

	hours := eh - sh
	mins := em - sm
	if mins < 0 {
		hours--
		mins += 60
	}
	if hours < 0 {
		hours += 24
	}

	switch {
	case hours == 0:
		return fmt.Sprintf("%d mins", mins)
	case mins == 0:
		return fmt.Sprintf("%d hrs", hours)
	default:
		return fmt.Sprintf("%d hrs %d mins", hours, mins)
	}
}

// ClockMinutes converts a 12-hour clock time ("6:30 PM") to minutes after
// midnight.
func ClockMinutes(s string) (int, error) {
	h, m, err := parseClock12(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func parseClock12(s string) (hour, min int, err error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err = strconv.Atoi(hm[0])
	if err != nil {
		return 0, 0, err
	}
	min, err = strconv.Atoi(hm[1])
	if err != nil {
		return 0, 0, err
	}
	switch strings.ToUpper(fields[1]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, 0, fmt.Errorf("invalid meridiem in %q", s)
	}
	return hour, min, nil
}
