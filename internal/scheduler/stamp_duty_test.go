package scheduler

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInReminderWindow(t *testing.T) {
	cases := []struct {
		date time.Time
		want bool
	}{
		{day(2025, time.March, 27), true},  // last 5 days of March
		{day(2025, time.March, 26), false}, // one day too early
		{day(2025, time.March, 31), true},  // quarter end itself
		{day(2025, time.June, 28), true},   // June has 30 days
		{day(2025, time.June, 25), false},
		{day(2025, time.December, 29), true},
		{day(2025, time.April, 30), false}, // not a quarter-end month
		{day(2025, time.February, 28), false},
	}

	for _, tc := range cases {
		if got := InReminderWindow(tc.date); got != tc.want {
			t.Errorf("InReminderWindow(%s) = %v, want %v", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestQuarterBounds(t *testing.T) {
	start, end := QuarterBounds(day(2025, time.May, 10))
	if !start.Equal(day(2025, time.April, 1)) || !end.Equal(day(2025, time.June, 30)) {
		t.Errorf("Q2 bounds = [%s, %s]", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	start, end = QuarterBounds(day(2025, time.December, 31))
	if !start.Equal(day(2025, time.October, 1)) || !end.Equal(day(2025, time.December, 31)) {
		t.Errorf("Q4 bounds = [%s, %s]", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	start, end = QuarterBounds(day(2025, time.January, 1))
	if !start.Equal(day(2025, time.January, 1)) || !end.Equal(day(2025, time.March, 31)) {
		t.Errorf("Q1 bounds = [%s, %s]", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
}
