package accounting

import "time"

// DateOf truncates a timestamp to a UTC calendar date. All lease math works
// on whole days.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the given calendar month.
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the given calendar month.
func MonthEnd(year, month int) time.Time {
	return MonthStart(year, month).AddDate(0, 1, -1)
}

// MonthEndOf returns the last day of the month containing t.
func MonthEndOf(t time.Time) time.Time {
	return MonthEnd(t.Year(), int(t.Month()))
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	return MonthEnd(year, month).Day()
}

// overlapDays counts the days in the inclusive intersection of [aStart,aEnd]
// and [bStart,bEnd], zero when the intervals are disjoint.
func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
