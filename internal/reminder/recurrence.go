package reminder

import (
	"strings"
	"time"
)

type Period string

const (
	PeriodNone    Period = ""
	PeriodDaily   Period = "Daily"
	PeriodWeekly  Period = "Weekly"
	PeriodMonthly Period = "Monthly"
	PeriodYearly  Period = "Yearly"
	PeriodCustom  Period = "Custom"
)

const DefaultAnchorHour = 8

// ParsePeriod maps a stored recurrence rule to a Period. Matching ignores
// case and surrounding spaces; anything unrecognized is PeriodNone.
func ParsePeriod(raw string) Period {
	raw = strings.TrimSpace(raw)
	for _, p := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodCustom} {
		if strings.EqualFold(raw, string(p)) {
			return p
		}
	}
	return PeriodNone
}

// Calendar fixes every due date to AnchorHour o'clock in Location so that due
// dates compare as whole days.
type Calendar struct {
	AnchorHour int
	Location   *time.Location
}

func NewCalendar(anchorHour int, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{AnchorHour: anchorHour, Location: loc}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Normalize truncates t to its calendar date in the calendar location and sets
// the time of day to the anchor hour.
func (c Calendar) Normalize(t time.Time) time.Time {
	y, m, d := t.In(c.location()).Date()
	return c.at(y, m, d)
}

func (c Calendar) at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, c.AnchorHour, 0, 0, 0, c.location())
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.Normalize(a).Equal(c.Normalize(b))
}

// NextDue returns the due date following anchor under the given rule. The
// second result is false when the rule yields no next occurrence: an empty or
// unknown period, or Custom without a positive day count.
func (c Calendar) NextDue(anchor time.Time, period Period, periodDays *int) (time.Time, bool) {
	y, m, d := c.Normalize(anchor).Date()

	switch period {
	case PeriodDaily:
		return c.at(y, m, d+1), true
	case PeriodWeekly:
		return c.at(y, m, d+7), true
	case PeriodMonthly:
		return c.addMonths(y, m, d, 1), true
	case PeriodYearly:
		return c.addMonths(y, m, d, 12), true
	case PeriodCustom:
		if periodDays == nil || *periodDays <= 0 {
			return time.Time{}, false
		}
		return c.at(y, m, d+*periodDays), true
	default:
		return time.Time{}, false
	}
}

// addMonths moves by whole months and clamps the day to the length of the
// target month, so Jan 31 + 1 month is the last day of February.
func (c Calendar) addMonths(y int, m time.Month, d, months int) time.Time {
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	ty, tm, _ := first.Date()
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return c.at(ty, tm, d)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
