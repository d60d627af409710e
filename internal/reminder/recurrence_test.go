package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func utcAt(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		raw  string
		want Period
	}{
		{raw: "Daily", want: PeriodDaily},
		{raw: "weekly", want: PeriodWeekly},
		{raw: " MONTHLY ", want: PeriodMonthly},
		{raw: "Yearly", want: PeriodYearly},
		{raw: "Custom", want: PeriodCustom},
		{raw: "", want: PeriodNone},
		{raw: "Fortnightly", want: PeriodNone},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePeriod(tt.raw))
		})
	}
}

func TestCalendar_Normalize(t *testing.T) {
	cal := NewCalendar(DefaultAnchorHour, time.UTC)

	got := cal.Normalize(time.Date(2024, time.March, 15, 23, 59, 59, 999, time.UTC))
	assert.Equal(t, utcAt(2024, time.March, 15, 8), got)

	got = cal.Normalize(time.Date(2024, time.March, 15, 2, 0, 0, 0, time.UTC))
	assert.Equal(t, utcAt(2024, time.March, 15, 8), got)

	assert.Equal(t, got, cal.Normalize(got))
}

func TestCalendar_NormalizeUsesConfiguredLocation(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	cal := NewCalendar(8, istanbul)

	// 22:30 UTC on the 14th is already the 15th in UTC+3.
	got := cal.Normalize(time.Date(2024, time.March, 14, 22, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, time.March, 15, 8, 0, 0, 0, istanbul), got)
	assert.True(t, got.Equal(utcAt(2024, time.March, 15, 5)))
}

func TestCalendar_NextDue(t *testing.T) {
	cal := NewCalendar(DefaultAnchorHour, time.UTC)

	tests := []struct {
		name       string
		anchor     time.Time
		period     Period
		periodDays *int
		want       time.Time
		wantOK     bool
	}{
		{name: "daily", anchor: utcAt(2024, time.March, 14, 15), period: PeriodDaily, want: utcAt(2024, time.March, 15, 8), wantOK: true},
		{name: "daily across year end", anchor: utcAt(2023, time.December, 31, 8), period: PeriodDaily, want: utcAt(2024, time.January, 1, 8), wantOK: true},
		{name: "weekly", anchor: utcAt(2024, time.March, 14, 8), period: PeriodWeekly, want: utcAt(2024, time.March, 21, 8), wantOK: true},
		{name: "monthly", anchor: utcAt(2024, time.March, 14, 10), period: PeriodMonthly, want: utcAt(2024, time.April, 14, 8), wantOK: true},
		{name: "monthly clamps to leap february", anchor: utcAt(2024, time.January, 31, 8), period: PeriodMonthly, want: utcAt(2024, time.February, 29, 8), wantOK: true},
		{name: "monthly clamps to february", anchor: utcAt(2023, time.January, 31, 8), period: PeriodMonthly, want: utcAt(2023, time.February, 28, 8), wantOK: true},
		{name: "monthly clamps to 30 day month", anchor: utcAt(2024, time.March, 31, 8), period: PeriodMonthly, want: utcAt(2024, time.April, 30, 8), wantOK: true},
		{name: "monthly across year end", anchor: utcAt(2024, time.December, 15, 8), period: PeriodMonthly, want: utcAt(2025, time.January, 15, 8), wantOK: true},
		{name: "yearly", anchor: utcAt(2024, time.March, 14, 8), period: PeriodYearly, want: utcAt(2025, time.March, 14, 8), wantOK: true},
		{name: "yearly from leap day", anchor: utcAt(2024, time.February, 29, 8), period: PeriodYearly, want: utcAt(2025, time.February, 28, 8), wantOK: true},
		{name: "custom five days", anchor: utcAt(2024, time.March, 14, 8), period: PeriodCustom, periodDays: intPtr(5), want: utcAt(2024, time.March, 19, 8), wantOK: true},
		{name: "custom without days", anchor: utcAt(2024, time.March, 14, 8), period: PeriodCustom, wantOK: false},
		{name: "custom zero days", anchor: utcAt(2024, time.March, 14, 8), period: PeriodCustom, periodDays: intPtr(0), wantOK: false},
		{name: "custom negative days", anchor: utcAt(2024, time.March, 14, 8), period: PeriodCustom, periodDays: intPtr(-3), wantOK: false},
		{name: "none", anchor: utcAt(2024, time.March, 14, 8), period: PeriodNone, wantOK: false},
		{name: "none ignores period days", anchor: utcAt(2024, time.March, 14, 8), period: PeriodNone, periodDays: intPtr(5), wantOK: false},
		{name: "unknown", anchor: utcAt(2024, time.March, 14, 8), period: Period("Hourly"), wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cal.NextDue(tt.anchor, tt.period, tt.periodDays)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalendar_NextDueIsNormalizedAndDeterministic(t *testing.T) {
	cal := NewCalendar(6, time.FixedZone("UTC-5", -5*60*60))
	periods := []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodCustom}

	anchor := time.Date(2023, time.November, 28, 19, 45, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		for _, period := range periods {
			got, ok := cal.NextDue(anchor, period, intPtr(3))
			require.True(t, ok)
			again, _ := cal.NextDue(anchor, period, intPtr(3))

			assert.Equal(t, got, again)
			assert.Equal(t, got, cal.Normalize(got))
			assert.True(t, got.After(cal.Normalize(anchor)))
		}
		anchor = anchor.Add(13 * time.Hour)
	}
}

func TestCalendar_DailyAndWeeklyOffsets(t *testing.T) {
	cal := NewCalendar(DefaultAnchorHour, time.UTC)

	anchor := utcAt(2024, time.February, 20, 8)
	for i := 0; i < 30; i++ {
		daily, ok := cal.NextDue(anchor, PeriodDaily, nil)
		require.True(t, ok)
		assert.Equal(t, anchor.AddDate(0, 0, 1), daily)

		weekly, ok := cal.NextDue(anchor, PeriodWeekly, nil)
		require.True(t, ok)
		assert.Equal(t, anchor.AddDate(0, 0, 7), weekly)

		anchor = daily
	}
}

func TestCalendar_SameDay(t *testing.T) {
	cal := NewCalendar(DefaultAnchorHour, time.UTC)

	assert.True(t, cal.SameDay(utcAt(2024, time.March, 15, 0), utcAt(2024, time.March, 15, 23)))
	assert.False(t, cal.SameDay(utcAt(2024, time.March, 15, 23), utcAt(2024, time.March, 16, 0)))
}
