package forecast

import (
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseTimestamp(s)
	require.NoError(t, err)
	return ts
}

func TestSynthesize_HourlySpacing(t *testing.T) {
	last := mustParse(t, "2024-03-30T22:00:00")
	for _, hours := range []int{1, 5, 24, 100} {
		rows, err := Synthesize(last, hours, DefaultValues(), nil)
		require.NoError(t, err)
		require.Len(t, rows, hours)
		assert.Equal(t, last.Add(time.Hour), rows[0].Timestamp)
		for i := 1; i < len(rows); i++ {
			assert.Equal(t, time.Hour, rows[i].Timestamp.Sub(rows[i-1].Timestamp), "row %d", i)
		}
	}
}

func TestSynthesize_NewYearExample(t *testing.T) {
	rows, err := Synthesize(mustParse(t, "2024-01-01T00:00:00"), 24, DefaultValues(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 24)

	for i, r := range rows[:23] {
		assert.Equal(t, i+1, r.Hour)
		assert.Equal(t, 1, r.Timestamp.Day())
		assert.Equal(t, 0, r.WeekdayIndex, "Jan 1 2024 is a Monday")
		assert.Equal(t, r.WeekdayIndex, r.DayOfWeek)
		assert.Equal(t, 1, r.Month)
		assert.False(t, r.IsWeekend)
	}
	lastRow := rows[23]
	assert.Equal(t, 0, lastRow.Hour)
	assert.Equal(t, 2, lastRow.Timestamp.Day())
	assert.Equal(t, 1, lastRow.WeekdayIndex)
	assert.False(t, lastRow.IsWeekend)
}

func TestSynthesize_WeekendFlag(t *testing.T) {
	rows, err := Synthesize(mustParse(t, "2023-12-31T23:00:00"), 7*24, DefaultValues(), nil)
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, r := range rows {
		wd := r.Timestamp.Weekday()
		want := wd == time.Saturday || wd == time.Sunday
		assert.Equal(t, want, r.IsWeekend, "%s", r.Timestamp)
		assert.Equal(t, want, r.DayOfWeek >= 5)
		seen[r.DayOfWeek] = true
	}
	assert.Len(t, seen, 7)
}

func TestSynthesize_MonthRollover(t *testing.T) {
	rows, err := Synthesize(mustParse(t, "2024-02-29T23:00:00"), 2, DefaultValues(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, rows[0].Month)
	assert.Equal(t, 0, rows[0].Hour)
}

func TestSynthesize_OverridesApplyToEveryRow(t *testing.T) {
	overrides := map[string]any{
		"Fleet_Size":    250,
		"Temperature_C": "-5.5",
		"Humidity_%":    80.0,
		"unknown_field": 1,
	}
	rows, err := Synthesize(mustParse(t, "2024-06-01T12:00:00"), 12, DefaultValues(), overrides)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, 250.0, r.FleetSize)
		assert.Equal(t, -5.5, r.TemperatureC)
		assert.Equal(t, 80.0, r.HumidityPct)
		assert.Equal(t, 7.4, r.ChargingPowerRatingKW)
	}
}

func TestSynthesize_NegativeOverrideTrusted(t *testing.T) {
	rows, err := Synthesize(mustParse(t, "2024-06-01"), 1, DefaultValues(), map[string]any{"Fleet_Size": -3})
	require.NoError(t, err)
	assert.Equal(t, -3.0, rows[0].FleetSize)
}

func TestSynthesize_InvalidInput(t *testing.T) {
	last := mustParse(t, "2024-01-01T00:00:00")
	for _, hours := range []int{0, -1} {
		_, err := Synthesize(last, hours, DefaultValues(), nil)
		assert.True(t, errors.Is(err, ErrInvalidInput), "hours=%d", hours)
	}
	_, err := Synthesize(last, 3, DefaultValues(), map[string]any{"Fleet_Size": "many"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSynthesize_EarliestTimestamp(t *testing.T) {
	rows, err := Synthesize(mustParse(t, "0001-01-01T00:00:00"), 2, DefaultValues(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rows[0].Hour)
	assert.Equal(t, 2, rows[1].Hour)
}

func TestSynthesize_IgnoresHostDaylightSaving(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	prev := time.Local
	time.Local = paris
	t.Cleanup(func() { time.Local = prev })

	// Night of the spring-forward change in Paris.
	rows, err := Synthesize(mustParse(t, "2024-03-31T00:00:00+01:00"), 4, DefaultValues(), nil)
	require.NoError(t, err)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Hour, "row %d", i)
		assert.Equal(t, fmt.Sprintf("2024-03-31T%02d:00:00+01:00", i+1), FormatTimestamp(r.Timestamp))
	}
}

func TestRowFeatures_ColumnOrder(t *testing.T) {
	rows, err := Synthesize(mustParse(t, "2024-01-06T09:00:00"), 1, DefaultValues(), nil)
	require.NoError(t, err)
	f := rows[0].Features()
	require.Len(t, f, NumFeatures)
	require.Len(t, FeatureColumns, NumFeatures)

	byName := map[string]float64{}
	for i, c := range FeatureColumns {
		byName[c] = f[i]
	}
	// 2024-01-06 10:00 is a Saturday.
	assert.Equal(t, 5.0, byName[ColDayOfWeekIndex])
	assert.Equal(t, 5.0, byName[ColDayOfWeek])
	assert.Equal(t, 10.0, byName[ColHour])
	assert.Equal(t, 1.0, byName[ColMonth])
	assert.Equal(t, 1.0, byName[ColIsWeekend])
	assert.Equal(t, 100.0, byName[ColFleetSize])
	assert.Equal(t, 0.12, byName[ColElectricityPricesUSD])
	assert.Equal(t, 500.0, byName[ColGridDemandMW])
	assert.Equal(t, 3.0, byName[ColPowerPerStation])
	assert.Equal(t, 0.0, f[0]-f[16], "duplicated weekday columns must match")
}

func TestKeysCoverDefaults(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 16)
	overrides := map[string]any{}
	for i, k := range keys {
		overrides[k] = float64(i + 1000)
	}
	d, err := DefaultValues().WithOverrides(overrides)
	require.NoError(t, err)
	rows, err := Synthesize(mustParse(t, "2024-01-01"), 1, d, nil)
	require.NoError(t, err)
	f := rows[0].Features()
	for i, c := range FeatureColumns {
		if idx := indexOf(keys, c); idx >= 0 {
			assert.Equal(t, float64(idx+1000), f[i], c)
		}
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
