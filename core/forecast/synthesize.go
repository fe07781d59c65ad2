package forecast

import (
	"fmt"
	"time"
)

// Synthesize builds hours consecutive rows starting one hour after last.
// Instants are spaced by exactly one hour of elapsed time; calendar fields
// are read in last's location. overrides replace the matching fields of
// defaults for every row.
func Synthesize(last time.Time, hours int, defaults Defaults, overrides map[string]any) ([]Row, error) {
	if hours < 1 {
		return nil, fmt.Errorf("%w: hours must be >= 1, got %d", ErrInvalidInput, hours)
	}
	values, err := defaults.WithOverrides(overrides)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, hours)
	for i := range rows {
		ts := last.Add(time.Duration(i+1) * time.Hour)
		dow := weekdayIndex(ts)
		rows[i] = Row{
			Timestamp:    ts,
			WeekdayIndex: dow,
			Hour:         ts.Hour(),
			DayOfWeek:    dow,
			Month:        int(ts.Month()),
			IsWeekend:    dow == 5 || dow == 6,
			Defaults:     values,
		}
	}
	return rows, nil
}
