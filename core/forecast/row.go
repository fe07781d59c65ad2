package forecast

import "time"

// Row is the model input for one forecast hour. Timestamp travels with the
// row but is not part of the feature table.
type Row struct {
	Timestamp time.Time `json:"Timestamp"`
	// WeekdayIndex feeds the Day_of_Week column.
	WeekdayIndex int `json:"Day_of_Week"`
	Hour         int `json:"Hour"`
	// DayOfWeek feeds the DayOfWeek column; always equal to WeekdayIndex.
	DayOfWeek int  `json:"DayOfWeek"`
	Month     int  `json:"Month"`
	IsWeekend bool `json:"IsWeekend"`
	Defaults
}

// Features returns the row's values in FeatureColumns order.
func (r Row) Features() []float64 {
	d := r.Defaults
	return []float64{
		float64(r.WeekdayIndex),
		d.FleetSize,
		d.AverageBatteryCapacityKWh,
		d.NumberOfChargingStations,
		d.ChargingPowerRatingKW,
		d.ChargingEfficiency,
		d.TotalDistanceDrivenKM,
		d.AverageSpeedKMH,
		d.LoadingUnloadingTimesHours,
		d.TemperatureC,
		d.HumidityPct,
		d.PreviousChargingLoadsKW,
		d.ChargingDurationHours,
		d.ElectricityPricesUSD,
		d.GridDemandMW,
		float64(r.Hour),
		float64(r.DayOfWeek),
		float64(r.Month),
		boolToFloat(r.IsWeekend),
		d.LoadPerEV,
		d.PowerPerStation,
	}
}

// FeatureTable stacks the feature vectors of rows.
func FeatureTable(rows []Row) [][]float64 {
	x := make([][]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Features()
	}
	return x
}

// weekdayIndex maps time.Weekday to the Monday=0 convention.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
