package forecast

// Column names of the model input table.
const (
	ColDayOfWeekIndex             = "Day_of_Week"
	ColFleetSize                  = "Fleet_Size"
	ColAverageBatteryCapacityKWh  = "Average_Battery_Capacity_kWh"
	ColNumberOfChargingStations   = "Number_of_Charging_Stations"
	ColChargingPowerRatingKW      = "Charging_Power_Rating_kW"
	ColChargingEfficiency         = "Charging_Efficiency"
	ColTotalDistanceDrivenKM      = "Total_Distance_Driven_km"
	ColAverageSpeedKMH            = "Average_Speed_kmh"
	ColLoadingUnloadingTimesHours = "Loading_Unloading_Times_hours"
	ColTemperatureC               = "Temperature_C"
	ColHumidityPct                = "Humidity_%"
	ColPreviousChargingLoadsKW    = "Previous_Charging_Loads_kW"
	ColChargingDurationHours      = "Charging_Duration_hours"
	ColElectricityPricesUSD       = "Electricity_Prices_USD"
	ColGridDemandMW               = "Grid_Demand_MW"
	ColHour                       = "Hour"
	ColDayOfWeek                  = "DayOfWeek"
	ColMonth                      = "Month"
	ColIsWeekend                  = "IsWeekend"
	ColLoadPerEV                  = "Load_per_EV"
	ColPowerPerStation            = "Power_per_Station"
)

// FeatureColumns is the column order the trained model was fitted on.
// Day_of_Week and DayOfWeek carry the same value; the model expects both.
var FeatureColumns = []string{
	ColDayOfWeekIndex,
	ColFleetSize,
	ColAverageBatteryCapacityKWh,
	ColNumberOfChargingStations,
	ColChargingPowerRatingKW,
	ColChargingEfficiency,
	ColTotalDistanceDrivenKM,
	ColAverageSpeedKMH,
	ColLoadingUnloadingTimesHours,
	ColTemperatureC,
	ColHumidityPct,
	ColPreviousChargingLoadsKW,
	ColChargingDurationHours,
	ColElectricityPricesUSD,
	ColGridDemandMW,
	ColHour,
	ColDayOfWeek,
	ColMonth,
	ColIsWeekend,
	ColLoadPerEV,
	ColPowerPerStation,
}

// NumFeatures is the width of a feature row.
const NumFeatures = 21

// Columns returns a copy of FeatureColumns.
func Columns() []string {
	out := make([]string, len(FeatureColumns))
	copy(out, FeatureColumns)
	return out
}
