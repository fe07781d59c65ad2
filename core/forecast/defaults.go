package forecast

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Defaults holds the operational and environmental values shared by every
// synthesized row. The json tags are the recognized override keys.
type Defaults struct {
	FleetSize                  float64 `json:"Fleet_Size"`
	AverageBatteryCapacityKWh  float64 `json:"Average_Battery_Capacity_kWh"`
	NumberOfChargingStations   float64 `json:"Number_of_Charging_Stations"`
	ChargingPowerRatingKW      float64 `json:"Charging_Power_Rating_kW"`
	ChargingEfficiency         float64 `json:"Charging_Efficiency"`
	TotalDistanceDrivenKM      float64 `json:"Total_Distance_Driven_km"`
	AverageSpeedKMH            float64 `json:"Average_Speed_kmh"`
	LoadingUnloadingTimesHours float64 `json:"Loading_Unloading_Times_hours"`
	TemperatureC               float64 `json:"Temperature_C"`
	HumidityPct                float64 `json:"Humidity_%"`
	PreviousChargingLoadsKW    float64 `json:"Previous_Charging_Loads_kW"`
	ChargingDurationHours      float64 `json:"Charging_Duration_hours"`
	ElectricityPricesUSD       float64 `json:"Electricity_Prices_USD"`
	GridDemandMW               float64 `json:"Grid_Demand_MW"`
	LoadPerEV                  float64 `json:"Load_per_EV"`
	PowerPerStation            float64 `json:"Power_per_Station"`
}

// DefaultValues returns the values the model was trained around.
func DefaultValues() Defaults {
	return Defaults{
		FleetSize:                  100,
		AverageBatteryCapacityKWh:  40,
		NumberOfChargingStations:   10,
		ChargingPowerRatingKW:      7.4,
		ChargingEfficiency:         0.9,
		TotalDistanceDrivenKM:      50,
		AverageSpeedKMH:            40,
		LoadingUnloadingTimesHours: 1,
		TemperatureC:               25,
		HumidityPct:                60,
		PreviousChargingLoadsKW:    5,
		ChargingDurationHours:      1,
		ElectricityPricesUSD:       0.12,
		GridDemandMW:               500,
		LoadPerEV:                  5,
		PowerPerStation:            3,
	}
}

// WithOverrides returns a copy of d with the named fields replaced. Keys are
// matched against the json tags, case-insensitively; unknown keys are
// ignored. Values must be numbers or numeric strings.
func (d Defaults) WithOverrides(overrides map[string]any) (Defaults, error) {
	if len(overrides) == 0 {
		return d, nil
	}
	out := d
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return d, err
	}
	if err := dec.Decode(overrides); err != nil {
		return d, fmt.Errorf("%w: overrides: %v", ErrInvalidInput, err)
	}
	return out, nil
}

// Keys lists the recognized override keys in feature column order.
func Keys() []string {
	return []string{
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
		ColLoadPerEV,
		ColPowerPerStation,
	}
}
