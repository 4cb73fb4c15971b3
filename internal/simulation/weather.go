package simulation

import (
	"github.com/deg-labs/resilience-agent/internal/model"
)

// Conditions holds the forecast figures the risk rules consume. Fields are
// populated per event type; a later version can source these from a real
// weather API.
type Conditions struct {
	EventType        model.EventType
	DurationHours    int
	MaxTempCelsius   float64
	MinTempCelsius   float64
	AvgTempCelsius   float64
	HumidityPercent  float64
	TotalRainfallMM  float64
	MaxRainfallMMPHr float64
	WindSpeedKMH     float64
}

// ForecastFor returns mock forecast conditions for the scenario.
func ForecastFor(sc model.Scenario) Conditions {
	switch sc.EventType {
	case model.EventHeatwave:
		return Conditions{
			EventType:       model.EventHeatwave,
			DurationHours:   sc.DurationHours,
			MaxTempCelsius:  37,
			MinTempCelsius:  22,
			AvgTempCelsius:  30,
			HumidityPercent: 65,
		}
	case model.EventFlood:
		return Conditions{
			EventType:        model.EventFlood,
			DurationHours:    sc.DurationHours,
			TotalRainfallMM:  80,
			MaxRainfallMMPHr: 15,
			WindSpeedKMH:     45,
		}
	default:
		return Conditions{
			EventType:     sc.EventType,
			DurationHours: sc.DurationHours,
		}
	}
}
