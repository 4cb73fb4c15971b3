package simulation

import (
	"fmt"
	"sort"

	"github.com/deg-labs/resilience-agent/internal/model"
)

// SimulateRisks assesses every asset against the forecast conditions and
// returns the resulting risks sorted most-severe first. Assets with no risk
// produce no entry.
func SimulateRisks(cond Conditions, assets []model.Asset) []model.Risk {
	var risks []model.Risk
	for _, a := range assets {
		if r, ok := assessAsset(a, cond); ok {
			risks = append(risks, r)
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].RiskLevel.Severity() < risks[j].RiskLevel.Severity()
	})
	return risks
}

func assessAsset(asset model.Asset, cond Conditions) (model.Risk, bool) {
	switch cond.EventType {
	case model.EventHeatwave:
		return assessHeatwave(asset, cond)
	case model.EventFlood:
		return assessFlood(asset, cond)
	default:
		return model.Risk{}, false
	}
}

func assessHeatwave(asset model.Asset, cond Conditions) (model.Risk, bool) {
	maxTemp := cond.MaxTempCelsius
	hours := cond.DurationHours
	if maxTemp < 35 {
		return model.Risk{}, false
	}

	var level model.RiskLevel
	var reason, impact string

	switch asset.Type {
	case "substation":
		// Substations are the most heat-sensitive: transformer design
		// temperature is 35C.
		switch {
		case maxTemp >= 37 && hours >= 48:
			level = model.RiskCritical
			reason = fmt.Sprintf("Forecast %.0f°C for %dh, exceeds design temperature 35°C", maxTemp, hours)
			impact = "Transformer overheating risk, potential outages"
		case maxTemp >= 36:
			level = model.RiskHigh
			reason = fmt.Sprintf("Forecast %.0f°C for %dh, approaching critical threshold", maxTemp, hours)
			impact = "Increased cooling demand, possible capacity reduction"
		default:
			level = model.RiskMedium
			reason = fmt.Sprintf("Forecast %.0f°C for %dh", maxTemp, hours)
			impact = "Monitor cooling systems closely"
		}
		if level == model.RiskMedium && asset.Criticality == "high" {
			level = model.RiskHigh
			reason += " (critical infrastructure)"
		}
	case "ev_hub":
		switch {
		case maxTemp >= 37 && hours >= 48:
			level = model.RiskHigh
			reason = fmt.Sprintf("Forecast %.0f°C for %dh, may affect charging equipment", maxTemp, hours)
			impact = "Potential charging speed reduction or equipment shutdown"
		case maxTemp >= 36:
			level = model.RiskMedium
			reason = fmt.Sprintf("Forecast %.0f°C for %dh", maxTemp, hours)
			impact = "Monitor charging infrastructure"
		default:
			return model.Risk{}, false
		}
	case "solar_farm":
		if maxTemp >= 37 {
			level = model.RiskMedium
			reason = fmt.Sprintf("Forecast %.0f°C, solar panel efficiency may decrease", maxTemp)
			impact = "5-10% efficiency reduction possible"
		} else {
			return model.Risk{}, false
		}
	default:
		return model.Risk{}, false
	}

	return buildRisk(asset, level, reason, impact), true
}

func assessFlood(asset model.Asset, cond Conditions) (model.Risk, bool) {
	total := cond.TotalRainfallMM
	perHour := cond.MaxRainfallMMPHr

	var level model.RiskLevel
	var reason, impact string

	if asset.FloodZone {
		switch {
		case total >= 60 && perHour >= 10:
			level = model.RiskCritical
			reason = fmt.Sprintf("Located in flood zone, forecast %.0fmm rainfall", total)
			impact = "Flooding risk, equipment damage possible"
		case total >= 40:
			level = model.RiskHigh
			reason = fmt.Sprintf("Located in flood zone, forecast %.0fmm rainfall", total)
			impact = "High flood risk, prepare protective measures"
		}
	} else {
		switch {
		case total >= 80 && perHour >= 15:
			level = model.RiskHigh
			reason = fmt.Sprintf("Heavy rainfall forecast: %.0fmm", total)
			impact = "Flash flooding possible, monitor drainage"
		case total >= 60:
			level = model.RiskMedium
			reason = fmt.Sprintf("Forecast %.0fmm rainfall", total)
			impact = "Monitor local flooding conditions"
		}
	}

	// Any electrical asset takes water-ingress risk in sustained rain.
	if level == "" && (asset.Type == "substation" || asset.Type == "ev_hub") && total >= 50 {
		level = model.RiskMedium
		reason = fmt.Sprintf("Forecast %.0fmm rainfall may affect electrical infrastructure", total)
		impact = "Water ingress risk to electrical equipment"
	}

	if level == "" {
		return model.Risk{}, false
	}
	return buildRisk(asset, level, reason, impact), true
}

func buildRisk(asset model.Asset, level model.RiskLevel, reason, impact string) model.Risk {
	if asset.Feeds != "" {
		impact += " affecting " + asset.Feeds
	}
	return model.Risk{
		AssetID:        asset.ID,
		RiskLevel:      level,
		Reason:         reason,
		ExpectedImpact: impact,
	}
}
