// Package riskview maps risk severity to the visual tokens shared by the map
// markers and the risk list.
package riskview

import (
	"github.com/deg-labs/resilience-agent/internal/model"
)

// Color tokens, identical across every view. ColorNone doubles as the
// fallback for unrecognized levels.
const (
	ColorCritical = "#e53e3e"
	ColorHigh     = "#ed8936"
	ColorMedium   = "#ecc94b"
	ColorLow      = "#48bb78"
	ColorNone     = "#cbd5e0"
)

// Color is total: every enumerated level maps to a token and anything else
// falls back to ColorNone.
func Color(level model.RiskLevel) string {
	switch level {
	case model.RiskCritical:
		return ColorCritical
	case model.RiskHigh:
		return ColorHigh
	case model.RiskMedium:
		return ColorMedium
	case model.RiskLow:
		return ColorLow
	default:
		return ColorNone
	}
}

// Weight is the visual emphasis for a level, 4 (critical) down to 1 (low),
// 0 for no or unknown risk.
func Weight(level model.RiskLevel) int {
	switch level {
	case model.RiskCritical:
		return 4
	case model.RiskHigh:
		return 3
	case model.RiskMedium:
		return 2
	case model.RiskLow:
		return 1
	default:
		return 0
	}
}

type LegendEntry struct {
	Label string
	Color string
}

// Legend lists the map legend entries in severity order, ending with the
// no-risk marker.
func Legend() []LegendEntry {
	return []LegendEntry{
		{Label: "Critical", Color: ColorCritical},
		{Label: "High", Color: ColorHigh},
		{Label: "Medium", Color: ColorMedium},
		{Label: "Low", Color: ColorLow},
		{Label: "No Risk", Color: ColorNone},
	}
}
