package model

// RiskLevel is ordered by severity descending: CRITICAL > HIGH > MEDIUM > LOW.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

// Severity returns a sortable rank, lower is more severe. Unknown levels sort
// last.
func (l RiskLevel) Severity() int {
	switch l {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	default:
		return 99
	}
}

// Risk is an assessed hazard attached to a single asset for the current run.
// At most one risk per asset is expected; duplicates resolve last-write-wins
// at correlation time.
type Risk struct {
	AssetID        string    `json:"asset_id"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Reason         string    `json:"reason"`
	ExpectedImpact string    `json:"expected_impact"`
}
