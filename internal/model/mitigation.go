package model

// MitigationAction is one recommended flexibility intervention for an asset.
type MitigationAction struct {
	AssetID       string `json:"asset_id"`
	ActionType    string `json:"action_type"` // e.g. "dispatch_battery_discharge"
	Urgency       string `json:"urgency"`     // "low", "medium", "high"
	Justification string `json:"justification"`
	TargetTime    string `json:"target_time"` // ISO-8601
}

// MitigationPlan is produced once per risk set and discarded on a new run.
type MitigationPlan struct {
	SummaryText       string             `json:"summary_text"`
	MitigationActions []MitigationAction `json:"mitigation_actions"`
}
