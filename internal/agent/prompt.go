package agent

import (
	"encoding/json"
	"fmt"

	"github.com/deg-labs/resilience-agent/internal/model"
)

const promptTemplate = `You are an expert Distribution System Operator (DSO) Flexibility Orchestrator.
Your goal is to manage grid congestion and prevent outages using Distributed Energy Resources (DERs) and Flexibility Services.

Analyze the following grid scenario and identified risks.

SCENARIO:
Location: %s
Event: %s
Duration: %d hours

ASSETS:
%s

IDENTIFIED RISKS (Grid Constraints):
%s

TASK:
Generate a Flexibility Dispatch Plan to address high and critical grid risks.
Prioritize non-wires alternatives (Demand Response, Flexibility) over physical interventions.

For each action, specify:
- asset_id: The ID of the asset (feeder/substation) requiring relief
- action_type: Specific flexibility service (MUST use one of: "dispatch_battery_discharge", "reduce_ev_load", "shift_hvac_load", "deploy_mobile_generator")
- urgency: "low", "medium", or "high"
- justification: Technical justification referencing load reduction (e.g., "Peak shaving required due to 110%% projected loading")
- target_time: A time string (e.g., "2025-11-26T10:00:00Z")

RESPONSE FORMAT:
Return ONLY a valid JSON object with two keys:
1. "summary_text": A brief executive summary of the flexibility strategy.
2. "mitigation_actions": A list of action objects matching the fields above.`

// BuildPrompt renders the planning prompt from the mitigation request.
func BuildPrompt(req model.MitigationRequest) (string, error) {
	assetsJSON, err := json.MarshalIndent(req.Assets, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize assets: %w", err)
	}
	risksJSON, err := json.MarshalIndent(req.Risks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize risks: %w", err)
	}

	return fmt.Sprintf(promptTemplate,
		req.Scenario.Location,
		req.Scenario.EventType,
		req.Scenario.DurationHours,
		assetsJSON,
		risksJSON,
	), nil
}
