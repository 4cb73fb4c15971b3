package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deg-labs/resilience-agent/internal/model"
)

// MockLLM returns queued responses in order, then the last one forever.
type MockLLM struct {
	ResponseQueue []string
	Err           error
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) == 0 {
		return "", errors.New("mock: no responses queued")
	}
	resp := m.ResponseQueue[0]
	if len(m.ResponseQueue) > 1 {
		m.ResponseQueue = m.ResponseQueue[1:]
	}
	return resp, nil
}

func testRequest() model.MitigationRequest {
	return model.MitigationRequest{
		Scenario: model.Scenario{Location: "London", EventType: model.EventHeatwave, DurationHours: 72},
		Assets:   []model.Asset{{ID: "sub_1", Name: "Brixton Substation", Type: "substation"}},
		Risks:    []model.Risk{{AssetID: "sub_1", RiskLevel: model.RiskCritical, Reason: "Forecast 37°C for 72h"}},
	}
}

const validPlanJSON = `{
  "summary_text": "Discharge batteries and shed EV load around the Brixton constraint.",
  "mitigation_actions": [
    {
      "asset_id": "sub_1",
      "action_type": "dispatch_battery_discharge",
      "urgency": "high",
      "justification": "Peak shaving required due to 110% projected loading",
      "target_time": "2025-11-26T10:00:00Z"
    }
  ]
}`

func TestPlan_Success(t *testing.T) {
	mock := &MockLLM{ResponseQueue: []string{validPlanJSON}}
	planner := NewPlanner(mock)

	plan, err := planner.Plan(context.Background(), testRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, plan.SummaryText)
	require.Len(t, plan.MitigationActions, 1)
	assert.Equal(t, "sub_1", plan.MitigationActions[0].AssetID)
	assert.Equal(t, "dispatch_battery_discharge", plan.MitigationActions[0].ActionType)
	assert.Equal(t, "high", plan.MitigationActions[0].Urgency)
}

func TestPlan_FencedResponse(t *testing.T) {
	mock := &MockLLM{ResponseQueue: []string{"```json\n" + validPlanJSON + "\n```"}}
	planner := NewPlanner(mock)

	plan, err := planner.Plan(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, plan.MitigationActions, 1)
}

func TestPlan_NoActionsIsLegal(t *testing.T) {
	mock := &MockLLM{ResponseQueue: []string{`{"summary_text": "No intervention required."}`}}
	planner := NewPlanner(mock)

	plan, err := planner.Plan(context.Background(), testRequest())
	require.NoError(t, err)
	assert.NotNil(t, plan.MitigationActions)
	assert.Empty(t, plan.MitigationActions)
}

func TestPlan_MissingSummaryRejected(t *testing.T) {
	mock := &MockLLM{ResponseQueue: []string{`{"mitigation_actions": []}`}}
	planner := NewPlanner(mock)

	_, err := planner.Plan(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary_text")
}

func TestPlan_UnparseableResponse(t *testing.T) {
	mock := &MockLLM{ResponseQueue: []string{"Sorry, I cannot help with that."}}
	planner := NewPlanner(mock)

	_, err := planner.Plan(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse mitigation plan")
}

func TestPlan_GenerateError(t *testing.T) {
	mock := &MockLLM{Err: errors.New("rate limited")}
	planner := NewPlanner(mock)

	_, err := planner.Plan(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate mitigation plan")
}

func TestBuildPrompt_IncludesScenarioAndRisks(t *testing.T) {
	prompt, err := BuildPrompt(testRequest())
	require.NoError(t, err)
	assert.Contains(t, prompt, "Location: London")
	assert.Contains(t, prompt, "Event: heatwave")
	assert.Contains(t, prompt, "Duration: 72 hours")
	assert.Contains(t, prompt, "Brixton Substation")
	assert.Contains(t, prompt, "Forecast 37°C for 72h")
	assert.Contains(t, prompt, `"dispatch_battery_discharge"`)
	// The literal example must survive the format verbs.
	assert.Contains(t, prompt, "110% projected loading")
}
