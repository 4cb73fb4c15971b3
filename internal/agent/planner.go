package agent

import (
	"context"
	"fmt"

	"github.com/deg-labs/resilience-agent/internal/common"
	"github.com/deg-labs/resilience-agent/internal/llm"
	"github.com/deg-labs/resilience-agent/internal/model"
)

// Planner generates a flexibility dispatch plan for the assessed risks using
// an LLM.
type Planner struct {
	LLM llm.Client
}

func NewPlanner(client llm.Client) *Planner {
	return &Planner{LLM: client}
}

// Plan asks the model for a mitigation plan and parses the structured
// response. A response without a summary is rejected; a plan with zero
// actions is legal (the model may judge no intervention necessary).
func (p *Planner) Plan(ctx context.Context, req model.MitigationRequest) (*model.MitigationPlan, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	response, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mitigation plan: %w", err)
	}

	plan, err := common.ParseJSON[model.MitigationPlan](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mitigation plan: %w", err)
	}
	if plan.SummaryText == "" {
		return nil, fmt.Errorf("invalid plan structure: missing summary_text")
	}
	if plan.MitigationActions == nil {
		plan.MitigationActions = []model.MitigationAction{}
	}

	return &plan, nil
}
