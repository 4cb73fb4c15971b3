// Package panels renders each workflow stage as text. Panels are pure views
// over a workflow.State snapshot; they hold no state of their own.
package panels

import (
	"fmt"
	"strings"

	"github.com/deg-labs/resilience-agent/internal/geo"
	"github.com/deg-labs/resilience-agent/internal/riskview"
	"github.com/deg-labs/resilience-agent/internal/workflow"
)

// StepIndicator shows the three stages with the active one marked and any
// in-flight call flagged.
func StepIndicator(st workflow.State) string {
	steps := []struct {
		stage workflow.Stage
		label string
		busy  bool
	}{
		{workflow.StageSimulation, "Simulation", st.Busy.Simulation},
		{workflow.StageRiskAssessment, "Risk Assessment", st.Busy.Mitigation},
		{workflow.StageDispatchNetwork, "Dispatch Network", st.Busy.Dispatch},
	}

	var b strings.Builder
	for i, s := range steps {
		marker := " "
		switch {
		case s.stage == st.Stage:
			marker = ">"
		case s.stage < st.Stage:
			marker = "x"
		}
		fmt.Fprintf(&b, "[%s] %d. %s", marker, i+1, s.label)
		if s.busy {
			b.WriteString(" (processing...)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Scenario renders the simulation stage: the submitted scenario, if any.
func Scenario(st workflow.State) string {
	var b strings.Builder
	b.WriteString("Scenario Configuration\n")
	if st.Scenario == nil {
		b.WriteString("  No scenario submitted.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Location: %s\n", st.Scenario.Location)
	fmt.Fprintf(&b, "  Event:    %s\n", st.Scenario.EventType)
	fmt.Fprintf(&b, "  Start:    %s\n", st.Scenario.StartDate)
	fmt.Fprintf(&b, "  Duration: %dh\n", st.Scenario.DurationHours)
	return b.String()
}

// RiskAssessment renders the risk list and, when present, the mitigation
// plan with its actions.
func RiskAssessment(st workflow.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Assessment - affected assets (%d)\n", len(st.Risks))
	if len(st.Risks) == 0 {
		b.WriteString("  No risks detected. Run a scenario to see results.\n")
	}
	for _, r := range st.Risks {
		fmt.Fprintf(&b, "  [%s] %s - %s\n", r.RiskLevel, r.AssetID, r.Reason)
		fmt.Fprintf(&b, "        impact: %s\n", r.ExpectedImpact)
	}

	if st.Plan != nil {
		b.WriteString("\nAI Mitigation Plan\n")
		fmt.Fprintf(&b, "  %s\n", st.Plan.SummaryText)
		for _, a := range st.Plan.MitigationActions {
			fmt.Fprintf(&b, "  - %s: %s (urgency %s, target %s)\n", a.AssetID, a.ActionType, a.Urgency, a.TargetTime)
			fmt.Fprintf(&b, "      %s\n", a.Justification)
		}
	}
	return b.String()
}

// DispatchLog renders the network activity log.
func DispatchLog(st workflow.State) string {
	var b strings.Builder
	b.WriteString("Dispatch Network Activity Log\n")
	if len(st.Log) == 0 {
		b.WriteString("  No network activity yet. Execute the mitigation plan to see logs.\n")
		return b.String()
	}
	for _, e := range st.Log {
		line := fmt.Sprintf("  [%s] %s - %s", strings.ToUpper(string(e.Status)), e.AssetID, e.ServiceType)
		if e.Provider != "" {
			line += " via " + e.Provider
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// MapSummary renders the map as a marker list with the shared color tokens
// plus the computed viewport. Assets without a valid coordinate have no
// position to mark and are left off the list.
func MapSummary(st workflow.State) string {
	riskByAsset := geo.Correlate(st.Assets, st.Risks)
	vp := geo.FitViewport(st.Assets)

	var b strings.Builder
	fmt.Fprintf(&b, "Map view - center (%.4f, %.4f) zoom %d\n", vp.CenterLat, vp.CenterLon, vp.Zoom)
	for _, a := range st.Assets {
		if !geo.ValidCoordinate(a.Lat, a.Lon) {
			continue
		}
		color := riskview.ColorNone
		level := "no risk"
		if r, ok := riskByAsset[a.ID]; ok {
			color = riskview.Color(r.RiskLevel)
			level = string(r.RiskLevel)
		}
		fmt.Fprintf(&b, "  %s %s (%s) %s\n", color, a.Name, a.ID, level)
	}
	return b.String()
}
