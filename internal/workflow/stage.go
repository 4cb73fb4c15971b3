package workflow

// Stage is one of the three ordered phases of the operator workflow. Stages
// only advance forward on success; Reset is the sole backward transition.
type Stage int

const (
	StageSimulation Stage = iota
	StageRiskAssessment
	StageDispatchNetwork
)

func (s Stage) String() string {
	switch s {
	case StageSimulation:
		return "simulation"
	case StageRiskAssessment:
		return "risk_assessment"
	case StageDispatchNetwork:
		return "dispatch_network"
	default:
		return "unknown"
	}
}
