package model

// Wire contracts for the three collaborator calls. Fields beyond those
// consumed are ignored by the client.

type ScenarioResponse struct {
	Scenario Scenario `json:"scenario"`
	Assets   []Asset  `json:"assets"`
	Risks    []Risk   `json:"risks"`
}

type MitigationRequest struct {
	Scenario Scenario `json:"scenario"`
	Risks    []Risk   `json:"risks"`
	Assets   []Asset  `json:"assets"`
}

type DispatchRequest struct {
	Actions []MitigationAction `json:"actions"`
}

type DispatchResponse struct {
	Log []DispatchLogEntry `json:"log"`
}
