package model

// DispatchStatus is the terminal state of one dispatched action on the
// service network.
type DispatchStatus string

const (
	DispatchSearched  DispatchStatus = "searched"
	DispatchConfirmed DispatchStatus = "confirmed"
	DispatchFailed    DispatchStatus = "failed"
)

// DispatchLogEntry records the outcome of dispatching one mitigation action.
// A new dispatch call replaces the whole log.
type DispatchLogEntry struct {
	AssetID     string         `json:"asset_id"`
	ServiceType string         `json:"service_type"`
	Provider    string         `json:"provider,omitempty"`
	Status      DispatchStatus `json:"status"`
}
