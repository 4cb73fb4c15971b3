package model

// EventType is the kind of extreme weather event being simulated.
type EventType string

const (
	EventHeatwave EventType = "heatwave"
	EventFlood    EventType = "flood"
)

// Scenario describes one weather event run. It is immutable once submitted
// for a run and cleared on restart.
type Scenario struct {
	Location      string    `json:"location"`
	EventType     EventType `json:"event_type"`
	StartDate     string    `json:"start_date"` // ISO-8601
	DurationHours int       `json:"duration_hours"`
}
