package events

import "time"

// WebSocket event types pushed to connected clients while a pipeline run
// progresses.
const (
	EventOperationStatus   = "operation:status"
	EventOperationProgress = "operation:progress"
	EventOperationComplete = "operation:complete"
	EventOperationError    = "operation:error"
)

// Event is the envelope for every message pushed over the WebSocket.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ProgressPayload describes one step's progress within an operation.
type ProgressPayload struct {
	OperationID string  `json:"operation_id"`
	Step        string  `json:"step"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
	Message     string  `json:"message,omitempty"`
}
