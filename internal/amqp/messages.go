package amqp

import (
	"encoding/json"
	"time"
)

// Actions carried by expense event messages.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// ExpenseEventMessage is a lightweight change notification. It carries only
// the id and action; consumers re-read the store for current data.
type ExpenseEventMessage struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates an event message for the given expense id.
func NewExpenseEventMessage(id, action string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
