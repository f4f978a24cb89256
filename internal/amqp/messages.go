package amqp

import (
	"encoding/json"
	"time"

	"spendbook/internal/core"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordEventMessage notifies the mirror worker of a record change. It
// carries a full snapshot so deleted records need no database lookup.
type RecordEventMessage struct {
	Action       string    `json:"action"`
	ID           int64     `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CategoryIcon string    `json:"categoryIcon"`
	Amount       float64   `json:"amount"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewRecordEventMessage(action string, r core.Record) *RecordEventMessage {
	return &RecordEventMessage{
		Action:       action,
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Name:         r.Name,
		Category:     r.Category,
		CategoryIcon: r.CategoryIcon,
		Amount:       r.Amount,
		Date:         r.Date,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON creates a message from JSON bytes
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
