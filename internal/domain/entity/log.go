package entity

import "time"

// TransactionLog is one audit row of a transaction's status history.
type TransactionLog struct {
	ID             int64     `json:"id"`
	TransactionID  int64     `json:"transaction_id"`
	DotsNumber     string    `json:"dots_number"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Action         string    `json:"action"`
	ActionBy       string    `json:"action_by"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
