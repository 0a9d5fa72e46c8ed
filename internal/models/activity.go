package models

import "time"

// Outcomes of one auth call.
const (
	ActivityOutcomeSuccess  = "success"
	ActivityOutcomeRejected = "rejected"
	ActivityOutcomeFailed   = "failed"
)

// Activity is one auth call recorded in the local attempt history.
// The code or token sent is never recorded.
type Activity struct {
	Operation string    `json:"operation"`
	Email     string    `json:"email"`
	Outcome   string    `json:"outcome"`
	Status    int       `json:"status"`
	RequestID string    `json:"request_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
