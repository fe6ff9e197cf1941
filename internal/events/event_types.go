package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionReceived EventType = "submission_received"
	EventSubmissionStored   EventType = "submission_stored"
	EventSubmissionRejected EventType = "submission_rejected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SubmissionReceivedPayload payload.
type SubmissionReceivedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionStoredPayload payload.
type SubmissionStoredPayload struct {
	SubmissionID string `json:"submission_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
}

// SubmissionRejectedPayload payload.
type SubmissionRejectedPayload struct {
	Reason string `json:"reason"`
}
