package models

import "time"

// Participant identifies a sender or receiver on the message bus. Worker IDs
// are valid participants, as are the fixed system, user, and coordinator roles.
type Participant string

const (
	// ParticipantUser is the end user issuing the request.
	ParticipantUser Participant = "user"
	// ParticipantSystem is the orchestration runtime itself.
	ParticipantSystem Participant = "system"
	// ParticipantCoordinator is the planning/synthesis role of the orchestrator.
	ParticipantCoordinator Participant = "coordinator"
)

// MessageKind classifies a bus message.
type MessageKind string

const (
	// KindTask carries a task assignment.
	KindTask MessageKind = "task"
	// KindResult carries a worker or final result.
	KindResult MessageKind = "result"
	// KindStatus carries a progress update for display.
	KindStatus MessageKind = "status"
)

// Valid returns true if the kind is a known value.
func (k MessageKind) Valid() bool {
	switch k {
	case KindTask, KindResult, KindStatus:
		return true
	default:
		return false
	}
}

// Message is one entry in the append-only inter-component log. Messages are
// immutable once appended.
type Message struct {
	// From is the sending participant.
	From Participant `json:"from"`
	// To is the receiving participant.
	To Participant `json:"to"`
	// Kind classifies the message.
	Kind MessageKind `json:"kind"`
	// Content is the message body.
	Content string `json:"content"`
	// Timestamp is when the message was appended.
	Timestamp time.Time `json:"timestamp"`
}
