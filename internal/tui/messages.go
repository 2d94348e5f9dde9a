package tui

import "github.com/healthbutler/swarm/pkg/models"

// QuerySubmittedMsg is sent when the user submits a query.
type QuerySubmittedMsg struct {
	Text string
}

// StatusMsg carries an orchestrator progress line for the in-flight request.
type StatusMsg struct {
	Text string
}

// ResponseMsg delivers the finished execution for the in-flight request.
type ResponseMsg struct {
	Result *models.ExecutionResult
	Err    error
}
