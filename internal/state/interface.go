// Package state provides SQLite-based persistence for the butler.
package state

import (
	"io"
	"time"

	"github.com/healthbutler/swarm/pkg/models"
)

// ProfileStore handles health-profile persistence operations.
type ProfileStore interface {
	SaveProfile(p *Profile) error
	GetProfile() (*Profile, error)
	DeleteProfile() error
}

// AuditStore handles execution-history persistence operations.
type AuditStore interface {
	RecordExecution(userInput, mediaRef string, startedAt time.Time, result *models.ExecutionResult) (string, error)
	GetExecution(id string) (*Execution, error)
	ListRecentExecutions(limit int) ([]Execution, error)
	MessagesFor(executionID string) ([]models.Message, error)
	OutputsFor(executionID string) ([]models.WorkerOutput, error)
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Store defines the interface for butler persistence.
// It composes focused sub-interfaces so commands can depend on just the
// capability they use rather than the concrete SQLite implementation.
type Store interface {
	io.Closer
	Migrator
	ProfileStore
	AuditStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ Store        = (*DB)(nil)
	_ Migrator     = (*DB)(nil)
	_ ProfileStore = (*DB)(nil)
	_ AuditStore   = (*DB)(nil)
)
