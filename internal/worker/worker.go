// Package worker defines the specialist worker capability and the registry
// the orchestrator dispatches through.
package worker

import (
	"context"
	"fmt"
	"sort"

	"github.com/healthbutler/swarm/pkg/models"
)

// Worker is a specialist capability invoked by the orchestrator to perform
// one step of work. Implementations must return ordinary content problems as
// an error-describing result string, not an error; an error return is
// reserved for I/O and network failures so the retry engine can engage.
type Worker interface {
	// ID returns the worker's registry identifier.
	ID() models.WorkerID
	// MediaCapable reports whether the worker can consume media references.
	MediaCapable() bool
	// Execute performs the task with the supplied context entries.
	Execute(ctx context.Context, task string, entries []models.ContextEntry) (string, error)
}

// Registry is a static table of known workers keyed by ID.
type Registry struct {
	workers map[models.WorkerID]Worker
}

// NewRegistry creates a registry containing the given workers.
func NewRegistry(workers ...Worker) *Registry {
	r := &Registry{workers: make(map[models.WorkerID]Worker, len(workers))}
	for _, w := range workers {
		r.workers[w.ID()] = w
	}
	return r
}

// Register adds a worker, replacing any existing worker with the same ID.
func (r *Registry) Register(w Worker) {
	r.workers[w.ID()] = w
}

// Lookup returns the worker with the given ID.
func (r *Registry) Lookup(id models.WorkerID) (Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, fmt.Errorf("unknown worker: %s", id)
	}
	return w, nil
}

// IDs returns the registered worker IDs in sorted order.
func (r *Registry) IDs() []models.WorkerID {
	ids := make([]models.WorkerID, 0, len(r.workers))
	for id := range r.workers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
