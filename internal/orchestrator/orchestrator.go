// Package orchestrator coordinates specialist workers to answer one user
// request: it plans the delegation chain, executes each step with bounded
// retry, threads earlier outputs into later context, and synthesizes the
// final response.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/healthbutler/swarm/internal/bus"
	"github.com/healthbutler/swarm/internal/retry"
	"github.com/healthbutler/swarm/internal/worker"
	"github.com/healthbutler/swarm/pkg/models"
)

// Request is one user request entering the orchestrator.
type Request struct {
	// UserInput is the user's free-text request.
	UserInput string
	// MediaRef is an opaque reference to attached media, if any.
	MediaRef string
	// SideContext is caller-supplied data (profile fields, preferences)
	// passed through to workers unparsed.
	SideContext map[string]string
}

// Config assembles an Orchestrator.
type Config struct {
	// Registry maps worker IDs to implementations.
	Registry *worker.Registry
	// Planner produces the delegation plan.
	Planner *Planner
	// Synthesizer reduces worker outputs to the final response.
	Synthesizer *Synthesizer
	// Policy is the retry schedule for worker calls.
	Policy retry.Policy
	// Retryable classifies worker errors as transient. nil retries everything.
	Retryable func(error) bool
	// StepTimeout bounds each worker call including retries and backoff.
	// Zero means no per-step deadline.
	StepTimeout time.Duration
	// OnStatus, when set, receives each coordinator status line as it is
	// emitted. Used by the chat TUI for live progress.
	OnStatus func(status string)
}

// Orchestrator executes user requests against the worker registry. It holds
// no per-request state: a fresh message bus is created inside every Execute
// call, so one instance may serve concurrent requests as long as its workers
// tolerate concurrent invocation.
type Orchestrator struct {
	registry    *worker.Registry
	planner     *Planner
	synthesizer *Synthesizer
	policy      retry.Policy
	retryable   func(error) bool
	stepTimeout time.Duration
	onStatus    func(string)
}

// New creates an Orchestrator from the config.
func New(cfg Config) *Orchestrator {
	return &Orchestrator{
		registry:    cfg.Registry,
		planner:     cfg.Planner,
		synthesizer: cfg.Synthesizer,
		policy:      cfg.Policy,
		retryable:   cfg.Retryable,
		stepTimeout: cfg.StepTimeout,
		onStatus:    cfg.OnStatus,
	}
}

// status records a coordinator status line on the bus and forwards it to the
// live status callback when one is set.
func (o *Orchestrator) status(b *bus.MessageBus, text string) {
	b.Send(models.ParticipantCoordinator, models.ParticipantSystem, models.KindStatus, text)
	if o.onStatus != nil {
		o.onStatus(text)
	}
}

// Execute runs one request through planning, sequential delegation
// execution, and synthesis. Worker failures never abort the run: each failed
// step is captured as a failed output and later steps continue. The error
// return is reserved for context cancellation.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (*models.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := bus.New()
	b.Send(models.ParticipantUser, models.ParticipantSystem, models.KindTask, req.UserInput)
	o.status(b, "Analyzing user intent...")

	delegations := o.planner.Plan(ctx, req.UserInput, req.MediaRef != "")
	log.Printf("[orchestrator] plan: %d step(s)", len(delegations))

	outputs := make([]models.WorkerOutput, 0, len(delegations))
	for i, d := range delegations {
		o.status(b, fmt.Sprintf("Routing to %s (step %d/%d)...", d.Worker, i+1, len(delegations)))
		b.Send(models.ParticipantSystem, models.Participant(d.Worker), models.KindTask, d.Task)

		out := o.executeStep(ctx, d, req, outputs)
		if out.Failed {
			b.Send(models.Participant(d.Worker), models.ParticipantSystem, models.KindStatus, out.Result)
		} else {
			b.Send(models.Participant(d.Worker), models.ParticipantSystem, models.KindResult, out.Result)
		}
		outputs = append(outputs, out)

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	o.status(b, "Preparing final response...")
	response := o.synthesizer.Synthesize(ctx, outputs)
	b.Send(models.ParticipantSystem, models.ParticipantUser, models.KindResult, response)

	return &models.ExecutionResult{
		Response:      response,
		Delegations:   delegations,
		WorkerOutputs: outputs,
		MessageLog:    b.AllMessages(),
	}, nil
}

// executeStep runs a single delegation and always produces an output.
// Unknown worker references fail immediately without any invocation attempt.
func (o *Orchestrator) executeStep(ctx context.Context, d models.Delegation, req Request, previous []models.WorkerOutput) models.WorkerOutput {
	w, err := o.registry.Lookup(d.Worker)
	if err != nil {
		log.Printf("[orchestrator] %v", err)
		return models.WorkerOutput{Worker: d.Worker, Task: d.Task, Result: err.Error(), Failed: true}
	}

	entries := BuildContext(w, req.MediaRef, req.SideContext, previous)

	stepCtx := ctx
	if o.stepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, o.stepTimeout)
		defer cancel()
	}

	result, err := retry.DoValue(stepCtx, o.policy, func() (string, error) {
		return w.Execute(stepCtx, d.Task, entries)
	}, o.retryable)
	if err != nil {
		log.Printf("[orchestrator] %s failed: %v", d.Worker, err)
		return models.WorkerOutput{
			Worker: d.Worker,
			Task:   d.Task,
			Result: fmt.Sprintf("Error: %v", err),
			Failed: true,
		}
	}

	return models.WorkerOutput{Worker: d.Worker, Task: d.Task, Result: result}
}
