package models

// ExecutionResult is the complete outcome of one orchestrated request.
// It is immutable once returned; all slices are owned by the caller.
type ExecutionResult struct {
	// Response is the final synthesized user-facing answer.
	Response string `json:"response"`
	// Delegations is the plan that was executed, in order.
	Delegations []Delegation `json:"delegations"`
	// WorkerOutputs holds one entry per delegation, success or failure,
	// in execution order. len(WorkerOutputs) == len(Delegations).
	WorkerOutputs []WorkerOutput `json:"worker_outputs"`
	// MessageLog is the full inter-component message trail for this call.
	MessageLog []Message `json:"message_log"`
}

// Succeeded returns the non-failed worker outputs in execution order.
func (r *ExecutionResult) Succeeded() []WorkerOutput {
	var out []WorkerOutput
	for _, o := range r.WorkerOutputs {
		if !o.Failed {
			out = append(out, o)
		}
	}
	return out
}
