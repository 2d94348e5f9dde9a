package models

// WorkerID identifies a specialist worker known to the orchestrator.
type WorkerID string

const (
	// WorkerNutrition handles food analysis, calorie counting, and dietary advice.
	WorkerNutrition WorkerID = "nutrition"
	// WorkerFitness handles exercise recommendations, body stats, and profile queries.
	WorkerFitness WorkerID = "fitness"
)

// Delegation is one planned step: a worker and the task it should perform.
// Delegations are produced once by the planner and never mutated.
type Delegation struct {
	// Worker is the ID of the worker that should handle the task.
	Worker WorkerID `json:"worker"`
	// Task is the instruction passed to the worker.
	Task string `json:"task"`
}

// WorkerOutput is the result of executing one delegation. Every planned step
// produces exactly one output, whether it succeeded or not.
type WorkerOutput struct {
	// Worker is the ID of the worker that was invoked.
	Worker WorkerID `json:"worker"`
	// Task is the instruction the worker received.
	Task string `json:"task"`
	// Result is the worker's response, or an error description when Failed is true.
	Result string `json:"result"`
	// Failed indicates the step failed permanently (retries exhausted,
	// non-retryable error, or unknown worker reference).
	Failed bool `json:"failed"`
}
