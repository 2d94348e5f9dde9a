package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/healthbutler/swarm/pkg/models"
)

var workerCaser = cases.Title(language.English)

// SynthesizeCapability reduces a combined instruction containing all labeled
// worker outputs into one unified answer.
type SynthesizeCapability interface {
	Synthesize(ctx context.Context, instruction string) (string, error)
}

// Synthesizer reduces worker outputs into the final user-facing response.
type Synthesizer struct {
	capability SynthesizeCapability
	apology    string
}

// NewSynthesizer creates a synthesizer. capability may be nil, in which case
// multi-output requests are answered with a labeled concatenation. apology
// is returned when no step produced a usable result.
func NewSynthesizer(capability SynthesizeCapability, apology string) *Synthesizer {
	return &Synthesizer{capability: capability, apology: apology}
}

// Synthesize produces the final response:
//   - no successful outputs: the fixed apology string
//   - exactly one: that output verbatim, with no reformatting
//   - two or more: one unified answer from the synthesis capability; if the
//     capability is missing or fails, a labeled concatenation of the outputs
//     (a degraded answer beats aborting a request that already did the work)
func (s *Synthesizer) Synthesize(ctx context.Context, outputs []models.WorkerOutput) string {
	var successes []models.WorkerOutput
	for _, o := range outputs {
		if !o.Failed {
			successes = append(successes, o)
		}
	}

	switch len(successes) {
	case 0:
		return s.apology
	case 1:
		return successes[0].Result
	}

	if s.capability != nil {
		unified, err := s.capability.Synthesize(ctx, synthesisInstruction(successes))
		if err == nil && unified != "" {
			return unified
		}
		if err != nil {
			log.Printf("[synthesizer] capability failed, concatenating outputs: %v", err)
		}
	}

	return concatenate(successes)
}

// synthesisInstruction labels each worker's output for the synthesis call.
func synthesisInstruction(successes []models.WorkerOutput) string {
	var sb strings.Builder
	sb.WriteString("Synthesize the following specialist outputs into a cohesive response:\n\n")
	for _, o := range successes {
		fmt.Fprintf(&sb, "[%s Worker]:\n%s\n\n", workerCaser.String(string(o.Worker)), o.Result)
	}
	sb.WriteString("Provide a unified, user-friendly summary.")
	return sb.String()
}

// concatenate is the degraded multi-output rendering.
func concatenate(successes []models.WorkerOutput) string {
	parts := make([]string, 0, len(successes))
	for _, o := range successes {
		parts = append(parts, fmt.Sprintf("**%s**\n%s", workerCaser.String(string(o.Worker)), o.Result))
	}
	return strings.Join(parts, "\n\n")
}
