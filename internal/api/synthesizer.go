package api

import (
	"context"
	"fmt"
)

const synthesizerSystemPrompt = `You are the Coordinator for a personal health butler.
You are given the outputs of several specialist workers that handled parts of one user request.
Combine them into a single cohesive, user-friendly answer. Do not mention the workers or the synthesis process.`

// Synthesizer reduces multiple labeled worker outputs into one unified
// answer via Claude. It implements the orchestrator's synthesis capability.
type Synthesizer struct {
	client *Client
}

// NewSynthesizer creates a Claude-backed response synthesizer.
func NewSynthesizer(client *Client) *Synthesizer {
	return &Synthesizer{client: client}
}

// Synthesize sends the combined instruction and returns the unified answer.
func (s *Synthesizer) Synthesize(ctx context.Context, instruction string) (string, error) {
	result, err := s.client.Complete(ctx, synthesizerSystemPrompt, instruction, 2048)
	if err != nil {
		return "", fmt.Errorf("synthesis request: %w", err)
	}
	if result == "" {
		return "", fmt.Errorf("synthesis returned empty response")
	}
	return result, nil
}
