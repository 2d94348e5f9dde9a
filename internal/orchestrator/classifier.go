package orchestrator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/healthbutler/swarm/pkg/models"
)

// identityTask is the fixed instruction sent for profile/identity queries.
const identityTask = "Show the user's saved profile details and current goals and preferences."

// chainFollowUpTask is the fixed instruction for the fitness step of a
// nutrition-then-fitness chain. It references the nutrition analysis by
// position, never by content; the actual output arrives via context.
const chainFollowUpTask = "Based on the previous nutrition analysis, suggest appropriate exercises to balance this meal."

// Classifier is the deterministic rule-based delegation planner used when
// LLM planning is unavailable or produces an unusable result. It never
// returns an empty plan.
type Classifier struct {
	vocab       Vocabulary
	identity    []*regexp.Regexp
	transitions []*regexp.Regexp
}

// NewClassifier compiles the vocabulary's identity patterns and transition
// phrases. Invalid patterns are an error: a misloaded vocabulary should
// fail at startup, not silently misroute.
func NewClassifier(vocab Vocabulary) (*Classifier, error) {
	identity := make([]*regexp.Regexp, 0, len(vocab.IdentityPatterns))
	for _, p := range vocab.IdentityPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile identity pattern %q: %w", p, err)
		}
		identity = append(identity, re)
	}

	// Transition phrases match on word boundaries so "ate" does not fire
	// inside "plate" or "update".
	transitions := make([]*regexp.Regexp, 0, len(vocab.TransitionPhrases))
	for _, p := range vocab.TransitionPhrases {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(p) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile transition phrase %q: %w", p, err)
		}
		transitions = append(transitions, re)
	}

	return &Classifier{vocab: vocab, identity: identity, transitions: transitions}, nil
}

// Classify produces a delegation plan for the user's text. Rules are
// evaluated in strict precedence order:
//  1. identity/profile query -> the designated identity worker, alone
//  2. both categories + consumption transition -> nutrition then chained fitness
//  3. both categories, no transition -> two independent delegations
//  4. single category -> that worker
//  5. nothing matched -> the default worker
func (c *Classifier) Classify(text string) []models.Delegation {
	lower := strings.ToLower(strings.TrimSpace(text))

	if c.isIdentityQuery(lower) {
		return []models.Delegation{{Worker: c.vocab.IdentityWorker, Task: identityTask}}
	}

	hasNutrition := containsAny(lower, c.vocab.NutritionKeywords)
	hasFitness := containsAny(lower, c.vocab.FitnessKeywords)

	switch {
	case hasNutrition && hasFitness && c.hasTransition(lower):
		return []models.Delegation{
			{Worker: models.WorkerNutrition, Task: text},
			{Worker: models.WorkerFitness, Task: chainFollowUpTask},
		}
	case hasNutrition && hasFitness:
		return []models.Delegation{
			{Worker: models.WorkerNutrition, Task: text},
			{Worker: models.WorkerFitness, Task: text},
		}
	case hasFitness:
		return []models.Delegation{{Worker: models.WorkerFitness, Task: text}}
	case hasNutrition:
		return []models.Delegation{{Worker: models.WorkerNutrition, Task: text}}
	default:
		return []models.Delegation{{Worker: c.vocab.DefaultWorker, Task: text}}
	}
}

func (c *Classifier) isIdentityQuery(lower string) bool {
	if lower == "" {
		return false
	}
	for _, re := range c.identity {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasTransition(lower string) bool {
	for _, re := range c.transitions {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
