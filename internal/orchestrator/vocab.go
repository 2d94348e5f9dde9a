package orchestrator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/healthbutler/swarm/pkg/models"
)

// Vocabulary holds the keyword sets and patterns driving the deterministic
// fallback classifier. The zero value is not usable; start from
// DefaultVocabulary or LoadVocabulary.
type Vocabulary struct {
	// NutritionKeywords route to the nutrition worker on substring match.
	NutritionKeywords []string `yaml:"nutrition_keywords"`
	// FitnessKeywords route to the fitness worker on substring match.
	FitnessKeywords []string `yaml:"fitness_keywords"`
	// TransitionPhrases mark a consumed meal and trigger the
	// nutrition-then-fitness chain when both categories match. They are
	// matched on word boundaries, unlike the keyword sets.
	TransitionPhrases []string `yaml:"transition_phrases"`
	// IdentityPatterns are regular expressions matching profile/identity
	// queries. They take absolute precedence over keyword routing.
	IdentityPatterns []string `yaml:"identity_patterns"`
	// IdentityWorker receives identity/profile queries.
	IdentityWorker models.WorkerID `yaml:"identity_worker"`
	// DefaultWorker receives requests nothing else matched.
	DefaultWorker models.WorkerID `yaml:"default_worker"`
}

// DefaultVocabulary returns the built-in routing vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		NutritionKeywords: []string{
			// Food & eating
			"food", "eat", "ate", "eating", "eaten",
			"calorie", "calories", "kcal",
			"meal", "meals", "dish",
			"nutrition", "nutrient", "nutritional",
			"diet", "dietary",
			// Meals of the day
			"lunch", "dinner", "breakfast", "brunch", "snack", "supper",
			// Food items
			"recipe", "ingredient", "cook", "cooking",
			"protein", "carb", "carbs", "fiber", "sugar", "sodium",
			// Macro tracking
			"macro", "macros", "intake", "portion",
		},
		FitnessKeywords: []string{
			// Exercise & workout
			"exercise", "workout", "work out", "gym", "fitness", "training",
			"stretch", "yoga", "cardio", "hiit", "plank", "squat", "pushup",
			"push-up", "pull-up", "pullup", "deadlift", "bench press",
			// Activity tracking
			"walk", "run", "jog", "swim", "bike", "cycling", "steps",
			"activity", "active", "sedentary",
			// Body stats & goals
			"tall", "height", "weight", "bmi", "muscle",
			"goal", "progress", "lose weight", "gain muscle",
			"weight loss", "weight gain", "bulk", "cut",
			// Recommendations
			"suggest exercise", "recommend exercise", "what exercise",
			"what workout", "how to burn",
		},
		TransitionPhrases: []string{"ate", "just ate", "i ate"},
		IdentityPatterns: []string{
			`\bwho\s*am\s*i\b`,
			`\bwhoami\b`,
			`\bmy\s+profile\b`,
			`\bshow\s+(me\s+)?(my\s+)?profile\b`,
			`\b(profile|stats|metrics)\b\s*\??$`,
			`\bwhat('?s| is)\s+my\s+(name|age|height|weight|goal|diet|conditions|activity|preferences)\b`,
			`\bmy\s+(name|age|height|weight|goal|goals|diet|conditions|activity|preferences)\b\s*\??$`,
			`\b(daily\s+)?calorie\s+target\b`,
			`\btarget\s+calories\b`,
			`\bdaily\s+target\b`,
		},
		IdentityWorker: models.WorkerFitness,
		DefaultWorker:  models.WorkerNutrition,
	}
}

// LoadVocabulary reads a YAML vocabulary file. Fields left empty in the file
// keep their built-in defaults, so a file may override just one set.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var loaded Vocabulary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return vocab, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}

	if len(loaded.NutritionKeywords) > 0 {
		vocab.NutritionKeywords = loaded.NutritionKeywords
	}
	if len(loaded.FitnessKeywords) > 0 {
		vocab.FitnessKeywords = loaded.FitnessKeywords
	}
	if len(loaded.TransitionPhrases) > 0 {
		vocab.TransitionPhrases = loaded.TransitionPhrases
	}
	if len(loaded.IdentityPatterns) > 0 {
		vocab.IdentityPatterns = loaded.IdentityPatterns
	}
	if loaded.IdentityWorker != "" {
		vocab.IdentityWorker = loaded.IdentityWorker
	}
	if loaded.DefaultWorker != "" {
		vocab.DefaultWorker = loaded.DefaultWorker
	}

	return vocab, nil
}
