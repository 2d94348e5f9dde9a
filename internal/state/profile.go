package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Profile is the user's saved health profile. A single row holds it; saving
// replaces the previous values.
type Profile struct {
	Name               string    `json:"name"`
	Age                int       `json:"age"`
	HeightCM           float64   `json:"height_cm"`
	WeightKG           float64   `json:"weight_kg"`
	ActivityLevel      string    `json:"activity_level"`
	Goals              []string  `json:"goals"`
	DietaryPreferences []string  `json:"dietary_preferences"`
	Conditions         []string  `json:"conditions"`
	DailyCalorieTarget int       `json:"daily_calorie_target"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SideContext renders the profile as key/value pairs for worker context.
// Empty fields are omitted so workers never see blank placeholders.
func (p *Profile) SideContext() map[string]string {
	ctx := make(map[string]string)
	if p.Name != "" {
		ctx["name"] = p.Name
	}
	if p.Age > 0 {
		ctx["age"] = strconv.Itoa(p.Age)
	}
	if p.HeightCM > 0 {
		ctx["height_cm"] = strconv.FormatFloat(p.HeightCM, 'f', -1, 64)
	}
	if p.WeightKG > 0 {
		ctx["weight_kg"] = strconv.FormatFloat(p.WeightKG, 'f', -1, 64)
	}
	if p.ActivityLevel != "" {
		ctx["activity_level"] = p.ActivityLevel
	}
	if len(p.Goals) > 0 {
		ctx["goals"] = strings.Join(p.Goals, ", ")
	}
	if len(p.DietaryPreferences) > 0 {
		ctx["dietary_preferences"] = strings.Join(p.DietaryPreferences, ", ")
	}
	if len(p.Conditions) > 0 {
		ctx["conditions"] = strings.Join(p.Conditions, ", ")
	}
	if p.DailyCalorieTarget > 0 {
		ctx["daily_calorie_target"] = strconv.Itoa(p.DailyCalorieTarget)
	}
	return ctx
}

// SaveProfile stores the profile, replacing any previous one.
func (db *DB) SaveProfile(p *Profile) error {
	goals, _ := json.Marshal(p.Goals)
	prefs, _ := json.Marshal(p.DietaryPreferences)
	conditions, _ := json.Marshal(p.Conditions)

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO profile (id, name, age, height_cm, weight_kg, activity_level,
			goals, dietary_preferences, conditions, daily_calorie_target, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			activity_level = excluded.activity_level,
			goals = excluded.goals,
			dietary_preferences = excluded.dietary_preferences,
			conditions = excluded.conditions,
			daily_calorie_target = excluded.daily_calorie_target,
			updated_at = excluded.updated_at
	`, p.Name, p.Age, p.HeightCM, p.WeightKG, p.ActivityLevel,
		string(goals), string(prefs), string(conditions), p.DailyCalorieTarget, formatTime(updatedAt))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the saved profile, or nil when none exists yet.
func (db *DB) GetProfile() (*Profile, error) {
	row := db.QueryRow(`
		SELECT name, age, height_cm, weight_kg, activity_level,
			goals, dietary_preferences, conditions, daily_calorie_target, updated_at
		FROM profile WHERE id = 1
	`)

	var p Profile
	var name, activityLevel, goals, prefs, conditions sql.NullString
	var updatedAt string
	err := row.Scan(&name, &p.Age, &p.HeightCM, &p.WeightKG, &activityLevel,
		&goals, &prefs, &conditions, &p.DailyCalorieTarget, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if name.Valid {
		p.Name = name.String
	}
	if activityLevel.Valid {
		p.ActivityLevel = activityLevel.String
	}
	if goals.Valid {
		json.Unmarshal([]byte(goals.String), &p.Goals)
	}
	if prefs.Valid {
		json.Unmarshal([]byte(prefs.String), &p.DietaryPreferences)
	}
	if conditions.Valid {
		json.Unmarshal([]byte(conditions.String), &p.Conditions)
	}
	p.UpdatedAt, _ = parseTime(updatedAt)
	return &p, nil
}

// DeleteProfile removes the saved profile.
func (db *DB) DeleteProfile() error {
	_, err := db.Exec("DELETE FROM profile WHERE id = 1")
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
