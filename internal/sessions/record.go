package sessions

import (
	"time"

	"github.com/vitafit/backend/internal/features"
)

// ExercisePlan is the stage 1 prediction output.
type ExercisePlan struct {
	ExerciseType         string  `json:"exercise_type"`
	IntensityLevel       string  `json:"intensity_level"`
	FrequencyPerWeek     int     `json:"frequency_per_week"`
	DurationMinutes      float64 `json:"duration_minutes"`
	EstimatedCalorieBurn float64 `json:"estimated_calorie_burn"`
}

// DietPlan is the stage 2 prediction output.
type DietPlan struct {
	RecommendedCalories float64 `json:"recommended_calories"`
	ProteinGramsPerDay  float64 `json:"protein_grams_per_day"`
	CarbsGramsPerDay    float64 `json:"carbs_grams_per_day"`
	FatsGramsPerDay     float64 `json:"fats_grams_per_day"`
}

// Record is a user's prediction session, keyed by the caller-supplied
// session id. The raw input is kept exactly as submitted; stage 2 fills
// in the diet plan on top of the stage 1 snapshot.
type Record struct {
	SessionID          string                      `json:"session_id"`
	RawInput           features.RawInput           `json:"raw_input"`
	NormalizedFeatures features.NormalizedFeatures `json:"normalized_features"`
	ExercisePlan       ExercisePlan                `json:"exercise_plan"`
	DietPlan           *DietPlan                   `json:"diet_plan,omitempty"`
	LastUpdated        time.Time                   `json:"last_updated"`
}
