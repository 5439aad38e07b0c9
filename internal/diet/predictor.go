package diet

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vitafit/backend/internal/features"
	"github.com/vitafit/backend/internal/mlmodel"
	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

var ErrModelsNotLoaded = errors.New("diet models not loaded")

const (
	vocabGender         = "gender"
	vocabExerciseType   = "exercise_type"
	vocabIntensityLevel = "intensity_level"
	vocabActivityLevel  = "activity_level"
)

// Predictor turns the stage 1 outcome into a diet plan. It carries its own
// vocabularies, trained separately from the exercise ones, so the two
// models can never get entangled through shared label tables.
type Predictor struct {
	regressor *mlmodel.LinearRegressor
	vocabs    map[string]*mlmodel.Vocabulary
}

func NewPredictor(modelsPath string) (*Predictor, error) {
	regressor, err := mlmodel.LoadRegressor(filepath.Join(modelsPath, "regressor.json"))
	if err != nil {
		return nil, fmt.Errorf("load diet regressor: %w", err)
	}
	vocabs, err := mlmodel.LoadVocabularies(
		filepath.Join(modelsPath, "encoders.json"),
		vocabGender, vocabExerciseType, vocabIntensityLevel, vocabActivityLevel,
	)
	if err != nil {
		return nil, fmt.Errorf("load diet vocabularies: %w", err)
	}

	return &Predictor{
		regressor: regressor,
		vocabs:    vocabs,
	}, nil
}

// Predict derives the activity level from the exercise plan, encodes the
// categorical inputs through the diet vocabularies and runs the
// regression. The feature order is fixed by the training pipeline.
func (p *Predictor) Predict(
	ctx context.Context,
	userFeatures features.NormalizedFeatures,
	exercisePlan sessions.ExercisePlan,
	rawGender string,
) (sessions.DietPlan, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "dietPredictor.Predict")
	defer span.End()

	if p == nil || p.regressor == nil {
		return sessions.DietPlan{}, ErrModelsNotLoaded
	}

	activityLevel := ActivityLevelFor(exercisePlan.FrequencyPerWeek, exercisePlan.IntensityLevel)

	genderCode, err := p.vocabs[vocabGender].Encode(strings.ToLower(rawGender))
	if err != nil {
		return sessions.DietPlan{}, err
	}
	exerciseTypeCode, err := p.vocabs[vocabExerciseType].Encode(strings.ToLower(exercisePlan.ExerciseType))
	if err != nil {
		return sessions.DietPlan{}, err
	}
	intensityCode, err := p.vocabs[vocabIntensityLevel].Encode(strings.ToLower(exercisePlan.IntensityLevel))
	if err != nil {
		return sessions.DietPlan{}, err
	}
	activityCode, err := p.vocabs[vocabActivityLevel].Encode(activityLevel)
	if err != nil {
		return sessions.DietPlan{}, err
	}

	featureVector := []float64{
		float64(userFeatures.Age),
		float64(genderCode),
		userFeatures.Height,
		userFeatures.Weight,
		userFeatures.BMI,
		float64(userFeatures.CaloriesIntake),
		float64(exerciseTypeCode),
		float64(intensityCode),
		float64(exercisePlan.FrequencyPerWeek),
		float64(activityCode),
	}

	outputs, err := p.regressor.Predict(featureVector)
	if err != nil {
		return sessions.DietPlan{}, fmt.Errorf("predict diet targets: %w", err)
	}

	plan := sessions.DietPlan{}
	for i, name := range p.regressor.Outputs {
		value := pkg.RoundTo2Decimals(outputs[i])
		switch name {
		case "recommended_calories":
			plan.RecommendedCalories = value
		case "protein_grams_per_day":
			plan.ProteinGramsPerDay = value
		case "carbs_grams_per_day":
			plan.CarbsGramsPerDay = value
		case "fats_grams_per_day":
			plan.FatsGramsPerDay = value
		}
	}

	return plan, nil
}
