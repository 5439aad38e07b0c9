package features

import (
	"fmt"
	"strings"

	"github.com/vitafit/backend/internal/mlmodel"
)

const (
	cmToInches   = 0.393701
	feetToInches = 12
	lbsToKg      = 0.453592
	inchesToM    = 0.0254
)

// ValidationError - caller input out of its declared domain
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RawInput is the measurement submission as received from the client,
// kept immutable in the session record once stage 1 is stored.
type RawInput struct {
	SessionID      string  `json:"session_id"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	HeightValue    float64 `json:"height_value"`
	HeightUnit     string  `json:"height_unit"`
	WeightValue    float64 `json:"weight_value"`
	WeightUnit     string  `json:"weight_unit"`
	CaloriesIntake int     `json:"calories_intake"`
}

func (in RawInput) Validate() error {
	switch {
	case in.SessionID == "":
		return &ValidationError{Field: "session_id", Reason: "must not be empty"}
	case in.Age <= 0:
		return &ValidationError{Field: "age", Reason: "must be positive"}
	case in.Age >= 120:
		return &ValidationError{Field: "age", Reason: "must be below 120"}
	case in.HeightValue <= 0:
		return &ValidationError{Field: "height_value", Reason: "must be positive"}
	case in.WeightValue <= 0:
		return &ValidationError{Field: "weight_value", Reason: "must be positive"}
	case in.CaloriesIntake <= 0:
		return &ValidationError{Field: "calories_intake", Reason: "must be positive"}
	}
	return nil
}

// NormalizedFeatures is the canonical, unit-converted representation of
// user biometrics used by both predictors. Height is in inches, weight in
// kilograms; gender is encoded through the exercise model's vocabulary.
type NormalizedFeatures struct {
	Age            int     `json:"age"`
	Gender         int     `json:"gender"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	BMI            float64 `json:"bmi"`
	CaloriesIntake int     `json:"calories_intake"`
}

// Vector returns the feature values in the fixed order the exercise model
// artifacts were trained with: age, gender, height, weight, bmi,
// calories_intake.
func (f NormalizedFeatures) Vector() []float64 {
	return []float64{
		float64(f.Age),
		float64(f.Gender),
		f.Height,
		f.Weight,
		f.BMI,
		float64(f.CaloriesIntake),
	}
}

// Normalize converts a raw measurement submission into the canonical
// feature set. It is a pure transformation, no side effects.
func Normalize(in RawInput, genderVocab *mlmodel.Vocabulary) (NormalizedFeatures, error) {
	if err := in.Validate(); err != nil {
		return NormalizedFeatures{}, err
	}

	heightInInches := in.HeightValue
	switch strings.ToLower(in.HeightUnit) {
	case "inches":
		// already canonical
	case "cm":
		heightInInches = in.HeightValue * cmToInches
	case "feet":
		heightInInches = in.HeightValue * feetToInches
	default:
		return NormalizedFeatures{}, &ValidationError{
			Field:  "height_unit",
			Reason: fmt.Sprintf("%q not one of: cm, inches, feet", in.HeightUnit),
		}
	}

	weightInKg := in.WeightValue
	switch strings.ToLower(in.WeightUnit) {
	case "kg":
		// already canonical
	case "lbs":
		weightInKg = in.WeightValue * lbsToKg
	default:
		return NormalizedFeatures{}, &ValidationError{
			Field:  "weight_unit",
			Reason: fmt.Sprintf("%q not one of: kg, lbs", in.WeightUnit),
		}
	}

	// guard the bmi division, bmi is defined as 0 when height resolves to 0
	heightInMeters := heightInInches * inchesToM
	bmi := 0.0
	if heightInMeters > 0 {
		bmi = weightInKg / (heightInMeters * heightInMeters)
	}

	encodedGender, err := genderVocab.Encode(strings.ToLower(in.Gender))
	if err != nil {
		return NormalizedFeatures{}, err
	}

	return NormalizedFeatures{
		Age:            in.Age,
		Gender:         encodedGender,
		Height:         heightInInches,
		Weight:         weightInKg,
		BMI:            bmi,
		CaloriesIntake: in.CaloriesIntake,
	}, nil
}
