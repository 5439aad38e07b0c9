package exercise

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/features"
	"github.com/vitafit/backend/internal/mlmodel"
	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

// ErrModelsNotLoaded - the trained artifacts are unavailable and a reload
// attempt did not bring them back
var ErrModelsNotLoaded = errors.New("exercise models not loaded")

const (
	VocabGender         = "gender"
	VocabExerciseType   = "exercise_type"
	VocabIntensityLevel = "intensity_level"
)

type artifacts struct {
	classifier *mlmodel.LinearClassifier
	regressor  *mlmodel.LinearRegressor
	vocabs     map[string]*mlmodel.Vocabulary
}

// Predictor turns normalized user features into an exercise plan using
// the trained classifier and regressor artifacts. Artifacts are loaded at
// construction; if that failed, each prediction retries the load exactly
// once, with concurrent callers blocking on the same attempt.
type Predictor struct {
	modelsPath string

	mu        sync.Mutex
	artifacts *artifacts
}

func NewPredictor(modelsPath string) *Predictor {
	predictor := &Predictor{
		modelsPath: modelsPath,
	}
	if err := predictor.Load(); err != nil {
		log.Errorf("exercise predictor: initial artifacts load: %s", err)
	}
	return predictor
}

// Load reads the artifact files and swaps them in atomically. Safe for
// concurrent use.
func (p *Predictor) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked()
}

func (p *Predictor) loadLocked() error {
	classifier, err := mlmodel.LoadClassifier(filepath.Join(p.modelsPath, "classifier.json"))
	if err != nil {
		return fmt.Errorf("load exercise classifier: %w", err)
	}
	regressor, err := mlmodel.LoadRegressor(filepath.Join(p.modelsPath, "regressor.json"))
	if err != nil {
		return fmt.Errorf("load exercise regressor: %w", err)
	}
	vocabs, err := mlmodel.LoadVocabularies(
		filepath.Join(p.modelsPath, "encoders.json"),
		VocabGender, VocabExerciseType, VocabIntensityLevel,
	)
	if err != nil {
		return fmt.Errorf("load exercise vocabularies: %w", err)
	}

	p.artifacts = &artifacts{
		classifier: classifier,
		regressor:  regressor,
		vocabs:     vocabs,
	}
	return nil
}

// getArtifacts returns the loaded artifacts, retrying the load once when
// they are missing. The mutex makes the retry single flight.
func (p *Predictor) getArtifacts() (*artifacts, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.artifacts != nil {
		return p.artifacts, nil
	}

	log.Warnf("exercise artifacts missing, reloading from %s", p.modelsPath)
	if err := p.loadLocked(); err != nil {
		log.Errorf("exercise artifacts reload: %s", err)
		return nil, ErrModelsNotLoaded
	}
	return p.artifacts, nil
}

// GenderVocabulary exposes the gender label table the artifacts were
// trained with, used to encode raw input during normalization.
func (p *Predictor) GenderVocabulary() (*mlmodel.Vocabulary, error) {
	loaded, err := p.getArtifacts()
	if err != nil {
		return nil, err
	}
	return loaded.vocabs[VocabGender], nil
}

func (p *Predictor) Predict(
	ctx context.Context,
	userFeatures features.NormalizedFeatures,
) (sessions.ExercisePlan, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "exercisePredictor.Predict")
	defer span.End()

	loaded, err := p.getArtifacts()
	if err != nil {
		return sessions.ExercisePlan{}, err
	}

	featureVector := userFeatures.Vector()

	classCodes, err := loaded.classifier.Predict(featureVector)
	if err != nil {
		return sessions.ExercisePlan{}, fmt.Errorf("classify exercise: %w", err)
	}

	plan := sessions.ExercisePlan{}
	for i, head := range loaded.classifier.Heads {
		vocab, ok := loaded.vocabs[head.Name]
		if !ok {
			return sessions.ExercisePlan{}, &mlmodel.ModelStateError{
				Vocabulary: head.Name, Code: classCodes[i],
			}
		}
		label, err := vocab.Decode(classCodes[i])
		if err != nil {
			return sessions.ExercisePlan{}, err
		}
		switch head.Name {
		case VocabExerciseType:
			plan.ExerciseType = label
		case VocabIntensityLevel:
			plan.IntensityLevel = label
		}
	}

	regOutputs, err := loaded.regressor.Predict(featureVector)
	if err != nil {
		return sessions.ExercisePlan{}, fmt.Errorf("predict exercise targets: %w", err)
	}
	for i, name := range loaded.regressor.Outputs {
		value := math.Max(0, regOutputs[i])
		switch name {
		case "frequency_per_week":
			plan.FrequencyPerWeek = int(math.Round(value))
		case "duration_minutes":
			plan.DurationMinutes = pkg.RoundTo2Decimals(value)
		case "estimated_calorie_burn":
			plan.EstimatedCalorieBurn = pkg.RoundTo2Decimals(value)
		}
	}

	return plan, nil
}
