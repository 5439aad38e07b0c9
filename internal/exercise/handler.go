package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/features"
	"github.com/vitafit/backend/internal/mlmodel"
	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/metrics"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercise_test

type sessionsRepo interface {
	UpsertStage1(ctx context.Context, record sessions.Record) error
}

type planPredictor interface {
	GenderVocabulary() (*mlmodel.Vocabulary, error)
	Predict(ctx context.Context, userFeatures features.NormalizedFeatures) (sessions.ExercisePlan, error)
}

type PredictResponse struct {
	SessionID    string                `json:"session_id"`
	ExercisePlan sessions.ExercisePlan `json:"exercise_plan"`
	Message      string                `json:"message"`
}

type Handler struct {
	predictor planPredictor
	repo      sessionsRepo
	metrics   *metrics.Manager
}

func NewHandler(predictor planPredictor, repo sessionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		predictor: predictor,
		repo:      repo,
		metrics:   metricsManager,
	}
}

func (handler *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercise.predict")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteErrorJSON(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var input features.RawInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("predict exercise, unmarshal json params: %s", err)
		pkg.WriteErrorJSON(w, "invalid request body", http.StatusBadRequest)
		return
	}

	genderVocab, err := handler.predictor.GenderVocabulary()
	if err != nil {
		log.Errorf("predict exercise: %s", err)
		pkg.WriteErrorJSON(w, "exercise prediction unavailable", http.StatusServiceUnavailable)
		return
	}

	normalized, err := features.Normalize(input, genderVocab)
	if err != nil {
		var validationErr *features.ValidationError
		var encodingErr *mlmodel.EncodingError
		switch {
		case errors.As(err, &validationErr), errors.As(err, &encodingErr):
			pkg.WriteErrorJSON(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("normalize input for session %s: %s", input.SessionID, err)
			pkg.WriteErrorJSON(w, "failed to process input", http.StatusInternalServerError)
		}
		return
	}

	plan, err := handler.predictor.Predict(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrModelsNotLoaded) {
			pkg.WriteErrorJSON(w, "exercise prediction unavailable", http.StatusServiceUnavailable)
			return
		}
		log.Errorf("predict exercise for session %s: %s", input.SessionID, err)
		pkg.WriteErrorJSON(w, "exercise prediction failed", http.StatusInternalServerError)
		return
	}

	record := sessions.Record{
		SessionID:          input.SessionID,
		RawInput:           input,
		NormalizedFeatures: normalized,
		ExercisePlan:       plan,
		LastUpdated:        time.Now(),
	}
	if err := handler.repo.UpsertStage1(ctx, record); err != nil {
		log.Errorf("store session %s: %s", input.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to store prediction session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercisePlans.Inc()
	log.Debugf("exercise plan generated for session %s: %s", input.SessionID, plan.ExerciseType)

	pkg.WriteJSONResponseOK(w, PredictResponse{
		SessionID:    input.SessionID,
		ExercisePlan: plan,
		Message:      "Exercise plan generated. Submit the session id to receive a diet plan.",
	})
}
