package diet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/features"
	"github.com/vitafit/backend/internal/mlmodel"
	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/metrics"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=diet_test

type sessionsRepo interface {
	Get(ctx context.Context, sessionID string) (*sessions.Record, error)
	UpsertStage2(ctx context.Context, sessionID string, dietPlan sessions.DietPlan) error
}

type planPredictor interface {
	Predict(
		ctx context.Context,
		userFeatures features.NormalizedFeatures,
		exercisePlan sessions.ExercisePlan,
		rawGender string,
	) (sessions.DietPlan, error)
}

type PredictRequest struct {
	SessionID string `json:"session_id"`
}

type PredictResponse struct {
	SessionID string            `json:"session_id"`
	DietPlan  sessions.DietPlan `json:"diet_plan"`
	Message   string            `json:"message"`
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
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.predict")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteErrorJSON(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("predict diet, unmarshal json params: %s", err)
		pkg.WriteErrorJSON(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		pkg.WriteErrorJSON(w, "session_id empty", http.StatusBadRequest)
		return
	}

	record, err := handler.repo.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			pkg.WriteErrorJSON(
				w,
				"session not found, complete the exercise prediction step first",
				http.StatusNotFound,
			)
			return
		}
		log.Errorf("get session %s: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to load prediction session", http.StatusInternalServerError)
		return
	}

	plan, err := handler.predictor.Predict(
		ctx, record.NormalizedFeatures, record.ExercisePlan, record.RawInput.Gender,
	)
	if err != nil {
		var encodingErr *mlmodel.EncodingError
		switch {
		case errors.Is(err, ErrModelsNotLoaded):
			pkg.WriteErrorJSON(w, "diet prediction unavailable", http.StatusServiceUnavailable)
		case errors.As(err, &encodingErr):
			pkg.WriteErrorJSON(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("predict diet for session %s: %s", req.SessionID, err)
			pkg.WriteErrorJSON(w, "diet prediction failed", http.StatusInternalServerError)
		}
		return
	}

	if err := handler.repo.UpsertStage2(ctx, req.SessionID, plan); err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			pkg.WriteErrorJSON(
				w,
				"session not found, complete the exercise prediction step first",
				http.StatusNotFound,
			)
			return
		}
		log.Errorf("store diet plan for session %s: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to store diet plan", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDietPlans.Inc()
	log.Debugf("diet plan generated for session %s", req.SessionID)

	pkg.WriteJSONResponseOK(w, PredictResponse{
		SessionID: req.SessionID,
		DietPlan:  plan,
		Message:   "Diet plan generated.",
	})
}
