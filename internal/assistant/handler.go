package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/features"
	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/metrics"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=assistant_test

type sessionsRepo interface {
	Get(ctx context.Context, sessionID string) (*sessions.Record, error)
}

type ragAssistant interface {
	Chat(ctx context.Context, question string) (ChatResult, error)
	Overview(ctx context.Context, userDataContext string) (string, error)
}

type OverviewRequest struct {
	SessionID string `json:"session_id"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type Response struct {
	Response string `json:"response"`
}

type Handler struct {
	assistant ragAssistant
	repo      sessionsRepo
	metrics   *metrics.Manager
}

func NewHandler(assistant ragAssistant, repo sessionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		assistant: assistant,
		repo:      repo,
		metrics:   metricsManager,
	}
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assistant.overview")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteErrorJSON(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req OverviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("assistant overview, unmarshal json params: %s", err)
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
			pkg.WriteErrorJSONf(w, http.StatusNotFound, "no predictions found for session id: %s", req.SessionID)
			return
		}
		log.Errorf("get session %s: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to load prediction session", http.StatusInternalServerError)
		return
	}

	userDataContext, err := overviewContext(record)
	if err != nil {
		log.Errorf("serialize session %s for overview: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to prepare user data", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterChatRequests.Inc()
	startedAt := time.Now()

	overview, err := handler.assistant.Overview(ctx, userDataContext)
	if err != nil {
		log.Errorf("assistant overview for session %s: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to generate overview", http.StatusInternalServerError)
		return
	}

	handler.metrics.HistGenerationDuration.Observe(time.Since(startedAt).Seconds())
	pkg.WriteJSONResponseOK(w, Response{Response: overview})
}

func (handler *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assistant.chat")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteErrorJSON(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("assistant chat, unmarshal json params: %s", err)
		pkg.WriteErrorJSON(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		pkg.WriteErrorJSON(w, "message empty", http.StatusBadRequest)
		return
	}

	// the session id is logged only, the chat itself is stateless
	log.Debugf("assistant chat, session %s: %d chars", req.SessionID, len(req.Message))

	handler.metrics.CounterChatRequests.Inc()
	startedAt := time.Now()

	result, err := handler.assistant.Chat(ctx, req.Message)
	if err != nil {
		log.Errorf("assistant chat for session %s: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "failed to generate answer", http.StatusInternalServerError)
		return
	}

	if result.OffTopic {
		handler.metrics.CounterOffTopicRejections.Inc()
	} else {
		handler.metrics.HistGenerationDuration.Observe(time.Since(startedAt).Seconds())
	}

	pkg.WriteJSONResponseOK(w, Response{Response: result.Answer})
}

// overviewContext serializes the parts of the record that condition the
// overview. Internal bookkeeping like the normalized feature encoding and
// the update timestamp stays out of the prompt.
func overviewContext(record *sessions.Record) (string, error) {
	contextJson, err := json.MarshalIndent(struct {
		RawInput     features.RawInput     `json:"raw_input"`
		ExercisePlan sessions.ExercisePlan `json:"exercise_plan"`
		DietPlan     *sessions.DietPlan    `json:"diet_plan,omitempty"`
	}{
		RawInput:     record.RawInput,
		ExercisePlan: record.ExercisePlan,
		DietPlan:     record.DietPlan,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(contextJson), nil
}
