package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/metrics"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=report_test

type sessionsRepo interface {
	Get(ctx context.Context, sessionID string) (*sessions.Record, error)
}

type GenerateRequest struct {
	SessionID   string       `json:"session_id"`
	UserDetails *UserDetails `json:"user_details,omitempty"`
}

type Handler struct {
	repo    sessionsRepo
	metrics *metrics.Manager
}

func NewHandler(repo sessionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.report.generate")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteErrorJSON(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("generate report, unmarshal json params: %s", err)
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

	pdfBytes, err := Generate(record, req.UserDetails)
	if err != nil {
		log.Errorf("generate report for session %s: %s", req.SessionID, err)
		pkg.WriteErrorJSON(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterReportsGenerated.Inc()
	log.Debugf("report generated for session %s, %d bytes", req.SessionID, len(pdfBytes))

	fileName := fmt.Sprintf(
		"Fitness_Report_%s_%s.pdf",
		req.SessionID, time.Now().Format("2006-01-02"),
	)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.PDF, pdfBytes)
}
