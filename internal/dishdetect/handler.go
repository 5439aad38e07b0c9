package dishdetect

import (
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/telemetry/metrics"
	"github.com/vitafit/backend/internal/telemetry/tracing"
	"github.com/vitafit/backend/pkg"
)

const maxImageSizeBytes = 10 << 20

// DishInfo is one detection enriched with the static dish metadata.
type DishInfo struct {
	ClassName         string    `json:"class_name"`
	Confidence        float64   `json:"confidence"`
	Box               []float64 `json:"box"`
	Origin            string    `json:"origin,omitempty"`
	Description       string    `json:"description,omitempty"`
	EstimatedCalories string    `json:"estimated_calories,omitempty"`
}

type DetectionResponse struct {
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Detections []DishInfo `json:"detections"`
}

// Handler serves dish image classification. The detector may be nil when
// no inference service is configured; only this endpoint degrades then.
type Handler struct {
	detector *Detector
	metrics  *metrics.Manager
}

func NewHandler(detector *Detector, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		detector: detector,
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dishdetect.classify")
	defer span.End()

	if handler.detector == nil {
		pkg.WriteErrorJSON(w, "dish detection unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxImageSizeBytes); err != nil {
		log.Tracef("classify dish, parse multipart form: %s", err)
		pkg.WriteErrorJSON(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		pkg.WriteErrorJSON(w, "image file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		pkg.WriteErrorJSON(w, "file must be an image", http.StatusBadRequest)
		return
	}

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("classify dish, read image: %s", err)
		pkg.WriteErrorJSON(w, "failed to read image", http.StatusInternalServerError)
		return
	}

	detections, err := handler.detector.Detect(ctx, imageBytes, fileHeader.Filename)
	if err != nil {
		log.Errorf("classify dish: %s", err)
		pkg.WriteErrorJSON(w, "dish detection failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDishDetections.Inc()

	best := bestDetection(detections)
	if best == nil {
		pkg.WriteJSONResponseOK(w, DetectionResponse{
			Status:     "success",
			Message:    "No known dishes detected in the image.",
			Detections: []DishInfo{},
		})
		return
	}

	dishInfo := DishInfo{
		ClassName:  best.ClassName,
		Confidence: best.Confidence,
		Box:        best.Box,
	}
	if details, ok := DishDetailsFor(best.ClassName); ok {
		dishInfo.Origin = details.Origin
		dishInfo.Description = details.Description
		dishInfo.EstimatedCalories = details.EstimatedCalories
	}

	log.Debugf("dish detected: %s (%.2f)", best.ClassName, best.Confidence)

	pkg.WriteJSONResponseOK(w, DetectionResponse{
		Status:     "success",
		Message:    "Most confident dish detected.",
		Detections: []DishInfo{dishInfo},
	})
}

func bestDetection(detections []Detection) *Detection {
	var best *Detection
	for i := range detections {
		if best == nil || detections[i].Confidence > best.Confidence {
			best = &detections[i]
		}
	}
	return best
}
