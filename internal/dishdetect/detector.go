package dishdetect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/vitafit/backend/internal/telemetry/tracing"
)

// Detection is a single bounding box detection as returned by the
// inference service.
type Detection struct {
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
	Box        []float64 `json:"box"`
}

// Detector talks to the external dish detection inference service. The
// model itself lives behind that service; this process only forwards the
// uploaded image and reads back the detections.
type Detector struct {
	endpoint   string
	httpClient *http.Client
}

func NewDetector(endpoint string, httpClient *http.Client) *Detector {
	return &Detector{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Detect posts the image to the inference service and returns all
// detections, unordered.
func (d *Detector) Detect(ctx context.Context, imageBytes []byte, fileName string) ([]Detection, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dishDetector.Detect")
	defer span.End()

	var body bytes.Buffer
	multipartWriter := multipart.NewWriter(&body)
	filePart, err := multipartWriter.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create multipart file part: %w", err)
	}
	if _, err := filePart.Write(imageBytes); err != nil {
		return nil, fmt.Errorf("write image bytes: %w", err)
	}
	if err := multipartWriter.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	detectURL := fmt.Sprintf("%s/detect", d.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, detectURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", multipartWriter.FormDataContentType())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("call dish detector: %s", err))
		return nil, fmt.Errorf("call dish detector: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dish detector response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Errorf("dish detector returned %d: %s", resp.StatusCode, respBytes)
		return nil, fmt.Errorf("dish detector returned status %d", resp.StatusCode)
	}

	var detectorResponse struct {
		Detections []Detection `json:"detections"`
	}
	if err := json.Unmarshal(respBytes, &detectorResponse); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("unmarshal detector resp: %s", err))
		return nil, fmt.Errorf("unmarshal dish detector response: %w", err)
	}

	return detectorResponse.Detections, nil
}
