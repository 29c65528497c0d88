package agents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/internal/service/ratelimit"
	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// VisionService classifies leaf photographs through a hosted
// image-classification model.
type VisionService struct {
	baseURL  string
	model    string
	apiToken string
	client   *xhttp.Client
	limiter  *ratelimit.Limiter
	metrics  repository.Metrics
	log      *logger.Logger
	now      func() time.Time
}

func NewVisionService(cfg *config.Config, lim *ratelimit.Limiter, m repository.Metrics, log *logger.Logger) *VisionService {
	return &VisionService{
		baseURL:  cfg.Vision.BaseURL,
		model:    cfg.Vision.Model,
		apiToken: cfg.Vision.APIToken,
		client:   xhttp.NewClient(xhttp.WithTimeout(cfg.Vision.Timeout)),
		limiter:  lim,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

type visionPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyze classifies the image and maps the top predictions into
// display labels and a severity stage.
func (s *VisionService) Analyze(ctx context.Context, image []byte) (models.VisionResult, error) {
	if s.apiToken == "" {
		return models.VisionResult{}, xhttp.ConfigurationError("HF_API_TOKEN is not set. Please add it to your .env file.")
	}

	if s.limiter != nil && !s.limiter.Allow("huggingface", 5, 0.5) {
		s.metrics.RecordAgentCall(models.SourceVision, "throttled")
		return models.VisionResult{}, fmt.Errorf("vision model rate limit exceeded")
	}

	var predictions []visionPrediction
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("%s/%s", s.baseURL, s.model),
		Headers: map[string]string{
			"Authorization": "Bearer " + s.apiToken,
			"Content-Type":  DetectContentType(image),
		},
		Body: image,
	}, &predictions)
	if err != nil {
		s.metrics.RecordAgentCall(models.SourceVision, "error")
		s.metrics.RecordError("upstream")
		return models.VisionResult{}, fmt.Errorf("vision model: %w", err)
	}

	if len(predictions) == 0 {
		s.metrics.RecordAgentCall(models.SourceVision, "empty")
		return models.VisionResult{
			DiseaseName:    "No result",
			Confidence:     0.0,
			SeverityStage:  "Unknown",
			TopPredictions: []models.Prediction{},
			AnalyzedAt:     util.FormatDisplayTime(s.now()),
		}, nil
	}

	top := make([]models.Prediction, 0, 5)
	for i, p := range predictions {
		if i == 5 {
			break
		}
		top = append(top, models.Prediction{
			Label:      CleanLabel(p.Label),
			Confidence: util.Round2(p.Score * 100),
		})
	}

	confidence := util.Round2(predictions[0].Score * 100)
	result := models.VisionResult{
		DiseaseName:    CleanLabel(predictions[0].Label),
		Confidence:     confidence,
		SeverityStage:  EstimateSeverity(confidence),
		TopPredictions: top,
		AnalyzedAt:     util.FormatDisplayTime(s.now()),
	}

	s.metrics.RecordAgentCall(models.SourceVision, "success")
	s.log.Info("leaf image classified",
		logger.String("disease", result.DiseaseName),
		logger.Float64("confidence", confidence))
	return result, nil
}

// EstimateSeverity maps classification confidence onto a disease stage.
func EstimateSeverity(confidence float64) string {
	switch {
	case confidence >= 90:
		return "Stage 4 — Severe / Advanced"
	case confidence >= 75:
		return "Stage 3 — Moderate Spread"
	case confidence >= 50:
		return "Stage 2 — Early Development"
	default:
		return "Stage 1 — Initial Onset"
	}
}

// CleanLabel converts model labels like "Tomato___Late_blight" to
// "Tomato — Late Blight".
func CleanLabel(label string) string {
	s := strings.ReplaceAll(label, "___", " — ")
	s = strings.ReplaceAll(s, "_", " ")
	return titleCase(s)
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// DetectContentType sniffs the image format from magic bytes,
// defaulting to JPEG.
func DetectContentType(image []byte) string {
	if len(image) >= 8 && bytes.Equal(image[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}) {
		return "image/png"
	}
	if len(image) >= 2 && image[0] == 0xff && image[1] == 0xd8 {
		return "image/jpeg"
	}
	if len(image) >= 12 && bytes.Equal(image[:4], []byte("RIFF")) && bytes.Equal(image[8:12], []byte("WEBP")) {
		return "image/webp"
	}
	return "image/jpeg"
}
