// Package agents holds one adapter per external data source. Each
// adapter wraps a remote call, canonicalizes the response and applies
// the deterministic scoring rules for its domain.
package agents

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/internal/service/ratelimit"
	"github.com/abhinavomanakuttan/leaf-net/pkg/cache"
	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// ClimateService scores disease outbreak risk from current weather.
type ClimateService struct {
	baseURL  string
	client   *xhttp.Client
	cache    cache.Service
	cacheTTL time.Duration
	limiter  *ratelimit.Limiter
	metrics  repository.Metrics
	log      *logger.Logger
	now      func() time.Time
}

func NewClimateService(cfg *config.Config, c cache.Service, lim *ratelimit.Limiter, m repository.Metrics, log *logger.Logger) *ClimateService {
	return &ClimateService{
		baseURL:  cfg.Climate.BaseURL,
		client:   xhttp.NewClient(xhttp.WithTimeout(cfg.Climate.Timeout)),
		cache:    c,
		cacheTTL: cfg.Cache.TTL.Climate,
		limiter:  lim,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		Rainfall    float64 `json:"precipitation"`
	} `json:"current"`
}

// Risk fetches current weather for the coordinates and computes the
// outbreak probability.
func (s *ClimateService) Risk(ctx context.Context, lat, lon float64) (models.ClimateResult, error) {
	key := coordCacheKey("climate", lat, lon)
	if s.cache != nil {
		var cached models.ClimateResult
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordAgentCall(models.SourceClimate, "cache_hit")
			return cached, nil
		}
	}

	if s.limiter != nil && !s.limiter.Allow("open-meteo", 10, 2) {
		s.metrics.RecordAgentCall(models.SourceClimate, "throttled")
		return models.ClimateResult{}, fmt.Errorf("open-meteo rate limit exceeded")
	}

	var raw openMeteoResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.baseURL,
		QueryParams: map[string][]string{
			"latitude":      {formatCoord(lat)},
			"longitude":     {formatCoord(lon)},
			"current":       {"temperature_2m", "relative_humidity_2m", "wind_speed_10m", "precipitation"},
			"daily":         {"precipitation_sum"},
			"timezone":      {"auto"},
			"forecast_days": {"1"},
		},
	}, &raw)
	if err != nil {
		s.metrics.RecordAgentCall(models.SourceClimate, "error")
		s.metrics.RecordError("upstream")
		return models.ClimateResult{}, fmt.Errorf("open-meteo: %w", err)
	}

	cur := raw.Current
	prob := ComputeOutbreakProbability(cur.Temperature, cur.Humidity, cur.Rainfall, cur.WindSpeed)
	risk := ClassifyRisk(prob)

	result := models.ClimateResult{
		Temperature:         cur.Temperature,
		Humidity:            cur.Humidity,
		WindSpeed:           util.Round1(cur.WindSpeed),
		Rainfall:            util.Round1(cur.Rainfall),
		RiskLevel:           risk,
		OutbreakProbability: prob,
		ForecastSummary:     forecastSummary(cur.Temperature, cur.Humidity, cur.Rainfall, risk),
		LastUpdated:         util.FormatDisplayTime(s.now()),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, result, s.cacheTTL)
	}
	s.metrics.RecordAgentCall(models.SourceClimate, "success")
	s.log.Debug("climate risk computed",
		logger.Float64("lat", lat),
		logger.Float64("lon", lon),
		logger.Float64("probability", prob),
		logger.String("risk", risk))
	return result, nil
}

// ComputeOutbreakProbability scores disease-favorable weather on a
// 0–100 scale, weighted temperature 40 / humidity 30 / rainfall 20 /
// wind 10.
func ComputeOutbreakProbability(temperature, humidity, rainfall, windSpeed float64) float64 {
	score := 0.0

	// Temperature: fungal sweet spot 18–28°C, peaking at 24.
	if temperature >= 18 && temperature <= 28 {
		d := temperature - 24
		if d < 0 {
			d = -d
		}
		score += (1.0 - d/10) * 40
	} else if (temperature >= 10 && temperature < 18) || (temperature > 28 && temperature <= 35) {
		score += 10
	}

	switch {
	case humidity >= 90:
		score += 30
	case humidity >= 80:
		score += 25
	case humidity >= 70:
		score += 15
	case humidity >= 60:
		score += 8
	}

	switch {
	case rainfall > 20:
		score += 20
	case rainfall > 10:
		score += 15
	case rainfall > 5:
		score += 10
	case rainfall > 0:
		score += 5
	}

	// Low wind retains leaf moisture.
	switch {
	case windSpeed < 5:
		score += 10
	case windSpeed < 10:
		score += 7
	case windSpeed < 20:
		score += 3
	}

	score = util.Round1(score)
	if score > 100 {
		score = 100
	}
	return score
}

// ClassifyRisk maps an outbreak probability onto the risk label.
func ClassifyRisk(probability float64) string {
	switch {
	case probability >= 70:
		return "High"
	case probability >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

func forecastSummary(temperature, humidity, rainfall float64, riskLevel string) string {
	var conditions []string
	if humidity >= 80 {
		conditions = append(conditions, "high humidity")
	}
	if temperature >= 18 && temperature <= 28 {
		conditions = append(conditions, "warm temperatures")
	}
	if rainfall > 5 {
		conditions = append(conditions, "recent precipitation")
	}

	if len(conditions) == 0 {
		return fmt.Sprintf(
			"Current conditions show low disease risk. Temperature at %g°C with %g%% humidity.",
			temperature, humidity)
	}

	urgency := map[string]string{
		"High":     "creating highly favorable conditions for fungal and bacterial propagation. Immediate preventive action recommended.",
		"Moderate": "creating moderately favorable conditions for disease development. Monitor closely.",
		"Low":      "with limited disease risk at present. Continue routine monitoring.",
	}

	return fmt.Sprintf("Current weather shows %s, %s", strings.Join(conditions, ", "), urgency[riskLevel])
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// coordCacheKey rounds coordinates to two decimals so nearby requests
// share a cache entry.
func coordCacheKey(prefix string, lat, lon float64) string {
	return fmt.Sprintf("%s:%.2f:%.2f", prefix, lat, lon)
}
