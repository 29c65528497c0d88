package agents

import (
	"context"
	"fmt"
	"sort"
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

// nasaFillValue marks missing observations in NASA POWER responses.
const nasaFillValue = -999.0

// SatelliteService estimates vegetation health from NASA POWER
// environmental data, as a proxy for NDVI.
type SatelliteService struct {
	baseURL    string
	community  string
	windowDays int
	client     *xhttp.Client
	cache      cache.Service
	cacheTTL   time.Duration
	limiter    *ratelimit.Limiter
	metrics    repository.Metrics
	log        *logger.Logger
	now        func() time.Time
}

func NewSatelliteService(cfg *config.Config, c cache.Service, lim *ratelimit.Limiter, m repository.Metrics, log *logger.Logger) *SatelliteService {
	return &SatelliteService{
		baseURL:    cfg.Satellite.BaseURL,
		community:  cfg.Satellite.Community,
		windowDays: cfg.Satellite.WindowDays,
		client:     xhttp.NewClient(xhttp.WithTimeout(cfg.Satellite.Timeout)),
		cache:      c,
		cacheTTL:   cfg.Cache.TTL.Satellite,
		limiter:    lim,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

type nasaPowerResponse struct {
	Properties struct {
		Parameter struct {
			Solar         map[string]float64 `json:"ALLSKY_SFC_SW_DWN"`
			Temperature   map[string]float64 `json:"T2M"`
			Humidity      map[string]float64 `json:"RH2M"`
			Precipitation map[string]float64 `json:"PRECTOTCORR"`
		} `json:"parameter"`
	} `json:"properties"`
}

// Health fetches a trailing window of daily observations and scores
// vegetation health for the recent half against the older half.
func (s *SatelliteService) Health(ctx context.Context, lat, lon float64) (models.SatelliteResult, error) {
	key := coordCacheKey("satellite", lat, lon)
	if s.cache != nil {
		var cached models.SatelliteResult
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordAgentCall(models.SourceSatellite, "cache_hit")
			return cached, nil
		}
	}

	if s.limiter != nil && !s.limiter.Allow("nasa-power", 5, 1) {
		s.metrics.RecordAgentCall(models.SourceSatellite, "throttled")
		return models.SatelliteResult{}, fmt.Errorf("nasa power rate limit exceeded")
	}

	end := s.now()
	start := end.AddDate(0, 0, -s.windowDays)

	var raw nasaPowerResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.baseURL,
		QueryParams: map[string][]string{
			"parameters": {"ALLSKY_SFC_SW_DWN,T2M,RH2M,PRECTOTCORR"},
			"community":  {s.community},
			"longitude":  {formatCoord(lon)},
			"latitude":   {formatCoord(lat)},
			"start":      {start.Format("20060102")},
			"end":        {end.Format("20060102")},
			"format":     {"JSON"},
		},
	}, &raw)
	if err != nil {
		s.metrics.RecordAgentCall(models.SourceSatellite, "error")
		s.metrics.RecordError("upstream")
		return models.SatelliteResult{}, fmt.Errorf("nasa power: %w", err)
	}

	p := raw.Properties.Parameter
	solar := cleanSeries(p.Solar)
	temp := cleanSeries(p.Temperature)
	humidity := cleanSeries(p.Humidity)
	precip := cleanSeries(p.Precipitation)

	// Split the window into older and recent halves at the midpoint of
	// the solar series.
	midpoint := len(solar) / 2
	if midpoint < 1 {
		midpoint = 1
	}

	recent := ComputeVegetationHealth(
		mean(tail(solar, midpoint)),
		mean(tail(temp, midpoint)),
		mean(tail(humidity, midpoint)),
		sum(tail(precip, midpoint)),
	)
	older := ComputeVegetationHealth(
		mean(head(solar, midpoint)),
		mean(head(temp, midpoint)),
		mean(head(humidity, midpoint)),
		sum(head(precip, midpoint)),
	)

	result := models.SatelliteResult{
		NDVIScore:        recent,
		VegetationStress: ClassifyStress(recent),
		HealthTrend:      ClassifyTrend(recent, older),
		DataSource:       fmt.Sprintf("NASA POWER (%s Community)", s.community),
		CoveragePeriod:   fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		LastUpdated:      util.FormatDisplayTime(s.now()),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, result, s.cacheTTL)
	}
	s.metrics.RecordAgentCall(models.SourceSatellite, "success")
	s.log.Debug("vegetation health computed",
		logger.Float64("lat", lat),
		logger.Float64("lon", lon),
		logger.Float64("ndvi", recent),
		logger.String("trend", result.HealthTrend))
	return result, nil
}

// ComputeVegetationHealth scores a 0.0–1.0 synthetic vegetation index
// from environmental averages: solar 30%, temperature 30%, moisture 40%.
func ComputeVegetationHealth(solarAvg, tempAvg, humidityAvg, precipSum float64) float64 {
	score := 0.0

	switch {
	case solarAvg >= 4 && solarAvg <= 8:
		score += 0.30
	case (solarAvg >= 2 && solarAvg < 4) || (solarAvg > 8 && solarAvg <= 10):
		score += 0.20
	default:
		score += 0.08
	}

	if tempAvg >= 15 && tempAvg <= 30 {
		d := tempAvg - 22.5
		if d < 0 {
			d = -d
		}
		score += (1.0 - d/15) * 0.30
	} else if (tempAvg >= 5 && tempAvg < 15) || (tempAvg > 30 && tempAvg <= 40) {
		score += 0.10
	} else {
		score += 0.03
	}

	moisture := 0.0
	switch {
	case humidityAvg >= 60 && humidityAvg <= 85:
		moisture += 0.25
	case (humidityAvg >= 40 && humidityAvg < 60) || (humidityAvg > 85 && humidityAvg <= 95):
		moisture += 0.15
	default:
		moisture += 0.05
	}

	switch {
	case precipSum >= 2 && precipSum <= 15:
		moisture += 0.15
	case (precipSum > 0 && precipSum < 2) || (precipSum > 15 && precipSum <= 30):
		moisture += 0.08
	case precipSum > 30:
		// flooding stress
		moisture += 0.03
	}
	score += moisture

	if score > 1.0 {
		score = 1.0
	}
	return util.Round2(score)
}

// ClassifyStress maps the vegetation index onto a stress label.
func ClassifyStress(ndvi float64) string {
	switch {
	case ndvi >= 0.65:
		return "Low"
	case ndvi >= 0.45:
		return "Moderate"
	case ndvi >= 0.25:
		return "High"
	default:
		return "Severe"
	}
}

// ClassifyTrend compares recent vs older index values.
func ClassifyTrend(recent, older float64) string {
	diff := recent - older
	switch {
	case diff > 0.05:
		return "Improving"
	case diff < -0.05:
		return "Declining"
	default:
		return "Stable"
	}
}

// cleanSeries returns the values in date order, dropping fill values.
func cleanSeries(m map[string]float64) []float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]float64, 0, len(keys))
	for _, k := range keys {
		if v := m[k]; v != nasaFillValue {
			out = append(out, v)
		}
	}
	return out
}

func head(vals []float64, n int) []float64 {
	if n > len(vals) {
		n = len(vals)
	}
	return vals[:n]
}

func tail(vals []float64, n int) []float64 {
	if n > len(vals) {
		return nil
	}
	return vals[n:]
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return sum(vals) / float64(len(vals))
}

func sum(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}
