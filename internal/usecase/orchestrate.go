package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/service"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// OrchestrateUseCase fans out to the agent adapters, joins every
// outcome, and delegates the merged payload to the synthesizer.
//
// The join is a barrier: every agent call runs to completion and an
// individual failure becomes an error record in the merged map, never
// an early abort. Only a missing credential fails the request, and it
// does so before any agent is invoked.
type OrchestrateUseCase struct {
	climate      service.ClimateAgent
	satellite    service.SatelliteAgent
	market       service.MarketAgent
	synthesizer  service.Synthesizer
	publisher    repository.Publisher
	metrics      repository.Metrics
	log          *logger.Logger
	apiKey       string
	agentTimeout time.Duration
	now          func() time.Time
}

type OrchestrateDeps struct {
	Climate     service.ClimateAgent
	Satellite   service.SatelliteAgent
	Market      service.MarketAgent
	Synthesizer service.Synthesizer
	Publisher   repository.Publisher
	Metrics     repository.Metrics
	Log         *logger.Logger
	APIKey      string
}

func NewOrchestrateUseCase(d OrchestrateDeps) *OrchestrateUseCase {
	return &OrchestrateUseCase{
		climate:      d.Climate,
		satellite:    d.Satellite,
		market:       d.Market,
		synthesizer:  d.Synthesizer,
		publisher:    d.Publisher,
		metrics:      d.Metrics,
		log:          d.Log,
		apiKey:       d.APIKey,
		agentTimeout: 30 * time.Second,
		now:          time.Now,
	}
}

// Run executes one full orchestration: resolve context, fan out to the
// agents the caller did not pre-supply, synthesize, respond.
func (uc *OrchestrateUseCase) Run(ctx context.Context, req models.OrchestrateRequest) (models.OrchestrationResponse, error) {
	if uc.apiKey == "" {
		uc.metrics.RecordError("configuration")
		return models.OrchestrationResponse{}, xhttp.ConfigurationError("GROQ_API_KEY is not set. Please add it to your .env file.")
	}

	octx := uc.resolveContext(req)
	started := uc.now()

	agents := uc.fanOut(ctx, req, octx)

	assessment, err := uc.synthesizer.Synthesize(ctx, agents, octx)
	if err != nil {
		var parseErr *models.SynthesisParseError
		if errors.As(err, &parseErr) {
			assessment = models.FallbackAssessment(parseErr.Raw)
		} else {
			return models.OrchestrationResponse{}, err
		}
	}

	resp := models.OrchestrationResponse{
		Assessment:  assessment,
		Context:     octx,
		Vision:      agents[models.SourceVision],
		Climate:     agents[models.SourceClimate],
		Satellite:   agents[models.SourceSatellite],
		Market:      agents[models.SourceMarket],
		GeneratedAt: util.FormatDisplayTime(uc.now()),
	}

	uc.metrics.RecordLatency("orchestration", time.Since(started).Seconds())
	uc.log.Info("orchestration completed",
		logger.String("region", octx.Region),
		logger.String("commodity", octx.Commodity),
		logger.String("overall_status", assessment.OverallStatus),
		logger.Int("consensus", assessment.ConsensusScore))

	if uc.publisher != nil {
		if err := uc.publisher.PublishAssessment(ctx, octx.Region, resp); err != nil {
			uc.log.Warn("assessment publish skipped", logger.Error(err))
		}
	}

	return resp, nil
}

// resolveContext fills defaults and maps the region to coordinates when
// the caller did not send any.
func (uc *OrchestrateUseCase) resolveContext(req models.OrchestrateRequest) models.OrchestrationContext {
	region := req.Region
	if region == "" {
		region = "Kerala_Kottayam"
	}
	commodity := req.Commodity
	if commodity == "" {
		commodity = "Banana"
	}

	var lat, lon float64
	if req.Lat != nil && req.Lon != nil {
		lat, lon = *req.Lat, *req.Lon
	} else {
		c := repository.ResolveRegionCoords(region)
		lat, lon = c.Lat, c.Lon
	}

	return models.OrchestrationContext{Region: region, Commodity: commodity, Lat: lat, Lon: lon}
}

// fanOut invokes every agent the caller did not pre-supply, in
// parallel, and merges all outcomes. Pre-supplied payloads pass through
// untouched. Vision is never self-fetched: without an uploaded image
// there is nothing to classify.
func (uc *OrchestrateUseCase) fanOut(ctx context.Context, req models.OrchestrateRequest, octx models.OrchestrationContext) map[string]models.AgentResult {
	agents := make(map[string]models.AgentResult, 4)
	for name, payload := range map[string][]byte{
		models.SourceVision:    req.Vision,
		models.SourceClimate:   req.Climate,
		models.SourceSatellite: req.Satellite,
		models.SourceMarket:    req.Market,
	} {
		if len(payload) > 0 {
			agents[name] = models.RawResult{Name: name, Payload: payload}
		}
	}

	type item struct {
		name string
		val  models.AgentResult
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	call := func(name string, fn func(context.Context) (models.AgentResult, error)) {
		if _, supplied := agents[name]; supplied {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, uc.agentTimeout)
			defer cancel()
			v, err := fn(cctx)
			ch <- item{name, v, err}
		}()
	}

	call(models.SourceClimate, func(cctx context.Context) (models.AgentResult, error) {
		v, err := uc.climate.Risk(cctx, octx.Lat, octx.Lon)
		return v, err
	})
	call(models.SourceSatellite, func(cctx context.Context) (models.AgentResult, error) {
		v, err := uc.satellite.Health(cctx, octx.Lat, octx.Lon)
		return v, err
	})
	call(models.SourceMarket, func(cctx context.Context) (models.AgentResult, error) {
		v, err := uc.market.Data(cctx, octx.Region, octx.Commodity)
		return v, err
	})

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			uc.log.Warn("agent call failed",
				logger.String("agent", it.name),
				logger.Error(it.err))
			agents[it.name] = models.NewAgentError(it.name, it.err)
			continue
		}
		agents[it.name] = it.val
	}

	return agents
}
