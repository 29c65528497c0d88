// Package synthesis delegates the merged agent payloads to a hosted
// LLM and decodes the structured verdict it returns.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

const systemPrompt = `You are an expert agricultural intelligence orchestrator.
You analyze outputs from four specialized AI agents:
1. Vision Detection Agent — classifies plant diseases from leaf images
2. Climate Risk Agent — assesses weather-based outbreak risk
3. Satellite Health Agent — monitors vegetation health via remote sensing
4. Market Intelligence Agent — provides real-time mandi prices, arrival volumes, and buyer signals

Your job is to synthesize their outputs into a unified assessment. You MUST respond with ONLY valid JSON (no markdown, no explanation outside JSON) matching this exact structure:

{
  "agents": [
    {
      "name": "Vision Detection Agent",
      "status": "Verified|Pending|Conflict",
      "confidence": <number>,
      "reasoning": "<brief explanation>"
    },
    {
      "name": "Climate Risk Agent",
      "status": "Verified|Pending|Conflict",
      "confidence": <number>,
      "reasoning": "<brief explanation>"
    },
    {
      "name": "Satellite Health Agent",
      "status": "Verified|Pending|Conflict",
      "confidence": <number>,
      "reasoning": "<brief explanation>"
    },
    {
      "name": "Market Intelligence Agent",
      "status": "Verified|Pending|Conflict",
      "confidence": <number>,
      "reasoning": "<brief explanation>"
    }
  ],
  "overall_status": "Confirmed Threat|Probable Threat|Under Review|Low Risk",
  "consensus_score": <0-100>,
  "risk_level": "High|Moderate|Low",
  "ai_recommendation": "BUY|HOLD|SELL",
  "recommendation_reason": "<1-2 sentence rationale combining disease risk + market signal>",
  "action_summary": "<2-3 sentence action plan>",
  "biological_controls": [
    {
      "name": "<organism/product name>",
      "application": "<how to apply>",
      "priority": "High|Medium|Low"
    }
  ],
  "chemical_advisory": {
    "recommendation": "<Minimal Use|Not Required|Targeted Application>",
    "notes": "<detailed guidance>",
    "restrictions": ["<restriction 1>", "<restriction 2>"]
  },
  "conflicts": ["<any data conflicts or concerns>"]
}

Rules:
- Set agent status to "Verified" if data is consistent and recent
- Set to "Pending" if data is stale (>6 hours old) or confidence is low (<60%)
- Set to "Conflict" if agent data contradicts other agents
- Always prioritize biological controls over chemical intervention
- ai_recommendation must factor in BOTH disease risk AND market price trend
- If market trend is "up" and disease risk is Low → BUY
- If market trend is "down" or disease risk is High → SELL or HOLD
- If vision data is missing, note it but still analyze climate + satellite + market data`

// Service calls a Groq-hosted model through its OpenAI-compatible API.
type Service struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	metrics     repository.Metrics
	log         *logger.Logger
	now         func() time.Time
}

func New(cfg *config.Config, m repository.Metrics, log *logger.Logger) *Service {
	return &Service{
		client: openai.NewClient(
			option.WithAPIKey(cfg.Synthesis.APIKey),
			option.WithBaseURL(cfg.Synthesis.BaseURL),
		),
		model:       cfg.Synthesis.Model,
		temperature: cfg.Synthesis.Temperature,
		maxTokens:   cfg.Synthesis.MaxTokens,
		timeout:     cfg.Synthesis.Timeout,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// Synthesize sends the merged agent payloads plus context to the model
// and decodes the structured assessment. A reply that is not valid
// JSON for the schema comes back as *models.SynthesisParseError with
// the raw text attached.
func (s *Service) Synthesize(ctx context.Context, agents map[string]models.AgentResult, octx models.OrchestrationContext) (models.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := s.now()
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(s.buildUserMessage(agents, octx)),
		},
		Model:       s.model,
		Temperature: openai.Float(s.temperature),
		MaxTokens:   openai.Int(int64(s.maxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	s.metrics.RecordLatency("synthesis", time.Since(started).Seconds())
	if err != nil {
		s.metrics.RecordError("synthesis_upstream")
		return models.Assessment{}, fmt.Errorf("synthesis model call: %w", err)
	}
	if len(completion.Choices) == 0 {
		s.metrics.RecordError("synthesis_parse")
		return models.Assessment{}, &models.SynthesisParseError{Raw: "", Err: fmt.Errorf("no choices returned")}
	}

	raw := completion.Choices[0].Message.Content
	var assessment models.Assessment
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		s.metrics.RecordError("synthesis_parse")
		s.log.Warn("synthesis reply not decodable", logger.Error(err))
		return models.Assessment{}, &models.SynthesisParseError{Raw: raw, Err: err}
	}

	return assessment, nil
}

// buildUserMessage embeds each agent's canonical JSON plus the request
// context into a single prompt block.
func (s *Service) buildUserMessage(agents map[string]models.AgentResult, octx models.OrchestrationContext) string {
	var b strings.Builder
	b.WriteString("Analyze the following agent outputs and provide your orchestrated assessment:\n\n")
	fmt.Fprintf(&b, "## Context\nRegion: %s | Commodity: %s\nCoordinates: %.4f°N, %.4f°E\n\n",
		octx.Region, octx.Commodity, octx.Lat, octx.Lon)

	if vision, ok := agents[models.SourceVision]; ok {
		writeAgentBlock(&b, "Vision Detection Agent", vision)
	} else {
		b.WriteString("## Vision Detection Agent Output\nNo image has been analyzed yet. Skip vision assessment.\n\n")
	}
	writeAgentBlock(&b, "Climate Risk Agent", agents[models.SourceClimate])
	writeAgentBlock(&b, "Satellite Health Agent", agents[models.SourceSatellite])
	writeAgentBlock(&b, "Market Intelligence Agent", agents[models.SourceMarket])

	fmt.Fprintf(&b, "Current timestamp: %s", util.FormatDisplayTime(s.now()))
	return b.String()
}

func writeAgentBlock(b *strings.Builder, title string, result models.AgentResult) {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		payload = []byte("{}")
	}
	fmt.Fprintf(b, "## %s Output\n```json\n%s\n```\n\n", title, payload)
}
