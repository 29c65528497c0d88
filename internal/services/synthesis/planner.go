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
)

const plannerSystemPrompt = `You are an expert Indian agricultural economist and government-scheme advisor.
Given a farmer's profile you MUST respond with ONLY valid JSON (no markdown, no explanation outside JSON) matching this exact structure:

{
  "subsidy_schemes": [
    {
      "title": "<scheme name>",
      "ministry": "<issuing ministry or department>",
      "description": "<1-2 sentence summary>",
      "eligibility": "<who can apply>",
      "benefit": "<₹ amount or percentage>",
      "apply_url": "<official URL or 'Contact local agriculture office'>",
      "eligible": true
    }
  ],
  "technology_advisor": [
    {
      "name": "<technology name, e.g. Drip Irrigation>",
      "category": "<Irrigation|Precision Ag|Protected Cultivation|Post-Harvest|Mechanization|Digital>",
      "investment": "<estimated cost range in ₹>",
      "roi_period": "<estimated payback period>",
      "reasoning": "<why this is recommended for this farmer>",
      "priority": "High|Medium|Low"
    }
  ],
  "economic_strategy": {
    "title": "<short strategy name>",
    "summary": "<2-3 sentence growth roadmap>",
    "year1_actions": ["<action1>", "<action2>", "<action3>"],
    "year2_actions": ["<action1>", "<action2>"],
    "year3_target": "<what the farmer should achieve by year 3>",
    "estimated_income_boost": "<percentage or ₹ range>"
  },
  "risk_warnings": ["<risk 1>", "<risk 2>"]
}

Rules:
- Recommend 3-5 real Indian government schemes (PM-KISAN, PKVY, PMFBY, RKVY, MIDH, etc.) relevant to the farmer's profile.
- Mark "eligible": true/false based on land size, experience, and infrastructure.
- Recommend 3-4 technologies that match the farmer's capital and risk appetite.
- The economic strategy should be realistic, actionable, and specific to the region/crop context.
- Always include at least 1-2 risk warnings.
- All monetary values should be in Indian Rupees (₹).`

// Roadmap generation runs a bit hotter and longer than synthesis: the
// output is narrative, not a verdict.
const (
	plannerTemperature = 0.4
	plannerMaxTokens   = 3000
)

// Planner generates personalised profit roadmaps for farmer profiles.
type Planner struct {
	client  openai.Client
	model   string
	timeout time.Duration
	metrics repository.Metrics
	log     *logger.Logger
}

func NewPlanner(cfg *config.Config, m repository.Metrics, log *logger.Logger) *Planner {
	return &Planner{
		client: openai.NewClient(
			option.WithAPIKey(cfg.Synthesis.APIKey),
			option.WithBaseURL(cfg.Synthesis.BaseURL),
		),
		model:   cfg.Synthesis.Model,
		timeout: cfg.Synthesis.Timeout,
		metrics: m,
		log:     log,
	}
}

// Roadmap builds the farmer-profile prompt, calls the model and decodes
// the plan. An undecodable reply falls back to a fixed review notice.
func (p *Planner) Roadmap(ctx context.Context, profile models.GrowthProfile) (models.GrowthRoadmap, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	started := time.Now()
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(plannerSystemPrompt),
			openai.UserMessage(buildProfileMessage(profile)),
		},
		Model:       p.model,
		Temperature: openai.Float(plannerTemperature),
		MaxTokens:   openai.Int(plannerMaxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	p.metrics.RecordLatency("growth_roadmap", time.Since(started).Seconds())
	if err != nil {
		p.metrics.RecordError("planner_upstream")
		return models.GrowthRoadmap{}, fmt.Errorf("planner model call: %w", err)
	}
	if len(completion.Choices) == 0 {
		p.metrics.RecordError("planner_parse")
		return models.FallbackRoadmap(), nil
	}

	var roadmap models.GrowthRoadmap
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &roadmap); err != nil {
		p.metrics.RecordError("planner_parse")
		p.log.Warn("planner reply not decodable", logger.Error(err))
		return models.FallbackRoadmap(), nil
	}
	return roadmap, nil
}

func buildProfileMessage(profile models.GrowthProfile) string {
	var b strings.Builder
	b.WriteString("Generate a Profit Roadmap for the following farmer profile:\n\n")
	fmt.Fprintf(&b, "Experience Level: %s\n", profile.ExperienceLevel)
	fmt.Fprintf(&b, "Land Size: %s\n", profile.LandSize)
	fmt.Fprintf(&b, "Available Capital: %s\n", profile.AvailableCapital)
	fmt.Fprintf(&b, "Risk Appetite: %s\n", profile.RiskAppetite)
	fmt.Fprintf(&b, "Has Irrigation: %s\n", yesNo(profile.Irrigation))
	fmt.Fprintf(&b, "Has Cold Storage: %s\n", yesNo(profile.ColdStorage))
	if profile.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", profile.Region)
	}
	if profile.PrimaryCrop != "" {
		fmt.Fprintf(&b, "Primary Crop: %s\n", profile.PrimaryCrop)
	}
	b.WriteString("\nProvide a comprehensive, realistic roadmap with Indian government schemes.")
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
