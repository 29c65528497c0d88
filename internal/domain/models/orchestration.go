package models

import "fmt"

// OrchestrationContext pins the run to a region, commodity and coordinates.
type OrchestrationContext struct {
	Region    string  `json:"region"`
	Commodity string  `json:"commodity"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// AgentVerification is one agent's line in the synthesized verdict.
type AgentVerification struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// BiologicalControl is one non-chemical intervention suggestion.
type BiologicalControl struct {
	Name        string `json:"name"`
	Application string `json:"application"`
	Priority    string `json:"priority"`
}

// ChemicalAdvisory is the synthesized stance on chemical treatment.
type ChemicalAdvisory struct {
	Recommendation string   `json:"recommendation"`
	Notes          string   `json:"notes"`
	Restrictions   []string `json:"restrictions"`
}

// Assessment is the structured verdict the synthesis model must return.
type Assessment struct {
	Agents               []AgentVerification `json:"agents"`
	OverallStatus        string              `json:"overall_status"`
	ConsensusScore       int                 `json:"consensus_score"`
	RiskLevel            string              `json:"risk_level"`
	AIRecommendation     string              `json:"ai_recommendation"`
	RecommendationReason string              `json:"recommendation_reason"`
	ActionSummary        string              `json:"action_summary"`
	BiologicalControls   []BiologicalControl `json:"biological_controls"`
	ChemicalAdvisory     ChemicalAdvisory    `json:"chemical_advisory"`
	Conflicts            []string            `json:"conflicts"`
}

// FallbackAssessment is the deterministic verdict substituted when the
// synthesis model returns something that cannot be decoded. The raw
// model output is preserved, truncated, in the advisory notes.
func FallbackAssessment(raw string) Assessment {
	// Truncate by runes so a multi-byte character is never split.
	if r := []rune(raw); len(r) > 500 {
		raw = string(r[:500])
	}
	return Assessment{
		Agents:               []AgentVerification{},
		OverallStatus:        "Under Review",
		ConsensusScore:       0,
		RiskLevel:            "Moderate",
		AIRecommendation:     "HOLD",
		RecommendationReason: "Orchestration produced non-standard output. Manual review recommended.",
		ActionSummary:        "Manual review recommended.",
		BiologicalControls:   []BiologicalControl{},
		ChemicalAdvisory: ChemicalAdvisory{
			Recommendation: "Pending Review",
			Notes:          raw,
			Restrictions:   []string{},
		},
		Conflicts: []string{"LLM output format error — manual review needed"},
	}
}

// OrchestrationResponse is the complete multi-agent assessment returned
// to the caller: the synthesized verdict plus every agent payload that
// fed it, verbatim.
type OrchestrationResponse struct {
	Assessment
	Context     OrchestrationContext `json:"context"`
	Vision      AgentResult          `json:"vision,omitempty"`
	Climate     AgentResult          `json:"climate"`
	Satellite   AgentResult          `json:"satellite"`
	Market      AgentResult          `json:"market"`
	GeneratedAt string               `json:"generated_at"`
}

// SynthesisParseError marks a model reply that could not be decoded
// into an Assessment. Raw carries the reply for the fallback record.
type SynthesisParseError struct {
	Raw string
	Err error
}

func (e *SynthesisParseError) Error() string {
	return fmt.Sprintf("synthesis output not decodable: %v", e.Err)
}

func (e *SynthesisParseError) Unwrap() error { return e.Err }
