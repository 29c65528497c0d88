package models

// GrowthProfile describes a farmer for roadmap planning.
type GrowthProfile struct {
	ExperienceLevel  string `json:"experience_level"`
	LandSize         string `json:"land_size"`
	AvailableCapital string `json:"available_capital"`
	RiskAppetite     string `json:"risk_appetite"`
	Irrigation       bool   `json:"irrigation"`
	ColdStorage      bool   `json:"cold_storage"`
	Region           string `json:"region,omitempty"`
	PrimaryCrop      string `json:"primary_crop,omitempty"`
}

// SubsidyScheme is one government scheme match for the profile.
type SubsidyScheme struct {
	Title       string `json:"title"`
	Ministry    string `json:"ministry"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
	Benefit     string `json:"benefit"`
	ApplyURL    string `json:"apply_url"`
	Eligible    bool   `json:"eligible"`
}

// TechnologyAdvice is one farm-technology suggestion with its payback.
type TechnologyAdvice struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Investment string `json:"investment"`
	ROIPeriod  string `json:"roi_period"`
	Reasoning  string `json:"reasoning"`
	Priority   string `json:"priority"`
}

// EconomicStrategy is the multi-year growth plan for the profile.
type EconomicStrategy struct {
	Title                string   `json:"title"`
	Summary              string   `json:"summary"`
	Year1Actions         []string `json:"year1_actions"`
	Year2Actions         []string `json:"year2_actions"`
	Year3Target          string   `json:"year3_target"`
	EstimatedIncomeBoost string   `json:"estimated_income_boost"`
}

// GrowthRoadmap is the planner's full response.
type GrowthRoadmap struct {
	SubsidySchemes    []SubsidyScheme    `json:"subsidy_schemes"`
	TechnologyAdvisor []TechnologyAdvice `json:"technology_advisor"`
	EconomicStrategy  EconomicStrategy   `json:"economic_strategy"`
	RiskWarnings      []string           `json:"risk_warnings"`
}

// FallbackRoadmap is substituted when the planner model output cannot be
// decoded, so the endpoint still answers with a well-formed body.
func FallbackRoadmap() GrowthRoadmap {
	return GrowthRoadmap{
		SubsidySchemes:    []SubsidyScheme{},
		TechnologyAdvisor: []TechnologyAdvice{},
		EconomicStrategy: EconomicStrategy{
			Title:                "Review Required",
			Summary:              "Could not parse AI response. Please try again.",
			Year1Actions:         []string{},
			Year2Actions:         []string{},
			Year3Target:          "N/A",
			EstimatedIncomeBoost: "N/A",
		},
		RiskWarnings: []string{"AI response format error — please retry."},
	}
}
