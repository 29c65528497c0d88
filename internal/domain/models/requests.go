package models

import "encoding/json"

// CoordsRequest binds the lat/lon query pair used by the climate and
// satellite endpoints.
type CoordsRequest struct {
	Lat float64 `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
}

// MarketIntelligenceRequest binds the market summary query.
type MarketIntelligenceRequest struct {
	Region    string `query:"region" json:"region" default:"Kerala_Kottayam" validate:"required"`
	Commodity string `query:"commodity" json:"commodity" default:"Banana" validate:"required"`
	Days      int    `query:"days" json:"days" default:"14" validate:"gte=1,lte=30"`
}

// MarketRecordsRequest binds the paginated raw-records query.
type MarketRecordsRequest struct {
	Region    string `query:"region" json:"region" default:"Kerala_Kottayam" validate:"required"`
	Commodity string `query:"commodity" json:"commodity"`
	Page      int    `query:"page" json:"page" default:"1" validate:"gte=1"`
	PageSize  int    `query:"page_size" json:"page_size" default:"50" validate:"gte=1,lte=200"`
}

// OrchestrateRequest is the full assessment request. Any agent payload
// supplied here is used as-is and that agent is not invoked.
type OrchestrateRequest struct {
	Region    string          `json:"region" default:"Kerala_Kottayam"`
	Commodity string          `json:"commodity" default:"Banana"`
	Lat       *float64        `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon       *float64        `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Vision    json.RawMessage `json:"vision,omitempty"`
	Climate   json.RawMessage `json:"climate,omitempty"`
	Satellite json.RawMessage `json:"satellite,omitempty"`
	Market    json.RawMessage `json:"market,omitempty"`
}

// GrowthRoadmapRequest binds the farmer profile for planning.
type GrowthRoadmapRequest struct {
	ExperienceLevel  string `json:"experience_level" default:"beginner" validate:"oneof=beginner intermediate experienced"`
	LandSize         string `json:"land_size" default:"1-2 acres"`
	AvailableCapital string `json:"available_capital" default:"Under ₹50,000"`
	RiskAppetite     string `json:"risk_appetite" default:"conservative" validate:"oneof=conservative moderate aggressive"`
	Irrigation       bool   `json:"irrigation"`
	ColdStorage      bool   `json:"cold_storage"`
	Region           string `json:"region"`
	PrimaryCrop      string `json:"primary_crop"`
}

// Profile converts the request into the planner's domain profile.
func (r GrowthRoadmapRequest) Profile() GrowthProfile {
	return GrowthProfile{
		ExperienceLevel:  r.ExperienceLevel,
		LandSize:         r.LandSize,
		AvailableCapital: r.AvailableCapital,
		RiskAppetite:     r.RiskAppetite,
		Irrigation:       r.Irrigation,
		ColdStorage:      r.ColdStorage,
		Region:           r.Region,
		PrimaryCrop:      r.PrimaryCrop,
	}
}
