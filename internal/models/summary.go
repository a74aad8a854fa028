package models

// Overview holds the dashboard headline totals. Average ratios are
// recomputed from the aggregated sums, never averaged across rows.
type Overview struct {
	TotalSpend       float64 `json:"total_spend"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	TotalInstalls    int64   `json:"total_installs"`
	TotalActions     int64   `json:"total_actions"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgCTR           float64 `json:"avg_ctr"`
	AvgCPI           float64 `json:"avg_cpi"`
	AvgROAS          float64 `json:"avg_roas"`
	TotalCampaigns   int     `json:"total_campaigns"`
}

// CampaignSummary aggregates metrics for one campaign.
type CampaignSummary struct {
	Campaign    string  `json:"campaign"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Installs    int64   `json:"installs"`
	Actions     int64   `json:"actions"`
	Revenue     float64 `json:"revenue"`
	CTR         float64 `json:"ctr"`
	CPI         float64 `json:"cpi"`
	CPA         float64 `json:"cpa"`
	ROAS        float64 `json:"roas"`
}

// CreativeSummary aggregates metrics for one creative.
type CreativeSummary struct {
	CreativeName     string  `json:"creative_name"`
	Spend            float64 `json:"spend"`
	Impressions      int64   `json:"impressions"`
	Clicks           int64   `json:"clicks"`
	Installs         int64   `json:"installs"`
	Actions          int64   `json:"actions"`
	Revenue          float64 `json:"revenue"`
	CTR              float64 `json:"ctr"`
	CPI              float64 `json:"cpi"`
	CPA              float64 `json:"cpa"`
	RevenuePerAction float64 `json:"revenue_per_action"`
	Performance      string  `json:"performance"`
}

// CreativePerformance wraps the creative list the frontend consumes.
type CreativePerformance struct {
	TopPerformers []CreativeSummary `json:"top_performers"`
}

// ExchangeSummary aggregates metrics for one ad exchange.
type ExchangeSummary struct {
	Exchange    string  `json:"exchange"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Installs    int64   `json:"installs"`
	Actions     int64   `json:"actions"`
	CTR         float64 `json:"ctr"`
	CPI         float64 `json:"cpi"`
	CPA         float64 `json:"cpa"`
	IPM         float64 `json:"ipm"`
	ROAS        float64 `json:"roas"`
}

// GeoSummary aggregates metrics for one country.
type GeoSummary struct {
	Country  string  `json:"country"`
	Spend    float64 `json:"spend"`
	Installs int64   `json:"installs"`
	CPI      float64 `json:"cpi"`
}

// StoreLinks carries store page URLs derived from an app bundle ID.
type StoreLinks struct {
	AppStore   string `json:"app_store,omitempty"`
	GooglePlay string `json:"google_play,omitempty"`
}

// AppSummary aggregates inventory metrics for one app placement.
type AppSummary struct {
	AppName     string     `json:"app_name"`
	AppBundle   string     `json:"app_bundle"`
	AppID       string     `json:"app_id"`
	OS          string     `json:"os"`
	Spend       float64    `json:"spend"`
	Impressions int64      `json:"impressions"`
	Installs    int64      `json:"installs"`
	Actions     int64      `json:"actions"`
	StoreLinks  StoreLinks `json:"store_links"`
}

// CategorySummary groups inventory spend by app category (falls back to app
// title when the export carries no category column).
type CategorySummary struct {
	Category string  `json:"category"`
	Spend    float64 `json:"spend"`
	Installs int64   `json:"installs"`
	Actions  int64   `json:"actions"`
	Count    int     `json:"count"`
}

// InventoryAnalysis is the inventory view of the dashboard.
type InventoryAnalysis struct {
	Apps       []AppSummary      `json:"apps"`
	Categories []CategorySummary `json:"categories"`
	TotalApps  int               `json:"total_apps"`
}

// DailyPoint is one day in the daily breakdown series.
type DailyPoint struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Installs    int64   `json:"installs"`
	Actions     int64   `json:"actions"`
	Revenue     float64 `json:"revenue"`
	CPI         float64 `json:"cpi"`
	ROAS        float64 `json:"roas"`
	CTR         float64 `json:"ctr"`
}

// GamblingInsights reports game types detected from campaign names.
type GamblingInsights struct {
	DetectedGameTypes []string `json:"detected_game_types"`
	PrimaryGameType   string   `json:"primary_game_type"`
	TotalCountries    int      `json:"total_countries"`
}

// Dashboard is the full aggregated view served to the frontend. Empty input
// produces zero totals and empty (non-nil) lists, never an error.
type Dashboard struct {
	Overview              Overview            `json:"overview"`
	TopCampaigns          []CampaignSummary   `json:"top_campaigns"`
	CreativePerformance   CreativePerformance `json:"creative_performance"`
	ExchangePerformance   []ExchangeSummary   `json:"exchange_performance"`
	GeographicPerformance []GeoSummary        `json:"geographic_performance"`
	GamblingInsights      GamblingInsights    `json:"gambling_insights"`
	DailyBreakdown        []DailyPoint        `json:"daily_breakdown"`
	InventoryAppAnalysis  InventoryAnalysis   `json:"inventory_app_analysis"`
	AvailableDates        []string            `json:"available_dates,omitempty"`
	AvailableCountries    []string            `json:"available_countries,omitempty"`
}
