package report

import (
	"sort"
	"strings"

	"github.com/adsight/moloco-crm/internal/models"
)

// List caps matching the dashboard layout.
const (
	topCampaignLimit = 10
	topCreativeLimit = 20
	topExchangeLimit = 15
	topGeoLimit      = 10
)

// gameKeywords maps campaign-name substrings to detected game types.
var gameKeywords = []struct{ keyword, game string }{
	{"chick", "Chicken"},
	{"plinko", "Plinko"},
	{"slot", "Slots"},
	{"poker", "Poker"},
	{"blackjack", "Blackjack"},
	{"roulette", "Roulette"},
	{"crash", "Crash"},
}

// BuildDashboard aggregates raw rows into the full dashboard view. The
// filter is applied to the raw rows first, so every section is derived from
// the same filtered set. Empty or fully filtered input yields zero totals
// and empty lists.
func BuildDashboard(rows []models.Row, filter RowFilter) models.Dashboard {
	filtered := filter.Apply(rows)

	creatives := CreativeSummaries(filtered)
	if len(creatives) > topCreativeLimit {
		creatives = creatives[:topCreativeLimit]
	}

	return models.Dashboard{
		Overview:              BuildOverview(filtered),
		TopCampaigns:          CampaignSummaries(filtered, topCampaignLimit),
		CreativePerformance:   models.CreativePerformance{TopPerformers: creatives},
		ExchangePerformance:   ExchangeSummaries(filtered, topExchangeLimit),
		GeographicPerformance: GeoSummaries(filtered, topGeoLimit),
		GamblingInsights:      DetectGamblingInsights(filtered),
		DailyBreakdown:        DailyBreakdown(filtered),
		InventoryAppAnalysis:  InventoryAnalysis(filtered),
		AvailableDates:        AvailableDates(rows),
		AvailableCountries:    AvailableCountries(rows),
	}
}

// BuildOverview sums every row and recomputes the headline ratios.
func BuildOverview(rows []models.Row) models.Overview {
	t := Sum(rows)
	campaigns := make(map[string]struct{})
	for _, r := range rows {
		if r.Campaign != "" {
			campaigns[r.Campaign] = struct{}{}
		}
	}
	return models.Overview{
		TotalSpend:       t.Spend,
		TotalImpressions: t.Impressions,
		TotalClicks:      t.Clicks,
		TotalInstalls:    t.Installs,
		TotalActions:     t.Actions,
		TotalRevenue:     t.Revenue,
		AvgCTR:           CTR(t.Clicks, t.Impressions),
		AvgCPI:           CPI(t.Spend, t.Installs),
		AvgROAS:          ROAS(t.Revenue, t.Spend),
		TotalCampaigns:   len(campaigns),
	}
}

// CampaignSummaries groups by campaign name and returns up to limit entries
// ordered by spend descending (limit <= 0 means no cap). Ties keep
// first-seen order.
func CampaignSummaries(rows []models.Row, limit int) []models.CampaignSummary {
	groups := Aggregate(rows, func(r models.Row) string { return r.Campaign })
	out := make([]models.CampaignSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CampaignSummary{
			Campaign:    g.Key,
			Spend:       g.Spend,
			Impressions: g.Impressions,
			Clicks:      g.Clicks,
			Installs:    g.Installs,
			Actions:     g.Actions,
			Revenue:     g.Revenue,
			CTR:         CTR(g.Clicks, g.Impressions),
			CPI:         CPI(g.Spend, g.Installs),
			CPA:         CPA(g.Spend, g.Actions),
			ROAS:        ROAS(g.Revenue, g.Spend),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CreativeSummaries groups by creative name and returns every creative
// ordered by spend descending. The caller caps the list as needed (the
// dashboard takes the top 20, the paginated endpoint takes everything).
func CreativeSummaries(rows []models.Row) []models.CreativeSummary {
	groups := Aggregate(rows, func(r models.Row) string { return r.Creative })
	out := make([]models.CreativeSummary, 0, len(groups))
	for _, g := range groups {
		rpa := RevenuePerAction(g.Revenue, g.Actions)
		out = append(out, models.CreativeSummary{
			CreativeName:     g.Key,
			Spend:            g.Spend,
			Impressions:      g.Impressions,
			Clicks:           g.Clicks,
			Installs:         g.Installs,
			Actions:          g.Actions,
			Revenue:          g.Revenue,
			CTR:              CTR(g.Clicks, g.Impressions),
			CPI:              CPI(g.Spend, g.Installs),
			CPA:              CPA(g.Spend, g.Actions),
			RevenuePerAction: rpa,
			Performance:      performanceTier(rpa),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	return out
}

// performanceTier buckets creatives by revenue per action.
func performanceTier(revenuePerAction float64) string {
	switch {
	case revenuePerAction >= 130 && revenuePerAction <= 189:
		return "Tier 1"
	case revenuePerAction >= 70 && revenuePerAction < 130:
		return "Tier 2"
	case revenuePerAction >= 20 && revenuePerAction < 70:
		return "Tier 3"
	default:
		return "Low"
	}
}

// ExchangeSummaries groups by exchange, ordered by spend descending.
func ExchangeSummaries(rows []models.Row, limit int) []models.ExchangeSummary {
	groups := Aggregate(rows, func(r models.Row) string { return r.Exchange })
	out := make([]models.ExchangeSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.ExchangeSummary{
			Exchange:    g.Key,
			Spend:       g.Spend,
			Impressions: g.Impressions,
			Clicks:      g.Clicks,
			Installs:    g.Installs,
			Actions:     g.Actions,
			CTR:         CTR(g.Clicks, g.Impressions),
			CPI:         CPI(g.Spend, g.Installs),
			CPA:         CPA(g.Spend, g.Actions),
			IPM:         IPM(g.Installs, g.Impressions),
			ROAS:        ROAS(g.Revenue, g.Spend),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GeoSummaries groups by country, ordered by spend descending.
func GeoSummaries(rows []models.Row, limit int) []models.GeoSummary {
	groups := Aggregate(rows, func(r models.Row) string { return r.Country })
	out := make([]models.GeoSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.GeoSummary{
			Country:  g.Key,
			Spend:    g.Spend,
			Installs: g.Installs,
			CPI:      CPI(g.Spend, g.Installs),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DailyBreakdown groups by date in ascending date order.
func DailyBreakdown(rows []models.Row) []models.DailyPoint {
	groups := Aggregate(rows, func(r models.Row) string { return r.Date })
	out := make([]models.DailyPoint, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.DailyPoint{
			Date:        g.Key,
			Spend:       g.Spend,
			Impressions: g.Impressions,
			Clicks:      g.Clicks,
			Installs:    g.Installs,
			Actions:     g.Actions,
			Revenue:     g.Revenue,
			CPI:         CPI(g.Spend, g.Installs),
			ROAS:        ROAS(g.Revenue, g.Spend),
			CTR:         CTR(g.Clicks, g.Impressions),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// InventoryAnalysis groups inventory rows by app (bundle + app ID + OS) and
// by category (app title stands in when no category column exists).
func InventoryAnalysis(rows []models.Row) models.InventoryAnalysis {
	appGroups := Aggregate(rows, func(r models.Row) string {
		if r.AppBundle == "" && r.AppID == "" && r.AppTitle == "" {
			return ""
		}
		return r.AppBundle + "\x00" + r.AppID + "\x00" + r.OS
	})

	apps := make([]models.AppSummary, 0, len(appGroups))
	for _, g := range appGroups {
		name := g.First.AppTitle
		if name == "" {
			name = "Unknown App"
		}
		apps = append(apps, models.AppSummary{
			AppName:     name,
			AppBundle:   g.First.AppBundle,
			AppID:       g.First.AppID,
			OS:          g.First.OS,
			Spend:       g.Spend,
			Impressions: g.Impressions,
			Installs:    g.Installs,
			Actions:     g.Actions,
			StoreLinks:  StoreLinksFor(g.First.AppBundle, g.First.OS),
		})
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].Spend > apps[j].Spend })

	catGroups := Aggregate(rows, func(r models.Row) string { return r.AppTitle })
	cats := make([]models.CategorySummary, 0, len(catGroups))
	catCounts := make(map[string]int, len(catGroups))
	for _, r := range rows {
		if r.AppTitle != "" {
			catCounts[r.AppTitle]++
		}
	}
	for _, g := range catGroups {
		cats = append(cats, models.CategorySummary{
			Category: g.Key,
			Spend:    g.Spend,
			Installs: g.Installs,
			Actions:  g.Actions,
			Count:    catCounts[g.Key],
		})
	}

	return models.InventoryAnalysis{
		Apps:       apps,
		Categories: cats,
		TotalApps:  len(apps),
	}
}

// DetectGamblingInsights scans campaign names for known game keywords.
func DetectGamblingInsights(rows []models.Row) models.GamblingInsights {
	seen := make(map[string]bool)
	detected := make([]string, 0)
	countries := make(map[string]struct{})

	for _, r := range rows {
		if r.Country != "" {
			countries[r.Country] = struct{}{}
		}
		name := strings.ToLower(r.Campaign)
		if name == "" {
			continue
		}
		for _, kw := range gameKeywords {
			if !seen[kw.game] && strings.Contains(name, kw.keyword) {
				seen[kw.game] = true
				detected = append(detected, kw.game)
			}
		}
	}

	primary := "Unknown"
	if len(detected) > 0 {
		primary = detected[0]
	}
	return models.GamblingInsights{
		DetectedGameTypes: detected,
		PrimaryGameType:   primary,
		TotalCountries:    len(countries),
	}
}

// AvailableDates returns the sorted distinct dates across all rows.
func AvailableDates(rows []models.Row) []string {
	return distinctSorted(rows, func(r models.Row) string { return r.Date })
}

// AvailableCountries returns the sorted distinct countries across all rows.
func AvailableCountries(rows []models.Row) []string {
	return distinctSorted(rows, func(r models.Row) string { return r.Country })
}

func distinctSorted(rows []models.Row, field func(models.Row) string) []string {
	set := make(map[string]struct{})
	for _, r := range rows {
		if v := field(r); v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
