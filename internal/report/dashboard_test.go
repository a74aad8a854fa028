package report

import (
	"fmt"
	"testing"

	"github.com/adsight/moloco-crm/internal/models"
)

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, RowFilter{})
	if d.Overview.TotalSpend != 0 || d.Overview.TotalCampaigns != 0 {
		t.Errorf("empty dashboard overview = %+v, want zeros", d.Overview)
	}
	if len(d.TopCampaigns) != 0 {
		t.Errorf("empty dashboard has %d campaigns", len(d.TopCampaigns))
	}
}

func TestBuildDashboardAvailableDimensionsIgnoreFilter(t *testing.T) {
	rows := []models.Row{
		{Campaign: "A", Country: "US", Date: "2024-01-01", Spend: 1},
		{Campaign: "B", Country: "BR", Date: "2024-02-01", Spend: 2},
	}
	d := BuildDashboard(rows, RowFilter{Country: "US"})

	if len(d.AvailableCountries) != 2 {
		t.Errorf("available countries = %v, want both BR and US", d.AvailableCountries)
	}
	if len(d.AvailableDates) != 2 {
		t.Errorf("available dates = %v, want both dates", d.AvailableDates)
	}
	// but the aggregates respect the filter
	if d.Overview.TotalSpend != 1 {
		t.Errorf("filtered overview spend = %v, want 1", d.Overview.TotalSpend)
	}
}

func TestCampaignSummariesTopBySpend(t *testing.T) {
	var rows []models.Row
	for i := 0; i < 15; i++ {
		rows = append(rows, models.Row{
			Campaign: fmt.Sprintf("c%02d", i),
			Spend:    float64(i),
		})
	}

	got := CampaignSummaries(rows, 10)
	if len(got) != 10 {
		t.Fatalf("got %d campaigns, want 10", len(got))
	}
	if got[0].Campaign != "c14" {
		t.Errorf("top campaign = %q, want c14", got[0].Campaign)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Spend > got[i-1].Spend {
			t.Fatalf("campaigns not ordered by spend desc at %d", i)
		}
	}
}

func TestPerformanceTiers(t *testing.T) {
	cases := []struct {
		rpa  float64
		want string
	}{
		{189, "Tier 1"},
		{130, "Tier 1"},
		{129.99, "Tier 2"},
		{70, "Tier 2"},
		{69.99, "Tier 3"},
		{20, "Tier 3"},
		{19.99, "Low"},
		{0, "Low"},
		{190, "Low"},
	}
	for _, c := range cases {
		if got := performanceTier(c.rpa); got != c.want {
			t.Errorf("performanceTier(%v) = %q, want %q", c.rpa, got, c.want)
		}
	}
}

func TestCreativeSummariesCarryTier(t *testing.T) {
	rows := []models.Row{
		{Creative: "good.mp4", Spend: 10, Revenue: 300, Actions: 2},  // rpa 150
		{Creative: "weak.mp4", Spend: 20, Revenue: 30, Actions: 3},   // rpa 10
	}
	got := CreativeSummaries(rows)
	if len(got) != 2 {
		t.Fatalf("got %d creatives, want 2", len(got))
	}
	// ordered by spend desc
	if got[0].CreativeName != "weak.mp4" {
		t.Fatalf("top spend creative = %q, want weak.mp4", got[0].CreativeName)
	}
	if got[0].Performance != "Low" {
		t.Errorf("weak creative tier = %q, want Low", got[0].Performance)
	}
	if got[1].Performance != "Tier 1" {
		t.Errorf("good creative tier = %q, want Tier 1", got[1].Performance)
	}
}

func TestDailyBreakdownAscending(t *testing.T) {
	rows := []models.Row{
		{Date: "2024-01-03", Spend: 3},
		{Date: "2024-01-01", Spend: 1},
		{Date: "2024-01-02", Spend: 2},
	}
	got := DailyBreakdown(rows)
	if len(got) != 3 {
		t.Fatalf("got %d days, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date < got[i-1].Date {
			t.Fatalf("days not ascending at %d: %v", i, got)
		}
	}
}

func TestDetectGamblingInsights(t *testing.T) {
	rows := []models.Row{
		{Campaign: "US_plinko_v2", Country: "US"},
		{Campaign: "BR_Chicken_road", Country: "BR"},
		{Campaign: "generic brand", Country: "DE"},
	}
	got := DetectGamblingInsights(rows)
	if len(got.DetectedGameTypes) != 2 {
		t.Fatalf("detected = %v, want Plinko and Chicken", got.DetectedGameTypes)
	}
	if got.PrimaryGameType != got.DetectedGameTypes[0] {
		t.Errorf("primary = %q, want first detected %q", got.PrimaryGameType, got.DetectedGameTypes[0])
	}
	if got.TotalCountries != 3 {
		t.Errorf("total countries = %d, want 3", got.TotalCountries)
	}
}

func TestDetectGamblingInsightsNoMatch(t *testing.T) {
	got := DetectGamblingInsights([]models.Row{{Campaign: "brand awareness"}})
	if got.PrimaryGameType != "Unknown" {
		t.Errorf("primary = %q, want Unknown", got.PrimaryGameType)
	}
	if len(got.DetectedGameTypes) != 0 {
		t.Errorf("detected = %v, want none", got.DetectedGameTypes)
	}
}

func TestInventoryAnalysis(t *testing.T) {
	rows := []models.Row{
		{AppTitle: "Ludo King", AppBundle: "com.ludo.king", OS: "android", Spend: 5, Installs: 2},
		{AppTitle: "Ludo King", AppBundle: "com.ludo.king", OS: "android", Spend: 3, Installs: 1},
		{AppTitle: "", AppBundle: "993090598", OS: "ios", Spend: 1},
	}
	got := InventoryAnalysis(rows)
	if got.TotalApps != 2 {
		t.Fatalf("total apps = %d, want 2", got.TotalApps)
	}
	if got.Apps[0].AppName != "Ludo King" || got.Apps[0].Spend != 8 {
		t.Errorf("top app = %+v, want Ludo King with spend 8", got.Apps[0])
	}
	if got.Apps[1].AppName != "Unknown App" {
		t.Errorf("untitled app name = %q, want Unknown App", got.Apps[1].AppName)
	}
	if got.Apps[0].StoreLinks.GooglePlay == "" {
		t.Error("android app missing Google Play link")
	}
	if got.Apps[1].StoreLinks.AppStore == "" {
		t.Error("numeric-bundle app missing App Store link")
	}
}

func TestAvailableDatesSortedDistinct(t *testing.T) {
	rows := []models.Row{
		{Date: "2024-01-02"},
		{Date: "2024-01-01"},
		{Date: "2024-01-02"},
		{Date: ""},
	}
	got := AvailableDates(rows)
	if len(got) != 2 || got[0] != "2024-01-01" || got[1] != "2024-01-02" {
		t.Fatalf("got %v, want [2024-01-01 2024-01-02]", got)
	}
}
