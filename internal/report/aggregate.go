package report

import (
	"github.com/adsight/moloco-crm/internal/models"
)

// Totals is the additive counter set shared by every grouping level.
type Totals struct {
	Spend       float64
	Impressions int64
	Clicks      int64
	Installs    int64
	Actions     int64
	Purchases   int64
	Revenue     float64
}

// Add accumulates one row into the totals.
func (t *Totals) Add(r models.Row) {
	t.Spend += r.Spend
	t.Impressions += r.Impressions
	t.Clicks += r.Clicks
	t.Installs += r.Installs
	t.Actions += r.Actions
	t.Purchases += r.Purchases
	t.Revenue += r.Revenue
}

// Group is one aggregation bucket: summed counters for a distinct key plus
// the first row seen for that key (dimension fields are taken from it).
type Group struct {
	Key   string
	First models.Row
	Totals
}

// Aggregate groups rows by keyFn and sums their counters, preserving
// first-seen key order. Rows whose key is empty are skipped.
func Aggregate(rows []models.Row, keyFn func(models.Row) string) []Group {
	index := make(map[string]int, len(rows))
	groups := make([]Group, 0)

	for _, r := range rows {
		key := keyFn(r)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, First: r})
		}
		groups[i].Add(r)
	}
	return groups
}

// Sum totals every row without grouping.
func Sum(rows []models.Row) Totals {
	var t Totals
	for _, r := range rows {
		t.Add(r)
	}
	return t
}

// Ratio helpers. All derived metrics are recomputed from aggregated sums and
// a zero denominator yields zero, never NaN or Inf.

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// CTR is the click-through rate in percent.
func CTR(clicks, impressions int64) float64 {
	return ratio(float64(clicks), float64(impressions)) * 100
}

// CPI is the cost per install.
func CPI(spend float64, installs int64) float64 {
	return ratio(spend, float64(installs))
}

// CPA is the cost per action.
func CPA(spend float64, actions int64) float64 {
	return ratio(spend, float64(actions))
}

// IPM is installs per thousand impressions.
func IPM(installs, impressions int64) float64 {
	return ratio(float64(installs), float64(impressions)) * 1000
}

// ROAS is revenue over spend.
func ROAS(revenue, spend float64) float64 {
	return ratio(revenue, spend)
}

// RevenuePerAction is revenue over actions.
func RevenuePerAction(revenue float64, actions int64) float64 {
	return ratio(revenue, float64(actions))
}
