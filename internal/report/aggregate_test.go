package report

import (
	"testing"

	"github.com/adsight/moloco-crm/internal/models"
)

func TestAggregateSumsAndRatios(t *testing.T) {
	rows := []models.Row{
		{Campaign: "A", Spend: 10, Installs: 1},
		{Campaign: "A", Spend: 20, Installs: 3},
		{Campaign: "B", Spend: 5, Installs: 0},
	}

	groups := Aggregate(rows, func(r models.Row) string { return r.Campaign })
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	a := groups[0]
	if a.Key != "A" {
		t.Fatalf("first group key = %q, want A (first-seen order)", a.Key)
	}
	if a.Spend != 30 || a.Installs != 4 {
		t.Errorf("group A = spend %v installs %d, want 30 / 4", a.Spend, a.Installs)
	}
	if got := CPI(a.Spend, a.Installs); got != 7.5 {
		t.Errorf("CPI(A) = %v, want 7.5", got)
	}

	b := groups[1]
	if b.Spend != 5 || b.Installs != 0 {
		t.Errorf("group B = spend %v installs %d, want 5 / 0", b.Spend, b.Installs)
	}
	if got := CPI(b.Spend, b.Installs); got != 0 {
		t.Errorf("CPI(B) = %v, want 0 for zero installs", got)
	}
}

func TestAggregateSkipsEmptyKeys(t *testing.T) {
	rows := []models.Row{
		{Campaign: "", Spend: 10},
		{Campaign: "A", Spend: 1},
	}
	groups := Aggregate(rows, func(r models.Row) string { return r.Campaign })
	if len(groups) != 1 || groups[0].Key != "A" {
		t.Fatalf("got %+v, want single group A", groups)
	}
}

func TestAggregatePreservesFirstSeenOrder(t *testing.T) {
	rows := []models.Row{
		{Campaign: "z"},
		{Campaign: "a"},
		{Campaign: "m"},
		{Campaign: "a"},
	}
	groups := Aggregate(rows, func(r models.Row) string { return r.Campaign })
	want := []string{"z", "a", "m"}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Fatalf("group[%d] = %q, want %q", i, g.Key, want[i])
		}
	}
}

func TestRatiosZeroSafe(t *testing.T) {
	cases := []struct {
		name string
		got  float64
	}{
		{"CTR", CTR(10, 0)},
		{"CPI", CPI(10, 0)},
		{"CPA", CPA(10, 0)},
		{"IPM", IPM(10, 0)},
		{"ROAS", ROAS(10, 0)},
		{"RevenuePerAction", RevenuePerAction(10, 0)},
	}
	for _, c := range cases {
		if c.got != 0 {
			t.Errorf("%s with zero denominator = %v, want 0", c.name, c.got)
		}
	}
}

func TestRatioValues(t *testing.T) {
	if got := CTR(5, 1000); got != 0.5 {
		t.Errorf("CTR = %v, want 0.5", got)
	}
	if got := IPM(3, 1000); got != 3 {
		t.Errorf("IPM = %v, want 3", got)
	}
	if got := ROAS(150, 100); got != 1.5 {
		t.Errorf("ROAS = %v, want 1.5", got)
	}
}

func TestSumEmpty(t *testing.T) {
	t1 := Sum(nil)
	if t1.Spend != 0 || t1.Impressions != 0 {
		t.Errorf("Sum(nil) = %+v, want zero totals", t1)
	}
}
