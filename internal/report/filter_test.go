package report

import (
	"testing"

	"github.com/adsight/moloco-crm/internal/models"
)

func TestFilterDateBoundsInclusive(t *testing.T) {
	rows := []models.Row{
		{Campaign: "A", Date: "2024-01-01"},
		{Campaign: "B", Date: "2024-01-05"},
		{Campaign: "C", Date: "2024-01-10"},
	}

	got := RowFilter{StartDate: "2024-01-01", EndDate: "2024-01-05"}.Apply(rows)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Campaign != "A" || got[1].Campaign != "B" {
		t.Errorf("got %+v, want A and B", got)
	}
}

func TestFilterExcludesDatelessRowsWhenDateBound(t *testing.T) {
	rows := []models.Row{
		{Campaign: "dated", Date: "2024-01-05"},
		{Campaign: "dateless", Date: ""},
	}

	got := RowFilter{StartDate: "2024-01-01"}.Apply(rows)
	if len(got) != 1 || got[0].Campaign != "dated" {
		t.Fatalf("got %+v, want only the dated row", got)
	}

	// without a date bound, dateless rows pass
	got = RowFilter{Country: ""}.Apply(rows)
	if len(got) != 2 {
		t.Fatalf("got %d rows with empty filter, want 2", len(got))
	}
}

func TestFilterCountryCaseInsensitive(t *testing.T) {
	rows := []models.Row{
		{Campaign: "A", Country: "US"},
		{Campaign: "B", Country: "br"},
	}

	got := RowFilter{Country: "us"}.Apply(rows)
	if len(got) != 1 || got[0].Campaign != "A" {
		t.Fatalf("got %+v, want only US row", got)
	}

	got = RowFilter{Country: "BR"}.Apply(rows)
	if len(got) != 1 || got[0].Campaign != "B" {
		t.Fatalf("got %+v, want only br row", got)
	}
}

func TestFilterNoMatchReturnsEmptySlice(t *testing.T) {
	rows := []models.Row{{Campaign: "A", Country: "US"}}
	got := RowFilter{Country: "JP"}.Apply(rows)
	if got == nil {
		t.Fatal("Apply returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("got %d rows, want 0", len(got))
	}
}

func TestFilterEmpty(t *testing.T) {
	if !(RowFilter{}).Empty() {
		t.Error("zero filter should be empty")
	}
	if (RowFilter{Country: "US"}).Empty() {
		t.Error("country filter should not be empty")
	}
}

func TestFilterKeyDistinct(t *testing.T) {
	a := RowFilter{StartDate: "2024-01-01"}.Key()
	b := RowFilter{EndDate: "2024-01-01"}.Key()
	if a == b {
		t.Errorf("start-only and end-only filters share cache key %q", a)
	}
}
