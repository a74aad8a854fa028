package ingest

import (
	"testing"

	"github.com/adsight/moloco-crm/internal/models"
)

func TestDetectType(t *testing.T) {
	cases := []struct {
		name    string
		columns []string
		want    models.CSVType
	}{
		{"campaign report", []string{"Campaign", "Spend", "Impressions"}, models.CSVTypeReports},
		{"campaign plus app", []string{"Campaign", "Inventory - App Title"}, models.CSVTypeInventoryDaily},
		{"app with date", []string{"App Title", "Date", "Spend"}, models.CSVTypeInventoryDaily},
		{"app overall", []string{"App Title", "Spend"}, models.CSVTypeInventoryOverall},
		{"spend install fallback", []string{"Spend", "Install"}, models.CSVTypeReports},
		{"unknown", []string{"Foo", "Bar"}, models.CSVTypeUnknown},
	}
	for _, c := range cases {
		if got := DetectType(c.columns); got != c.want {
			t.Errorf("%s: DetectType(%v) = %q, want %q", c.name, c.columns, got, c.want)
		}
	}
}

func TestNormalizeFileType(t *testing.T) {
	cases := []struct {
		in   string
		want models.CSVType
		ok   bool
	}{
		{"auto", models.CSVTypeUnknown, false},
		{"", models.CSVTypeUnknown, false},
		{"report", models.CSVTypeReports, true},
		{"reports", models.CSVTypeReports, true},
		{"inventory_overall", models.CSVTypeInventoryOverall, true},
		{"Inventory_Daily", models.CSVTypeInventoryDaily, true},
		{"nonsense", models.CSVTypeUnknown, false},
	}
	for _, c := range cases {
		got, ok := NormalizeFileType(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("NormalizeFileType(%q) = %q,%v want %q,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestDateFromFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"inventory_2024-01-15.csv", "2024-01-15", true},
		{"inventory_20240115.csv", "2024-01-15", true},
		{"inventory_15-01-2024.csv", "2024-01-15", true},
		{"inventory.csv", "", false},
	}
	for _, c := range cases {
		got, ok := DateFromFilename(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("DateFromFilename(%q) = %q,%v want %q,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "2024-01-15"},
		{"2024/01/15", "2024-01-15"},
		{"20240115", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"2024-01-15 10:30:00", "2024-01-15"},
		{"", ""},
		{"yesterday", ""},
	}
	for _, c := range cases {
		if got := NormalizeDate(c.in); got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
