package report

import (
	"strings"

	"github.com/adsight/moloco-crm/internal/models"
)

// RowFilter restricts the raw row set before aggregation. Dates are
// inclusive YYYY-MM-DD strings (lexicographic compare is date order for this
// format); an empty bound leaves that side open. Country matching is
// case-insensitive.
type RowFilter struct {
	StartDate string
	EndDate   string
	Country   string
}

// Empty reports whether the filter passes every row through.
func (f RowFilter) Empty() bool {
	return f.StartDate == "" && f.EndDate == "" && f.Country == ""
}

// Key returns a stable cache key component for the filter.
func (f RowFilter) Key() string {
	return f.StartDate + "|" + f.EndDate + "|" + strings.ToUpper(f.Country)
}

// Match reports whether a row passes the filter. Rows without a date are
// excluded by any date bound: they cannot be proven in range.
func (f RowFilter) Match(r models.Row) bool {
	if f.StartDate != "" || f.EndDate != "" {
		if r.Date == "" {
			return false
		}
		if f.StartDate != "" && r.Date < f.StartDate {
			return false
		}
		if f.EndDate != "" && r.Date > f.EndDate {
			return false
		}
	}
	if f.Country != "" && !strings.EqualFold(r.Country, f.Country) {
		return false
	}
	return true
}

// Apply returns the rows passing the filter. A filter matching nothing
// returns an empty slice, never nil with an error.
func (f RowFilter) Apply(rows []models.Row) []models.Row {
	if f.Empty() {
		return rows
	}
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
