package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/adsight/moloco-crm/internal/models"
)

// DetectType classifies an export from its header set. Campaign-level
// exports carry a Campaign column; inventory exports carry an app title, and
// split into daily vs overall by whether a date column is present.
func DetectType(columns []string) models.CSVType {
	has := func(aliases []string) bool {
		for _, alias := range aliases {
			for _, c := range columns {
				if strings.EqualFold(strings.TrimSpace(c), alias) {
					return true
				}
			}
		}
		return false
	}

	hasCampaign := has(campaignCols)
	hasApp := has(appTitleCols) || has(appBundleCols)
	hasDate := has(dateCols)
	hasSpend := has(spendCols)

	switch {
	case hasCampaign && hasApp:
		return models.CSVTypeInventoryDaily
	case hasCampaign:
		return models.CSVTypeReports
	case hasApp && hasDate:
		return models.CSVTypeInventoryDaily
	case hasApp:
		return models.CSVTypeInventoryOverall
	case hasSpend && has(installCols):
		return models.CSVTypeReports
	}
	return models.CSVTypeUnknown
}

// NormalizeFileType maps the frontend's fileType form value onto a CSVType.
// "auto" (or empty) means detect from the header; the frontend sends the
// singular "report" for the plural internal type.
func NormalizeFileType(v string) (models.CSVType, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return models.CSVTypeUnknown, false
	case "report", "reports":
		return models.CSVTypeReports, true
	case "inventory_overall":
		return models.CSVTypeInventoryOverall, true
	case "inventory_daily":
		return models.CSVTypeInventoryDaily, true
	}
	return models.CSVTypeUnknown, false
}

var (
	compactDateRe = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
	isoDateRe     = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	dmyDateRe     = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
)

// DateFromFilename extracts a YYYY-MM-DD date embedded in a daily inventory
// filename (YYYYMMDD, YYYY-MM-DD or DD-MM-YYYY).
func DateFromFilename(filename string) (string, bool) {
	if m := isoDateRe.FindStringSubmatch(filename); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], true
	}
	if m := compactDateRe.FindStringSubmatch(filename); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], true
	}
	if m := dmyDateRe.FindStringSubmatch(filename); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1], true
	}
	return "", false
}

// NormalizeDate coerces the date formats seen in exports to YYYY-MM-DD.
// Unrecognized values are dropped rather than guessed.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02", "20060102", "01/02/2006", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
