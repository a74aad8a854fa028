package models

import "time"

// CSVType identifies the kind of Moloco export a report was parsed from.
type CSVType string

const (
	CSVTypeReports          CSVType = "reports"
	CSVTypeInventoryOverall CSVType = "inventory_overall"
	CSVTypeInventoryDaily   CSVType = "inventory_daily"
	CSVTypeUnknown          CSVType = "unknown"
)

// Valid reports whether t is a known CSV type.
func (t CSVType) Valid() bool {
	switch t {
	case CSVTypeReports, CSVTypeInventoryOverall, CSVTypeInventoryDaily:
		return true
	}
	return false
}

// Report is the metadata for one uploaded CSV batch. Raw rows live in the
// report store keyed by Report.ID.
type Report struct {
	ID              string    `json:"id"`
	Account         string    `json:"account"`
	Filename        string    `json:"filename"`
	CSVType         CSVType   `json:"csv_type"`
	UploadedAt      time.Time `json:"upload_time"`
	RowCount        int       `json:"rows"`
	Columns         []string  `json:"columns"`
	UploaderCountry string    `json:"uploader_country,omitempty"`
	FilePath        string    `json:"-"`
}

// Row is one normalized CSV line. Dimension fields are free-text copies of
// the source columns (no referential integrity); counters are additive.
type Row struct {
	Campaign  string `json:"campaign,omitempty"`
	Creative  string `json:"creative,omitempty"`
	Exchange  string `json:"exchange,omitempty"`
	AppTitle  string `json:"app_title,omitempty"`
	AppBundle string `json:"app_bundle,omitempty"`
	AppID     string `json:"app_id,omitempty"`
	OS        string `json:"os,omitempty"`
	Country   string `json:"country,omitempty"`
	// Date is YYYY-MM-DD, empty when the source has no date column and the
	// filename carried no date either.
	Date string `json:"date,omitempty"`

	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Installs    int64   `json:"installs"`
	Actions     int64   `json:"actions"`
	Purchases   int64   `json:"purchases"`
	Revenue     float64 `json:"revenue"`
}
