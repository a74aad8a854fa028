package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/adsight/moloco-crm/internal/models"
)

// ErrNoHeader is returned for files without a single header row.
var ErrNoHeader = errors.New("csv has no header row")

// ParsedFile is the result of decoding one uploaded CSV.
type ParsedFile struct {
	Type    models.CSVType
	Columns []string
	Rows    []models.Row
}

// Moloco exports are inconsistent about singular vs plural counter names
// and prefix inventory columns with "Inventory - ". Each alias list is in
// preference order.
var (
	campaignCols  = []string{"Campaign", "Campaign Name"}
	creativeCols  = []string{"Creative", "Creative Name", "Filename"}
	exchangeCols  = []string{"Exchange"}
	appTitleCols  = []string{"Inventory - App Title", "App Title", "App Name"}
	appBundleCols = []string{"Inventory - App Bundle", "App Bundle", "Bundle ID", "Bundle"}
	appIDCols     = []string{"App ID", "App Id"}
	osCols        = []string{"OS", "Platform"}
	countryCols   = []string{"Country", "Geo"}
	dateCols      = []string{"Date", "Day"}

	spendCols      = []string{"Spend", "Cost"}
	impressionCols = []string{"Impressions", "Impression"}
	clickCols      = []string{"Clicks", "Click"}
	installCols    = []string{"Install", "Installs"}
	actionCols     = []string{"Action", "Actions"}
	purchaseCols   = []string{"Purchase", "Purchases"}
	// Revenue ladder: first matching column wins, mirroring the export
	// variants that carry day-N revenue instead of a plain Revenue column.
	revenueCols = []string{"Revenue", "D1 Revenue", "D3 Revenue", "D7 Revenue", "D30 Revenue"}
)

// Parse decodes a CSV stream into normalized rows. The byte stream is tried
// as UTF-8 first and re-decoded as Windows-1252 when it is not valid UTF-8
// (Moloco exports show up in both). A header-only file yields zero rows; a
// file with no header at all is ErrNoHeader.
func Parse(r io.Reader) (*ParsedFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	if !utf8.Valid(raw) {
		decoded, derr := charmap.Windows1252.NewDecoder().Bytes(raw)
		if derr != nil {
			return nil, fmt.Errorf("decode csv charset: %w", derr)
		}
		raw = decoded
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = strings.TrimSpace(c)
	}
	idx := buildIndex(columns)

	var rows []models.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A ragged or garbled line is skipped, not fatal; the original
			// treats unreadable data as zero rows rather than a hard error.
			continue
		}
		rows = append(rows, idx.row(record))
	}

	return &ParsedFile{
		Type:    DetectType(columns),
		Columns: columns,
		Rows:    rows,
	}, nil
}

// colIndex maps normalized concerns to header positions, -1 when absent.
type colIndex struct {
	campaign, creative, exchange    int
	appTitle, appBundle, appID, os  int
	country, date                   int
	spend, impressions, clicks      int
	installs, actions, purchases    int
	revenue                         int
}

func buildIndex(columns []string) colIndex {
	find := func(aliases []string) int {
		for _, alias := range aliases {
			for i, c := range columns {
				if strings.EqualFold(c, alias) {
					return i
				}
			}
		}
		return -1
	}
	return colIndex{
		campaign:    find(campaignCols),
		creative:    find(creativeCols),
		exchange:    find(exchangeCols),
		appTitle:    find(appTitleCols),
		appBundle:   find(appBundleCols),
		appID:       find(appIDCols),
		os:          find(osCols),
		country:     find(countryCols),
		date:        find(dateCols),
		spend:       find(spendCols),
		impressions: find(impressionCols),
		clicks:      find(clickCols),
		installs:    find(installCols),
		actions:     find(actionCols),
		purchases:   find(purchaseCols),
		revenue:     find(revenueCols),
	}
}

func (idx colIndex) row(record []string) models.Row {
	text := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return models.Row{
		Campaign:    text(idx.campaign),
		Creative:    text(idx.creative),
		Exchange:    text(idx.exchange),
		AppTitle:    text(idx.appTitle),
		AppBundle:   text(idx.appBundle),
		AppID:       text(idx.appID),
		OS:          text(idx.os),
		Country:     text(idx.country),
		Date:        NormalizeDate(text(idx.date)),
		Spend:       parseFloat(text(idx.spend)),
		Impressions: parseInt(text(idx.impressions)),
		Clicks:      parseInt(text(idx.clicks)),
		Installs:    parseInt(text(idx.installs)),
		Actions:     parseInt(text(idx.actions)),
		Purchases:   parseInt(text(idx.purchases)),
		Revenue:     parseFloat(text(idx.revenue)),
	}
}

// parseFloat is tolerant of currency prefixes and thousands separators;
// anything unparseable counts as zero.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Some exports write counters as floats ("12.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
