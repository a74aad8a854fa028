package httpserver

import (
	"errors"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/adsight/moloco-crm/internal/models"
	"github.com/adsight/moloco-crm/internal/naming"
	"github.com/adsight/moloco-crm/internal/report"
	"github.com/adsight/moloco-crm/internal/storage"
)

// recentReportLimit caps the report metadata list on /reports to keep the
// response small; the dashboard sections already cover all data.
const recentReportLimit = 10

type reportsResponse struct {
	Success bool             `json:"success"`
	Reports []*models.Report `json:"reports"`
	Total   int              `json:"total"`
	models.Dashboard
}

// ---- Reports ----

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reports, err := s.store.ListReports(r.Context())
	if err != nil {
		s.logger.Error("failed to list reports", zap.Error(err))
		s.errorResponse(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	dashboard, err := s.dashboard(r.Context(), filterFromQuery(r))
	if err != nil {
		s.logger.Error("failed to build dashboard", zap.Error(err))
		s.errorResponse(w, "failed to aggregate reports", http.StatusInternalServerError)
		return
	}

	total := len(reports)
	if total > recentReportLimit {
		reports = reports[total-recentReportLimit:]
	}

	s.jsonResponse(w, reportsResponse{
		Success:   true,
		Reports:   reports,
		Total:     total,
		Dashboard: dashboard,
	})
}

func (s *Server) handleReportsSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/reports/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}

	if rest == "filtered" {
		s.handleReportsFiltered(w, r)
		return
	}

	if id, ok := strings.CutSuffix(rest, "/data"); ok {
		s.handleReportData(w, r, id)
		return
	}

	if strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	s.handleReportDelete(w, r, rest)
}

func (s *Server) handleReportsFiltered(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := filterFromQuery(r)
	dashboard, err := s.dashboard(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to build dashboard", zap.Error(err))
		s.errorResponse(w, "failed to aggregate reports", http.StatusInternalServerError)
		return
	}

	s.jsonResponse(w, struct {
		Success bool              `json:"success"`
		Filters map[string]string `json:"filters"`
		models.Dashboard
	}{
		Success: true,
		Filters: map[string]string{
			"start_date": filter.StartDate,
			"end_date":   filter.EndDate,
			"country":    filter.Country,
		},
		Dashboard: dashboard,
	})
}

func (s *Server) handleReportData(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rep, err := s.store.GetReport(r.Context(), id)
	if errors.Is(err, storage.ErrReportNotFound) {
		s.errorResponse(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to get report", zap.Error(err))
		s.errorResponse(w, "failed to get report", http.StatusInternalServerError)
		return
	}

	dashboard, err := s.dashboard(r.Context(), filterFromQuery(r))
	if err != nil {
		s.logger.Error("failed to build dashboard", zap.Error(err))
		s.errorResponse(w, "failed to aggregate reports", http.StatusInternalServerError)
		return
	}

	s.jsonResponse(w, map[string]any{
		"success":     true,
		"report_info": rep,
		"data":        dashboard,
	})
}

func (s *Server) handleReportDelete(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodDelete {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rep, err := s.store.GetReport(r.Context(), id)
	if errors.Is(err, storage.ErrReportNotFound) {
		s.errorResponse(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to get report", zap.Error(err))
		s.errorResponse(w, "failed to delete report", http.StatusInternalServerError)
		return
	}

	if err := s.store.DeleteReport(r.Context(), id); err != nil {
		s.logger.Error("failed to delete report", zap.Error(err))
		s.errorResponse(w, "failed to delete report", http.StatusInternalServerError)
		return
	}

	if rep.FilePath != "" {
		if err := os.Remove(rep.FilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove upload file",
				zap.String("path", rep.FilePath),
				zap.Error(err),
			)
		}
	}

	s.cache.Invalidate(r.Context())
	if s.metrics != nil {
		if n, err := s.store.CountReports(r.Context()); err == nil {
			s.metrics.SetActiveReports(n)
		}
	}

	s.logger.Info("report deleted", zap.String("report_id", id))
	s.jsonResponse(w, map[string]any{
		"success": true,
		"message": "Report deleted successfully",
	})
}

func (s *Server) handleClearReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reports, err := s.store.ListReports(r.Context())
	if err != nil {
		s.logger.Error("failed to list reports", zap.Error(err))
		s.errorResponse(w, "failed to clear reports", http.StatusInternalServerError)
		return
	}

	for _, rep := range reports {
		if rep.FilePath == "" {
			continue
		}
		if err := os.Remove(rep.FilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove upload file",
				zap.String("path", rep.FilePath),
				zap.Error(err),
			)
		}
	}

	if err := s.store.ClearReports(r.Context()); err != nil {
		s.logger.Error("failed to clear reports", zap.Error(err))
		s.errorResponse(w, "failed to clear reports", http.StatusInternalServerError)
		return
	}

	s.cache.Invalidate(r.Context())
	if s.metrics != nil {
		s.metrics.SetActiveReports(0)
	}

	s.logger.Info("all reports cleared", zap.Int("count", len(reports)))
	s.jsonResponse(w, map[string]any{
		"success":       true,
		"message":       "All reports cleared successfully",
		"cleared_count": len(reports),
	})
}

// ---- Filter dimensions ----

func (s *Server) handleAvailableDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.store.ListRows(r.Context())
	if err != nil {
		s.logger.Error("failed to load rows", zap.Error(err))
		s.errorResponse(w, "failed to load rows", http.StatusInternalServerError)
		return
	}

	dates := report.AvailableDates(rows)
	s.jsonResponse(w, map[string]any{
		"dates": dates,
		"count": len(dates),
	})
}

func (s *Server) handleAvailableCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.store.ListRows(r.Context())
	if err != nil {
		s.logger.Error("failed to load rows", zap.Error(err))
		s.errorResponse(w, "failed to load rows", http.StatusInternalServerError)
		return
	}

	countries := report.AvailableCountries(rows)
	s.jsonResponse(w, map[string]any{
		"countries": countries,
		"count":     len(countries),
	})
}

// ---- Creatives ----

func (s *Server) handleCreatives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.store.ListRows(r.Context())
	if err != nil {
		s.logger.Error("failed to load rows", zap.Error(err))
		s.errorResponse(w, "failed to load rows", http.StatusInternalServerError)
		return
	}

	creatives := report.CreativeSummaries(report.RowFilter{}.Apply(rows))

	q := r.URL.Query()
	page := intParam(q.Get("page"), 1)
	perPage := intParam(q.Get("per_page"), 30)
	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = "spend"
	}
	sortOrder := strings.ToLower(q.Get("sort_order"))
	if sortOrder == "" {
		sortOrder = "desc"
	}

	sortCreatives(creatives, sortBy, sortOrder == "desc")

	total := len(creatives)
	totalPages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	s.jsonResponse(w, map[string]any{
		"success":   true,
		"creatives": creatives[start:end],
		"pagination": map[string]any{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": totalPages,
			"has_next":    end < total,
			"has_prev":    page > 1,
		},
		"sorting": map[string]string{
			"sort_by":    sortBy,
			"sort_order": sortOrder,
		},
	})
}

func sortCreatives(creatives []models.CreativeSummary, sortBy string, desc bool) {
	less := func(i, j int) bool { return creatives[i].Spend < creatives[j].Spend }
	switch sortBy {
	case "installs":
		less = func(i, j int) bool { return creatives[i].Installs < creatives[j].Installs }
	case "actions":
		less = func(i, j int) bool { return creatives[i].Actions < creatives[j].Actions }
	case "creative_name":
		less = func(i, j int) bool { return creatives[i].CreativeName < creatives[j].CreativeName }
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(creatives, less)
}

func intParam(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ---- Analytics ----

func (s *Server) handleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reports, err := s.store.ListReports(r.Context())
	if err != nil {
		s.logger.Error("failed to list reports", zap.Error(err))
		s.errorResponse(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	if len(reports) == 0 {
		s.jsonResponse(w, map[string]any{
			"success": true,
			"overview": map[string]any{
				"total_reports": 0,
				"total_spend":   0,
				"accounts":      []string{},
			},
		})
		return
	}

	rows, err := s.store.ListRows(r.Context())
	if err != nil {
		s.logger.Error("failed to load rows", zap.Error(err))
		s.errorResponse(w, "failed to load rows", http.StatusInternalServerError)
		return
	}
	totals := report.Sum(rows)

	accountSet := make(map[string]struct{})
	latest := reports[0].UploadedAt
	for _, rep := range reports {
		if rep.Account != "" {
			accountSet[rep.Account] = struct{}{}
		}
		if rep.UploadedAt.After(latest) {
			latest = rep.UploadedAt
		}
	}
	accounts := make([]string, 0, len(accountSet))
	for a := range accountSet {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)

	s.jsonResponse(w, map[string]any{
		"success": true,
		"overview": map[string]any{
			"total_reports": len(reports),
			"total_spend":   totals.Spend,
			"accounts":      accounts,
			"latest_upload": latest,
		},
	})
}

// ---- App catalog ----

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.jsonResponse(w, map[string]any{"apps": s.catalog.List()})
}

func (s *Server) handleAppsSubpath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/apps/")
	switch {
	case rest == "":
		http.NotFound(w, r)

	case rest == "categories":
		s.jsonResponse(w, map[string]any{"categories": s.catalog.Categories()})

	case rest == "statistics":
		s.jsonResponse(w, s.catalog.Statistics())

	case strings.HasPrefix(rest, "search/"):
		query := strings.TrimPrefix(rest, "search/")
		s.jsonResponse(w, map[string]any{"results": s.catalog.Search(query)})

	case !strings.Contains(rest, "/"):
		app, ok := s.catalog.Get(rest)
		if !ok {
			s.errorResponse(w, "app not found", http.StatusNotFound)
			return
		}
		s.jsonResponse(w, app)

	default:
		http.NotFound(w, r)
	}
}

// ---- Creative naming ----

type namingEncodeRequest struct {
	Names []string `json:"names"`
	Style int      `json:"style"`
}

type namingDecodeRequest struct {
	Codes []string `json:"codes"`
}

func (s *Server) handleNamingEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req namingEncodeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(req.Names) == 0 {
		s.errorResponse(w, "names is required", http.StatusBadRequest)
		return
	}
	if req.Style == 0 {
		req.Style = naming.StyleLower
	}

	results := make([]map[string]any, 0, len(req.Names))
	for _, name := range req.Names {
		res, err := s.namer.Encode(name, req.Style)
		if err != nil {
			results = append(results, map[string]any{
				"original": name,
				"error":    err.Error(),
			})
			continue
		}
		results = append(results, map[string]any{
			"original": res.Original,
			"external": res.External,
			"internal": res.Internal,
			"style":    res.Style,
		})
	}
	s.jsonResponse(w, map[string]any{"results": results})
}

func (s *Server) handleNamingDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req namingDecodeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(req.Codes) == 0 {
		s.errorResponse(w, "codes is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(req.Codes))
	for _, code := range req.Codes {
		res, err := s.namer.Decode(code)
		if err != nil {
			results = append(results, map[string]any{
				"code":    code,
				"success": false,
				"error":   err.Error(),
			})
			continue
		}
		results = append(results, map[string]any{
			"code":         res.Code,
			"success":      true,
			"decoded_name": res.DecodedName,
			"type":         res.Type,
			"parts_found":  res.PartsFound,
		})
	}
	s.jsonResponse(w, map[string]any{"results": results})
}

func (s *Server) handleNamingDictionary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	dict := s.namer.Dictionary()
	s.jsonResponse(w, map[string]any{
		"dictionary": dict,
		"count":      len(dict),
	})
}
