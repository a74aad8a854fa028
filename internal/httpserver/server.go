package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adsight/moloco-crm/internal/appcatalog"
	"github.com/adsight/moloco-crm/internal/cache"
	"github.com/adsight/moloco-crm/internal/config"
	"github.com/adsight/moloco-crm/internal/database"
	"github.com/adsight/moloco-crm/internal/geo"
	"github.com/adsight/moloco-crm/internal/ingest"
	"github.com/adsight/moloco-crm/internal/metrics"
	"github.com/adsight/moloco-crm/internal/middleware"
	"github.com/adsight/moloco-crm/internal/models"
	"github.com/adsight/moloco-crm/internal/naming"
	"github.com/adsight/moloco-crm/internal/report"
	"github.com/adsight/moloco-crm/internal/storage"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	DB         *database.PostgresDB
	Redis      *database.RedisDB
	ClickHouse *database.ClickHouseDB
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Server wraps the HTTP handlers and their backing services.
type Server struct {
	store   storage.ReportStore
	archive *storage.RowArchive
	cache   cache.DashboardCache
	catalog *appcatalog.Catalog
	namer   *naming.Namer
	geo     geo.Provider
	logger  *zap.Logger
	config  *config.Config
	metrics *metrics.Metrics
}

// NewServer constructs a new http.Handler with all routes registered.
func NewServer(deps *Dependencies) http.Handler {
	var store storage.ReportStore
	if deps.DB != nil {
		store = storage.NewPostgresReportStore(deps.DB.Pool)
	} else {
		store = storage.NewInMemoryReportStore()
	}

	var dashCache cache.DashboardCache
	if deps.Redis != nil {
		dashCache = cache.NewRedisCache(deps.Redis.Client, deps.Config.Cache.TTL)
	} else {
		dashCache = cache.NewMemoryCache(deps.Config.Cache.TTL)
	}

	var archive *storage.RowArchive
	if deps.ClickHouse != nil {
		archive = storage.NewRowArchive(deps.ClickHouse.Conn)
	}

	var geoProvider geo.Provider
	if deps.Config.Geo.Enabled {
		provider, err := geo.NewMaxMindProvider(deps.Config.Geo.DatabasePath)
		if err != nil {
			deps.Logger.Warn("failed to initialize geo provider, uploads will not be tagged", zap.Error(err))
		} else {
			geoProvider = provider
		}
	}

	s := &Server{
		store:   store,
		archive: archive,
		cache:   dashCache,
		catalog: appcatalog.NewCatalog(),
		namer:   naming.NewNamer(time.Now().UnixNano()),
		geo:     geoProvider,
		logger:  deps.Logger,
		config:  deps.Config,
		metrics: deps.Metrics,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// CSV upload
	mux.HandleFunc("/upload", s.handleUpload)

	// Reports and aggregated data
	mux.HandleFunc("/reports", s.handleReports)
	mux.HandleFunc("/reports/", s.handleReportsSubpath)
	mux.HandleFunc("/clear-reports", s.handleClearReports)

	// Filter dimensions
	mux.HandleFunc("/available-dates", s.handleAvailableDates)
	mux.HandleFunc("/available-countries", s.handleAvailableCountries)

	// Creatives
	mux.HandleFunc("/creatives", s.handleCreatives)

	// Analytics
	mux.HandleFunc("/analytics/overview", s.handleAnalyticsOverview)

	// App catalog
	mux.HandleFunc("/apps", s.handleApps)
	mux.HandleFunc("/apps/", s.handleAppsSubpath)

	// Creative naming
	mux.HandleFunc("/naming/encode", s.handleNamingEncode)
	mux.HandleFunc("/naming/decode", s.handleNamingDecode)
	mux.HandleFunc("/naming/dictionary", s.handleNamingDictionary)

	return mux
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ---- Upload ----

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Upload.MaxSizeBytes)
	if err := r.ParseMultipartForm(s.config.Upload.MaxSizeBytes); err != nil {
		s.errorResponse(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, "file field missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.errorResponse(w, "only CSV files are allowed", http.StatusBadRequest)
		return
	}

	account := strings.TrimSpace(r.FormValue("account"))
	if account == "" {
		s.errorResponse(w, "account is required", http.StatusBadRequest)
		return
	}

	parseStart := time.Now()
	parsed, err := ingest.Parse(file)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordUpload(string(models.CSVTypeUnknown), "error", 0, 0)
		}
		s.errorResponse(w, "failed to process CSV: "+err.Error(), http.StatusBadRequest)
		return
	}
	parseTime := time.Since(parseStart)

	csvType := parsed.Type
	if override, ok := ingest.NormalizeFileType(r.FormValue("fileType")); ok {
		csvType = override
	}

	rows := parsed.Rows
	// Daily inventory exports often carry the date only in the filename.
	if csvType == models.CSVTypeInventoryDaily {
		if date, ok := ingest.DateFromFilename(header.Filename); ok {
			for i := range rows {
				if rows[i].Date == "" {
					rows[i].Date = date
				}
			}
		}
	}

	filePath, err := s.saveUploadFile(file, account, header.Filename)
	if err != nil {
		s.logger.Error("failed to persist upload file", zap.Error(err))
		s.errorResponse(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	rep := &models.Report{
		ID:         uuid.NewString(),
		Account:    account,
		Filename:   header.Filename,
		CSVType:    csvType,
		UploadedAt: time.Now().UTC(),
		RowCount:   len(rows),
		Columns:    parsed.Columns,
		FilePath:   filePath,
	}

	if s.geo != nil {
		if country, err := s.geo.CountryCode(middleware.ClientIP(r)); err == nil {
			rep.UploaderCountry = country
		}
	}

	if err := s.store.SaveReport(r.Context(), rep, rows); err != nil {
		s.logger.Error("failed to save report", zap.Error(err))
		s.errorResponse(w, "failed to save report", http.StatusInternalServerError)
		return
	}

	s.cache.Invalidate(r.Context())
	if s.metrics != nil {
		s.metrics.RecordUpload(string(csvType), "ok", len(rows), parseTime)
		if n, err := s.store.CountReports(r.Context()); err == nil {
			s.metrics.SetActiveReports(n)
		}
	}

	if s.archive != nil {
		go s.archiveRows(rep.ID, rep.UploadedAt, rows)
	}

	s.logger.Info("report uploaded",
		zap.String("report_id", rep.ID),
		zap.String("account", account),
		zap.String("csv_type", string(csvType)),
		zap.Int("rows", len(rows)),
	)

	s.jsonResponse(w, map[string]any{
		"success":        true,
		"message":        "File uploaded and processed successfully",
		"report_id":      rep.ID,
		"csv_type":       string(csvType),
		"rows_processed": len(rows),
	})
}

func (s *Server) saveUploadFile(file io.ReadSeeker, account, filename string) (string, error) {
	if err := os.MkdirAll(s.config.Upload.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	safeName := fmt.Sprintf("%s_%s_%s", account, time.Now().Format("20060102_150405"), filepath.Base(filename))
	destPath := filepath.Join(s.config.Upload.Dir, safeName)

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return destPath, nil
}

func (s *Server) archiveRows(reportID string, uploadedAt time.Time, rows []models.Row) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.archive.Archive(ctx, reportID, uploadedAt, rows); err != nil {
		s.logger.Error("failed to archive rows",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordArchiveError()
		}
	}
}

// ---- Dashboard aggregation with caching ----

func (s *Server) dashboard(ctx context.Context, filter report.RowFilter) (models.Dashboard, error) {
	key := filter.Key()
	if data, ok := s.cache.Get(ctx, key); ok {
		var d models.Dashboard
		if err := json.Unmarshal(data, &d); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheHit(true)
			}
			return d, nil
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheHit(false)
	}

	rows, err := s.store.ListRows(ctx)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to load rows: %w", err)
	}

	start := time.Now()
	d := report.BuildDashboard(rows, filter)
	if s.metrics != nil {
		s.metrics.RecordAggregation(time.Since(start))
	}

	if data, err := json.Marshal(d); err == nil {
		s.cache.Set(ctx, key, data)
	}
	return d, nil
}

func filterFromQuery(r *http.Request) report.RowFilter {
	q := r.URL.Query()
	return report.RowFilter{
		StartDate: strings.TrimSpace(q.Get("start_date")),
		EndDate:   strings.TrimSpace(q.Get("end_date")),
		Country:   strings.TrimSpace(q.Get("country")),
	}
}

// ---- Helper Methods ----

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
