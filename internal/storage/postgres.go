package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adsight/moloco-crm/internal/models"
)

// PostgresReportStore persists reports and their rows in Postgres so uploads
// survive restarts.
type PostgresReportStore struct {
	pool *pgxpool.Pool
}

func NewPostgresReportStore(pool *pgxpool.Pool) *PostgresReportStore {
	return &PostgresReportStore{pool: pool}
}

// EnsureSchema creates the report tables when they do not exist yet.
func (s *PostgresReportStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS moloco_reports (
			id TEXT PRIMARY KEY,
			account TEXT NOT NULL DEFAULT '',
			filename TEXT NOT NULL,
			csv_type TEXT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL,
			row_count INTEGER NOT NULL,
			columns TEXT[] NOT NULL DEFAULT '{}',
			uploader_country TEXT NOT NULL DEFAULT '',
			file_path TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS moloco_rows (
			report_id TEXT NOT NULL REFERENCES moloco_reports(id) ON DELETE CASCADE,
			seq BIGSERIAL,
			campaign TEXT NOT NULL DEFAULT '',
			creative TEXT NOT NULL DEFAULT '',
			exchange TEXT NOT NULL DEFAULT '',
			app_title TEXT NOT NULL DEFAULT '',
			app_bundle TEXT NOT NULL DEFAULT '',
			app_id TEXT NOT NULL DEFAULT '',
			os TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			day TEXT NOT NULL DEFAULT '',
			spend DOUBLE PRECISION NOT NULL DEFAULT 0,
			impressions BIGINT NOT NULL DEFAULT 0,
			clicks BIGINT NOT NULL DEFAULT 0,
			installs BIGINT NOT NULL DEFAULT 0,
			actions BIGINT NOT NULL DEFAULT 0,
			purchases BIGINT NOT NULL DEFAULT 0,
			revenue DOUBLE PRECISION NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_moloco_rows_report ON moloco_rows(report_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure report schema: %w", err)
	}
	return nil
}

func (s *PostgresReportStore) SaveReport(ctx context.Context, report *models.Report, rows []models.Row) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO moloco_reports (id, account, filename, csv_type, uploaded_at, row_count, columns, uploader_country, file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			account = EXCLUDED.account,
			filename = EXCLUDED.filename,
			csv_type = EXCLUDED.csv_type,
			uploaded_at = EXCLUDED.uploaded_at,
			row_count = EXCLUDED.row_count,
			columns = EXCLUDED.columns,
			uploader_country = EXCLUDED.uploader_country,
			file_path = EXCLUDED.file_path
	`, report.ID, report.Account, report.Filename, string(report.CSVType), report.UploadedAt,
		report.RowCount, report.Columns, report.UploaderCountry, report.FilePath)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM moloco_rows WHERE report_id = $1`, report.ID)
	if err != nil {
		return fmt.Errorf("failed to replace report rows: %w", err)
	}

	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"moloco_rows"},
			[]string{"report_id", "campaign", "creative", "exchange", "app_title", "app_bundle",
				"app_id", "os", "country", "day", "spend", "impressions", "clicks",
				"installs", "actions", "purchases", "revenue"},
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				r := rows[i]
				return []any{report.ID, r.Campaign, r.Creative, r.Exchange, r.AppTitle, r.AppBundle,
					r.AppID, r.OS, r.Country, r.Date, r.Spend, r.Impressions, r.Clicks,
					r.Installs, r.Actions, r.Purchases, r.Revenue}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to copy report rows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func (s *PostgresReportStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var r models.Report
	var csvType string
	err := s.pool.QueryRow(ctx, `
		SELECT id, account, filename, csv_type, uploaded_at, row_count, columns, uploader_country, file_path
		FROM moloco_reports WHERE id = $1
	`, id).Scan(&r.ID, &r.Account, &r.Filename, &csvType, &r.UploadedAt, &r.RowCount,
		&r.Columns, &r.UploaderCountry, &r.FilePath)
	if err == pgx.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	r.CSVType = models.CSVType(csvType)
	return &r, nil
}

func (s *PostgresReportStore) ListReports(ctx context.Context) ([]*models.Report, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, account, filename, csv_type, uploaded_at, row_count, columns, uploader_country, file_path
		FROM moloco_reports ORDER BY uploaded_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	res := make([]*models.Report, 0)
	for rows.Next() {
		var r models.Report
		var csvType string
		if err := rows.Scan(&r.ID, &r.Account, &r.Filename, &csvType, &r.UploadedAt,
			&r.RowCount, &r.Columns, &r.UploaderCountry, &r.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.CSVType = models.CSVType(csvType)
		res = append(res, &r)
	}
	return res, rows.Err()
}

func (s *PostgresReportStore) ListRows(ctx context.Context) ([]models.Row, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.campaign, d.creative, d.exchange, d.app_title, d.app_bundle, d.app_id,
		       d.os, d.country, d.day, d.spend, d.impressions, d.clicks,
		       d.installs, d.actions, d.purchases, d.revenue
		FROM moloco_rows d
		JOIN moloco_reports r ON r.id = d.report_id
		ORDER BY r.uploaded_at, r.id, d.seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	defer rows.Close()

	var res []models.Row
	for rows.Next() {
		var r models.Row
		if err := rows.Scan(&r.Campaign, &r.Creative, &r.Exchange, &r.AppTitle, &r.AppBundle,
			&r.AppID, &r.OS, &r.Country, &r.Date, &r.Spend, &r.Impressions, &r.Clicks,
			&r.Installs, &r.Actions, &r.Purchases, &r.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (s *PostgresReportStore) DeleteReport(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM moloco_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (s *PostgresReportStore) ClearReports(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM moloco_reports`); err != nil {
		return fmt.Errorf("failed to clear reports: %w", err)
	}
	return nil
}

func (s *PostgresReportStore) CountReports(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM moloco_reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}
