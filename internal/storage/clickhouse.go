package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/adsight/moloco-crm/internal/models"
)

// RowArchive writes raw report rows to ClickHouse for long-term analytical
// queries. The archive is write-only from the application's point of view;
// dashboards read from the primary store.
type RowArchive struct {
	conn driver.Conn
}

func NewRowArchive(conn driver.Conn) *RowArchive {
	return &RowArchive{conn: conn}
}

// EnsureSchema creates the archive table when it does not exist yet.
func (a *RowArchive) EnsureSchema(ctx context.Context) error {
	err := a.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS report_rows (
			report_id String,
			uploaded_at DateTime,
			campaign String,
			creative String,
			exchange String,
			app_title String,
			app_bundle String,
			app_id String,
			os String,
			country String,
			day String,
			spend Float64,
			impressions Int64,
			clicks Int64,
			installs Int64,
			actions Int64,
			purchases Int64,
			revenue Float64
		) ENGINE = MergeTree()
		ORDER BY (uploaded_at, report_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure archive schema: %w", err)
	}
	return nil
}

// Archive appends one upload's rows as a single batch.
func (a *RowArchive) Archive(ctx context.Context, reportID string, uploadedAt time.Time, rows []models.Row) error {
	if len(rows) == 0 {
		return nil
	}
	batch, err := a.conn.PrepareBatch(ctx, `INSERT INTO report_rows`)
	if err != nil {
		return fmt.Errorf("failed to prepare archive batch: %w", err)
	}
	for _, r := range rows {
		if err := batch.Append(
			reportID, uploadedAt,
			r.Campaign, r.Creative, r.Exchange,
			r.AppTitle, r.AppBundle, r.AppID, r.OS, r.Country, r.Date,
			r.Spend, r.Impressions, r.Clicks, r.Installs, r.Actions, r.Purchases, r.Revenue,
		); err != nil {
			return fmt.Errorf("failed to append archive row: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send archive batch: %w", err)
	}
	return nil
}
