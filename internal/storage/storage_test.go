package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adsight/moloco-crm/internal/models"
)

func testReport(id, account string) *models.Report {
	return &models.Report{
		ID:         id,
		Account:    account,
		Filename:   "report.csv",
		CSVType:    models.CSVTypeReports,
		UploadedAt: time.Now().UTC(),
	}
}

func TestInMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryReportStore()

	rows := []models.Row{{Campaign: "A", Spend: 10}}
	if err := s.SaveReport(ctx, testReport("r1", "acct"), rows); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := s.GetReport(ctx, "r1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Account != "acct" {
		t.Errorf("account = %q", got.Account)
	}

	if _, err := s.GetReport(ctx, "missing"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound", err)
	}
}

func TestInMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryReportStore()

	for _, id := range []string{"r1", "r2", "r3"} {
		if err := s.SaveReport(ctx, testReport(id, "a"), nil); err != nil {
			t.Fatalf("SaveReport(%s): %v", id, err)
		}
	}

	reports, err := s.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i, want := range []string{"r1", "r2", "r3"} {
		if reports[i].ID != want {
			t.Errorf("reports[%d] = %q, want %q (upload order)", i, reports[i].ID, want)
		}
	}
}

func TestInMemoryStoreListRowsAcrossReports(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryReportStore()

	s.SaveReport(ctx, testReport("r1", "a"), []models.Row{{Campaign: "A"}, {Campaign: "B"}})
	s.SaveReport(ctx, testReport("r2", "a"), []models.Row{{Campaign: "C"}})

	rows, err := s.ListRows(ctx)
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[2].Campaign != "C" {
		t.Errorf("rows not in upload order: %+v", rows)
	}
}

func TestInMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryReportStore()

	s.SaveReport(ctx, testReport("r1", "a"), []models.Row{{Campaign: "A"}})
	s.SaveReport(ctx, testReport("r2", "a"), []models.Row{{Campaign: "B"}})

	if err := s.DeleteReport(ctx, "r1"); err != nil {
		t.Fatalf("DeleteReport: %v", err)
	}
	if err := s.DeleteReport(ctx, "r1"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("second delete err = %v, want ErrReportNotFound", err)
	}

	rows, _ := s.ListRows(ctx)
	if len(rows) != 1 || rows[0].Campaign != "B" {
		t.Errorf("rows after delete = %+v, want only B", rows)
	}
	if n, _ := s.CountReports(ctx); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestInMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryReportStore()

	s.SaveReport(ctx, testReport("r1", "a"), []models.Row{{Campaign: "A"}})
	if err := s.ClearReports(ctx); err != nil {
		t.Fatalf("ClearReports: %v", err)
	}

	reports, _ := s.ListReports(ctx)
	if len(reports) != 0 {
		t.Errorf("reports after clear = %d, want 0", len(reports))
	}
	rows, _ := s.ListRows(ctx)
	if len(rows) != 0 {
		t.Errorf("rows after clear = %d, want 0", len(rows))
	}
}

func TestInMemoryStoreSaveCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryReportStore()

	rep := testReport("r1", "a")
	rows := []models.Row{{Campaign: "A"}}
	s.SaveReport(ctx, rep, rows)

	rep.Account = "mutated"
	rows[0].Campaign = "mutated"

	got, _ := s.GetReport(ctx, "r1")
	if got.Account != "a" {
		t.Errorf("stored report aliases caller's struct")
	}
	stored, _ := s.ListRows(ctx)
	if stored[0].Campaign != "A" {
		t.Errorf("stored rows alias caller's slice")
	}
}
