package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/clock"
	"github.com/kmurdhar/PrinterManagementSystem/internal/migration"
	"github.com/kmurdhar/PrinterManagementSystem/internal/printjob/domain"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/pagination"
)

var testNow = time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	if err := migration.RunMigrations(sqlDB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	return NewService(ServiceParam{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed{At: testNow},
	})
}

func mustIngest(t *testing.T, svc domain.Service, req domain.IngestRequest) *domain.PrintJob {
	t.Helper()
	record, err := svc.Ingest(context.Background(), req)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	return record
}

func TestIngestAssignsIdentityAndDefaults(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	record := mustIngest(t, svc, domain.IngestRequest{
		UserName:    "alice",
		MachineName: "desk-01",
		PrinterName: "HP LaserJet",
	})

	if record.ID == 0 {
		t.Fatal("expected assigned identity")
	}
	if record.Status != domain.StatusCompleted {
		t.Fatalf("expected default status %q, got %q", domain.StatusCompleted, record.Status)
	}
	if record.PageCount != 0 || record.FileSize != 0 {
		t.Fatalf("expected zero defaults, got pages=%d size=%d", record.PageCount, record.FileSize)
	}
	if !record.PrintTime.Equal(testNow) {
		t.Fatalf("expected printTime defaulted to ingestion time, got %v", record.PrintTime)
	}
	if !record.CreatedAt.Equal(testNow) {
		t.Fatalf("expected createdAt %v, got %v", testNow, record.CreatedAt)
	}
}

func TestIngestValidation(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	cases := []struct {
		name string
		req  domain.IngestRequest
		want error
	}{
		{"missing user", domain.IngestRequest{MachineName: "m", PrinterName: "p"}, domain.ErrInvalidUserName},
		{"blank user", domain.IngestRequest{UserName: "   ", MachineName: "m", PrinterName: "p"}, domain.ErrInvalidUserName},
		{"missing machine", domain.IngestRequest{UserName: "u", PrinterName: "p"}, domain.ErrInvalidMachineName},
		{"missing printer", domain.IngestRequest{UserName: "u", MachineName: "m"}, domain.ErrInvalidPrinterName},
		{"negative pages", domain.IngestRequest{UserName: "u", MachineName: "m", PrinterName: "p", PageCount: -1}, domain.ErrInvalidPageCount},
		{"negative size", domain.IngestRequest{UserName: "u", MachineName: "m", PrinterName: "p", FileSize: -1}, domain.ErrInvalidFileSize},
	}
	for _, tc := range cases {
		if _, err := svc.Ingest(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// Nothing may be persisted by failed validation.
	resp, err := svc.List(context.Background(), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.PageInfo.Total != 0 {
		t.Fatalf("expected empty store after rejected reports, total=%d", resp.PageInfo.Total)
	}
}

func TestIngestAcceptsDuplicateJobIDs(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	first := mustIngest(t, svc, domain.IngestRequest{
		JobID: "cups-7", UserName: "alice", MachineName: "desk-01", PrinterName: "P1",
	})
	second := mustIngest(t, svc, domain.IngestRequest{
		JobID: "cups-7", UserName: "alice", MachineName: "desk-01", PrinterName: "P1",
	})

	if first.ID == second.ID {
		t.Fatal("duplicate reports must become separate records")
	}

	resp, err := svc.List(context.Background(), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.PageInfo.Total != 2 {
		t.Fatalf("expected both duplicates stored, total=%d", resp.PageInfo.Total)
	}
}

func TestListOrderingAndTotals(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	t1 := testNow.Add(-time.Hour)
	t2 := testNow

	a := mustIngest(t, svc, domain.IngestRequest{
		UserName: "alice", MachineName: "desk-01", PrinterName: "P1", PageCount: 5, PrintTime: &t1,
	})
	b := mustIngest(t, svc, domain.IngestRequest{
		UserName: "bob", MachineName: "desk-02", PrinterName: "P1", PageCount: 3, PrintTime: &t2,
	})

	resp, err := svc.List(context.Background(), domain.ListRequest{
		Pagination: pagination.Pagination{Limit: 10},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.PageInfo.Total != 2 {
		t.Fatalf("expected total 2, got %d", resp.PageInfo.Total)
	}
	if len(resp.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(resp.Jobs))
	}
	if resp.Jobs[0].ID != b.ID || resp.Jobs[1].ID != a.ID {
		t.Fatalf("expected [B, A] by print time desc, got [%v, %v]", resp.Jobs[0].ID, resp.Jobs[1].ID)
	}
}

func TestListUserSubstringCaseInsensitive(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	a := mustIngest(t, svc, domain.IngestRequest{
		UserName: "Alice", MachineName: "desk-01", PrinterName: "P1",
	})
	mustIngest(t, svc, domain.IngestRequest{
		UserName: "bob", MachineName: "desk-02", PrinterName: "P1",
	})

	resp, err := svc.List(context.Background(), domain.ListRequest{
		Filter: domain.Filter{UserContains: "ali"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].ID != a.ID {
		t.Fatalf("expected only alice's job, got %d jobs", len(resp.Jobs))
	}
}

func TestListTextSearchMatchesDocumentOrUser(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	byDoc := mustIngest(t, svc, domain.IngestRequest{
		UserName: "carol", MachineName: "m", PrinterName: "P1", DocumentName: "Quarterly Report.pdf",
	})
	byUser := mustIngest(t, svc, domain.IngestRequest{
		UserName: "reporter", MachineName: "m", PrinterName: "P1", DocumentName: "notes.txt",
	})
	mustIngest(t, svc, domain.IngestRequest{
		UserName: "dave", MachineName: "m", PrinterName: "P1", DocumentName: "invoice.pdf",
	})

	resp, err := svc.List(context.Background(), domain.ListRequest{
		Filter: domain.Filter{TextSearch: "report"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Jobs) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Jobs))
	}
	found := map[int64]bool{}
	for _, job := range resp.Jobs {
		found[int64(job.ID)] = true
	}
	if !found[int64(byDoc.ID)] || !found[int64(byUser.ID)] {
		t.Fatal("expected matches on document name and user name")
	}
}

func TestListDateRangeInclusive(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	early := testNow.Add(-48 * time.Hour)
	late := testNow

	old := mustIngest(t, svc, domain.IngestRequest{
		UserName: "alice", MachineName: "m", PrinterName: "P1", PrintTime: &early,
	})
	mustIngest(t, svc, domain.IngestRequest{
		UserName: "bob", MachineName: "m", PrinterName: "P1", PrintTime: &late,
	})

	from := early
	to := early
	resp, err := svc.List(context.Background(), domain.ListRequest{
		Filter: domain.Filter{From: &from, To: &to},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].ID != old.ID {
		t.Fatalf("expected only the early job inside the inclusive bounds, got %d jobs", len(resp.Jobs))
	}
}

func TestPaginationCoversEveryRecordOnce(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	const records = 12
	for i := 0; i < records; i++ {
		printTime := testNow.Add(time.Duration(i) * time.Minute)
		mustIngest(t, svc, domain.IngestRequest{
			UserName:    fmt.Sprintf("user-%02d", i),
			MachineName: "m",
			PrinterName: "P1",
			PrintTime:   &printTime,
		})
	}

	seen := map[int64]bool{}
	var previous *domain.PrintJob
	for page := 1; ; page++ {
		resp, err := svc.List(context.Background(), domain.ListRequest{
			Pagination: pagination.Pagination{Page: page, Limit: 5},
		})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if resp.PageInfo.Total != records {
			t.Fatalf("expected total %d, got %d", records, resp.PageInfo.Total)
		}
		if len(resp.Jobs) > 5 {
			t.Fatalf("page %d exceeds limit: %d", page, len(resp.Jobs))
		}
		for i := range resp.Jobs {
			job := resp.Jobs[i]
			if seen[int64(job.ID)] {
				t.Fatalf("record %v returned twice", job.ID)
			}
			seen[int64(job.ID)] = true
			if previous != nil && job.PrintTime.After(previous.PrintTime) {
				t.Fatal("records not in descending print-time order across pages")
			}
			previous = &resp.Jobs[i]
		}
		if page >= resp.PageInfo.Pages {
			break
		}
	}
	if len(seen) != records {
		t.Fatalf("expected %d distinct records across pages, got %d", records, len(seen))
	}
}

func TestListClampsInvalidPagination(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	mustIngest(t, svc, domain.IngestRequest{
		UserName: "alice", MachineName: "m", PrinterName: "P1",
	})

	resp, err := svc.List(context.Background(), domain.ListRequest{
		Pagination: pagination.Pagination{Page: -1, Limit: -10},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.PageInfo.Page != 1 || resp.PageInfo.Limit != 50 {
		t.Fatalf("expected clamped page=1 limit=50, got page=%d limit=%d",
			resp.PageInfo.Page, resp.PageInfo.Limit)
	}
}

func TestListNoMatchesIsNotAnError(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	resp, err := svc.List(context.Background(), domain.ListRequest{
		Filter: domain.Filter{UserContains: "nobody"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Jobs) != 0 || resp.PageInfo.Total != 0 || resp.PageInfo.Pages != 0 {
		t.Fatalf("expected empty page with zero totals, got %+v", resp.PageInfo)
	}
}

func TestListIsReadIdempotent(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	for i := 0; i < 3; i++ {
		printTime := testNow.Add(time.Duration(i) * time.Minute)
		mustIngest(t, svc, domain.IngestRequest{
			UserName: "alice", MachineName: "m", PrinterName: "P1", PrintTime: &printTime,
		})
	}

	req := domain.ListRequest{Pagination: pagination.Pagination{Limit: 10}}
	first, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	second, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first.Jobs) != len(second.Jobs) {
		t.Fatalf("repeated query changed size: %d vs %d", len(first.Jobs), len(second.Jobs))
	}
	for i := range first.Jobs {
		if first.Jobs[i].ID != second.Jobs[i].ID {
			t.Fatalf("repeated query changed order at index %d", i)
		}
	}
}
