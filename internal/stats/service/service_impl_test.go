package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/config"
	"github.com/kmurdhar/PrinterManagementSystem/internal/migration"
	"github.com/kmurdhar/PrinterManagementSystem/internal/stats/domain"
)

var baseTime = time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

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

func newTestService(t *testing.T, conn *gorm.DB, cacheTTL time.Duration) domain.Service {
	t.Helper()
	cfg := config.Config{}
	cfg.Stats.CacheTTL = cacheTTL
	param := ServiceParam{
		DB:     conn,
		Log:    zap.NewNop(),
		Config: cfg,
	}
	if cacheTTL > 0 {
		param.Cache = NewStatsCache()
	}
	return NewService(param)
}

var jobSeq int64

func insertJob(t *testing.T, conn *gorm.DB, user, printer string, pages int, printTime time.Time) {
	t.Helper()
	jobSeq++
	err := conn.Exec(
		`INSERT INTO print_jobs (id, job_id, user_name, machine_name, printer_name, document_name,
		 page_count, print_time, status, file_size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		jobSeq, fmt.Sprintf("job-%d", jobSeq), user, "machine", printer, "doc.pdf",
		pages, printTime, "completed", 1024, printTime,
	).Error
	if err != nil {
		t.Fatalf("insert job: %v", err)
	}
}

func TestSummarizeTotalsAndBreakdowns(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn, 0)

	insertJob(t, conn, "alice", "P1", 5, baseTime)
	insertJob(t, conn, "bob", "P1", 3, baseTime.Add(time.Minute))

	resp, err := svc.Summarize(context.Background(), domain.StatsRequest{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if resp.TotalJobs != 2 || resp.TotalPages != 8 {
		t.Fatalf("expected totals 2/8, got %d/%d", resp.TotalJobs, resp.TotalPages)
	}
	if len(resp.TopUsers) != 2 {
		t.Fatalf("expected 2 user entries, got %d", len(resp.TopUsers))
	}
	if resp.TopUsers[0].UserName != "alice" || resp.TopUsers[0].PageCount != 5 {
		t.Fatalf("expected alice first by pages, got %+v", resp.TopUsers[0])
	}
	if len(resp.TopPrinters) != 1 {
		t.Fatalf("expected 1 printer entry, got %d", len(resp.TopPrinters))
	}
	p := resp.TopPrinters[0]
	if p.PrinterName != "P1" || p.JobCount != 2 || p.PageCount != 8 {
		t.Fatalf("expected P1 with 2 jobs and 8 pages, got %+v", p)
	}
}

func TestSummarizeEmptyStore(t *testing.T) {
	svc := newTestService(t, setupTestDB(t), 0)

	resp, err := svc.Summarize(context.Background(), domain.StatsRequest{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if resp.TotalJobs != 0 || resp.TotalPages != 0 {
		t.Fatalf("expected zero totals, got %d/%d", resp.TotalJobs, resp.TotalPages)
	}
	if resp.TopUsers == nil || len(resp.TopUsers) != 0 {
		t.Fatalf("expected empty user list, got %v", resp.TopUsers)
	}
	if resp.TopPrinters == nil || len(resp.TopPrinters) != 0 {
		t.Fatalf("expected empty printer list, got %v", resp.TopPrinters)
	}
}

func TestSummarizeTopTenCutoff(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn, 0)

	for i := 0; i < 12; i++ {
		insertJob(t, conn, fmt.Sprintf("user-%02d", i), fmt.Sprintf("printer-%02d", i),
			20-i, baseTime.Add(time.Duration(i)*time.Minute))
	}

	resp, err := svc.Summarize(context.Background(), domain.StatsRequest{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if resp.TotalJobs != 12 {
		t.Fatalf("expected 12 total jobs, got %d", resp.TotalJobs)
	}
	if len(resp.TopUsers) != 10 {
		t.Fatalf("expected top users capped at 10, got %d", len(resp.TopUsers))
	}
	if len(resp.TopPrinters) != 10 {
		t.Fatalf("expected top printers capped at 10, got %d", len(resp.TopPrinters))
	}
	// user-00 printed the most pages and must survive the cutoff.
	if resp.TopUsers[0].UserName != "user-00" || resp.TopUsers[0].PageCount != 20 {
		t.Fatalf("expected user-00 ranked first, got %+v", resp.TopUsers[0])
	}
}

func TestSummarizeUserRankingTiebreak(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn, 0)

	insertJob(t, conn, "zoe", "P1", 4, baseTime)
	insertJob(t, conn, "amy", "P2", 4, baseTime.Add(time.Minute))

	resp, err := svc.Summarize(context.Background(), domain.StatsRequest{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(resp.TopUsers) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.TopUsers))
	}
	if resp.TopUsers[0].UserName != "amy" || resp.TopUsers[1].UserName != "zoe" {
		t.Fatalf("expected equal page counts broken by name, got [%s, %s]",
			resp.TopUsers[0].UserName, resp.TopUsers[1].UserName)
	}
}

func TestSummarizeDateRange(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn, 0)

	inside := baseTime
	outside := baseTime.Add(72 * time.Hour)
	insertJob(t, conn, "alice", "P1", 5, inside)
	insertJob(t, conn, "bob", "P2", 9, outside)

	from := baseTime.Add(-time.Hour)
	to := baseTime.Add(time.Hour)
	resp, err := svc.Summarize(context.Background(), domain.StatsRequest{From: &from, To: &to})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if resp.TotalJobs != 1 || resp.TotalPages != 5 {
		t.Fatalf("expected only the in-range job, got %d/%d", resp.TotalJobs, resp.TotalPages)
	}
	if len(resp.TopUsers) != 1 || resp.TopUsers[0].UserName != "alice" {
		t.Fatalf("expected alice only, got %v", resp.TopUsers)
	}

	// A window matching nothing is a valid, empty summary.
	farFrom := baseTime.Add(-48 * time.Hour)
	farTo := baseTime.Add(-24 * time.Hour)
	empty, err := svc.Summarize(context.Background(), domain.StatsRequest{From: &farFrom, To: &farTo})
	if err != nil {
		t.Fatalf("summarize empty window: %v", err)
	}
	if empty.TotalJobs != 0 || len(empty.TopUsers) != 0 || len(empty.TopPrinters) != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestSummarizeSingleBoundIgnored(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn, 0)

	insertJob(t, conn, "alice", "P1", 5, baseTime)
	insertJob(t, conn, "bob", "P2", 3, baseTime.Add(96*time.Hour))

	from := baseTime.Add(48 * time.Hour)
	resp, err := svc.Summarize(context.Background(), domain.StatsRequest{From: &from})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if resp.TotalJobs != 2 {
		t.Fatalf("expected half-open range to be ignored, got total %d", resp.TotalJobs)
	}
}

func TestSummarizeCachesUnfilteredWindow(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn, time.Minute)

	insertJob(t, conn, "alice", "P1", 5, baseTime)

	first, err := svc.Summarize(context.Background(), domain.StatsRequest{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if first.TotalJobs != 1 {
		t.Fatalf("expected 1 job, got %d", first.TotalJobs)
	}

	// New data lands; the cached summary keeps serving until the TTL lapses.
	insertJob(t, conn, "bob", "P2", 3, baseTime.Add(time.Minute))

	second, err := svc.Summarize(context.Background(), domain.StatsRequest{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if second.TotalJobs != 1 {
		t.Fatalf("expected cached summary, got total %d", second.TotalJobs)
	}

	// Ranged requests bypass the cache and see the fresh state.
	from := baseTime.Add(-time.Hour)
	to := baseTime.Add(time.Hour * 24)
	ranged, err := svc.Summarize(context.Background(), domain.StatsRequest{From: &from, To: &to})
	if err != nil {
		t.Fatalf("summarize ranged: %v", err)
	}
	if ranged.TotalJobs != 2 {
		t.Fatalf("expected ranged request to bypass cache, got total %d", ranged.TotalJobs)
	}
}
