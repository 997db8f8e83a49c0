// Package service implements print-job ingestion and querying.
package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/clock"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/metrics"
	"github.com/kmurdhar/PrinterManagementSystem/internal/printjob/domain"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/option"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/pagination"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/repository"
)

// jobOrder is the single required ordering: most recent print first, with
// insertion order (snowflake IDs are monotonic) as the stable tie-break.
const jobOrder = "print_time DESC, id ASC"

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *metrics.JobMetrics `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	clock   clock.Clock
	jobrepo repository.Repository[domain.PrintJob]
	metrics *metrics.JobMetrics
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("printjob.service"),

		genID:   p.GenID,
		clock:   p.Clock,
		jobrepo: repository.ProvideStore[domain.PrintJob](p.DB),
		metrics: p.Metrics,
	}
}

// Ingest validates one job report and appends it to the store. Duplicate
// external job IDs are stored as separate records; agents deliver
// at-least-once and the report log keeps every delivery.
func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.PrintJob, error) {
	if err := validateReport(req); err != nil {
		s.metrics.IncIngested("invalid")
		return nil, err
	}

	now := s.clock.Now()
	printTime := now
	if req.PrintTime != nil && !req.PrintTime.IsZero() {
		printTime = req.PrintTime.UTC()
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusCompleted
	}

	record := &domain.PrintJob{
		ID:           s.genID.Generate(),
		JobID:        strings.TrimSpace(req.JobID),
		UserName:     strings.TrimSpace(req.UserName),
		MachineName:  strings.TrimSpace(req.MachineName),
		PrinterName:  strings.TrimSpace(req.PrinterName),
		DocumentName: strings.TrimSpace(req.DocumentName),
		PageCount:    req.PageCount,
		PrintTime:    printTime,
		Status:       status,
		FileSize:     req.FileSize,
		CreatedAt:    now,
	}
	if req.Metadata != nil {
		record.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.jobrepo.Create(ctx, record); err != nil {
		s.metrics.IncIngested("failed")
		s.log.Error("insert print job failed",
			zap.String("machine", record.MachineName),
			zap.String("printer", record.PrinterName),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncIngested("accepted")
	s.metrics.AddPages(record.PageCount)
	return record, nil
}

// List returns one page of the job log plus the total matching count. Page
// contents and count run against the same predicate set so they always agree.
func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	page := req.Pagination.Normalize()

	total, err := s.jobrepo.Count(ctx, option.WithScope(req.Filter.Apply))
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, err := s.jobrepo.Find(ctx,
		option.WithScope(req.Filter.Apply),
		option.WithOrder(jobOrder),
		option.ApplyPagination(page),
	)
	if err != nil {
		return domain.ListResponse{}, err
	}

	jobs := make([]domain.PrintJob, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		jobs = append(jobs, *item)
	}

	return domain.ListResponse{
		Jobs:     jobs,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}

func validateReport(req domain.IngestRequest) error {
	if strings.TrimSpace(req.UserName) == "" {
		return domain.ErrInvalidUserName
	}
	if strings.TrimSpace(req.MachineName) == "" {
		return domain.ErrInvalidMachineName
	}
	if strings.TrimSpace(req.PrinterName) == "" {
		return domain.ErrInvalidPrinterName
	}
	if req.PageCount < 0 {
		return domain.ErrInvalidPageCount
	}
	if req.FileSize < 0 {
		return domain.ErrInvalidFileSize
	}
	return nil
}
