package domain

import (
	"context"
	"time"

	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/pagination"
)

// IngestRequest is one job report from an agent. UserName, MachineName and
// PrinterName are required; everything else defaults.
type IngestRequest struct {
	JobID        string
	UserName     string
	MachineName  string
	PrinterName  string
	DocumentName string
	PageCount    int
	PrintTime    *time.Time
	Status       string
	FileSize     int64
	Metadata     map[string]any
}

// ListRequest narrows and pages the job log.
type ListRequest struct {
	Filter     Filter
	Pagination pagination.Pagination
}

// ListResponse is one page of the job log plus pagination metadata.
type ListResponse struct {
	Jobs     []PrintJob          `json:"jobs"`
	PageInfo pagination.PageInfo `json:"pagination"`
}

// Service ingests and queries print-job records.
type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*PrintJob, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}
