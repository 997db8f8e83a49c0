// Package domain defines the aggregation contracts for the dashboard.
package domain

import (
	"context"
	"time"
)

// StatsRequest optionally restricts the aggregation window. The range only
// applies when both bounds are present; a single bound is ignored entirely
// rather than silently half-filtering.
type StatsRequest struct {
	From *time.Time
	To   *time.Time
}

// Ranged reports whether a complete date range was supplied.
func (r StatsRequest) Ranged() bool {
	return r.From != nil && r.To != nil
}

// UserStat is one user's contribution to the window.
type UserStat struct {
	UserName  string `json:"userName"`
	JobCount  int64  `json:"jobCount"`
	PageCount int64  `json:"pageCount"`
}

// PrinterStat is one printer's contribution to the window.
type PrinterStat struct {
	PrinterName string `json:"printerName"`
	JobCount    int64  `json:"jobCount"`
	PageCount   int64  `json:"pageCount"`
}

// StatsResponse is the dashboard summary. All four values come from one
// consistent read of the store.
type StatsResponse struct {
	TotalJobs   int64         `json:"totalJobs"`
	TotalPages  int64         `json:"totalPages"`
	TopUsers    []UserStat    `json:"topUsers"`
	TopPrinters []PrinterStat `json:"topPrinters"`
}

// Service computes summary statistics over the job log.
type Service interface {
	Summarize(ctx context.Context, req StatsRequest) (StatsResponse, error)
}
