// Package service implements on-the-fly aggregation over the job log.
package service

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/cache"
	"github.com/kmurdhar/PrinterManagementSystem/internal/config"
	"github.com/kmurdhar/PrinterManagementSystem/internal/stats/domain"
)

// topN bounds the per-user and per-printer breakdowns.
const topN = 10

const unfilteredCacheKey = "stats:unfiltered"

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Cache  cache.Cache[string, domain.StatsResponse] `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	cacheTTL time.Duration
	cache    cache.Cache[string, domain.StatsResponse]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("stats.service"),

		cacheTTL: p.Config.Stats.CacheTTL,
		cache:    p.Cache,
	}
}

// NewStatsCache provides the memoization cache for unfiltered summaries. The
// dashboard polls every few seconds; the cache keeps that from re-scanning
// the whole table each time.
func NewStatsCache() cache.Cache[string, domain.StatsResponse] {
	return cache.NewTTLCache[string, domain.StatsResponse]()
}

// Summarize computes totals and top-N breakdowns for the requested window.
// All four sub-results run inside one transaction so they describe the same
// set of records.
func (s *Service) Summarize(ctx context.Context, req domain.StatsRequest) (domain.StatsResponse, error) {
	cacheable := !req.Ranged() && s.cache != nil && s.cacheTTL > 0
	if cacheable {
		if cached, ok := s.cache.Get(unfilteredCacheKey); ok {
			return cached, nil
		}
	}

	var resp domain.StatsResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		where, args := rangeClause(req)

		if err := tx.Raw(
			`SELECT COUNT(*) AS total_jobs, COALESCE(SUM(page_count), 0) AS total_pages
			 FROM print_jobs`+where,
			args...,
		).Row().Scan(&resp.TotalJobs, &resp.TotalPages); err != nil {
			return err
		}

		if err := tx.Raw(
			`SELECT user_name, COUNT(*) AS job_count, COALESCE(SUM(page_count), 0) AS page_count
			 FROM print_jobs`+where+`
			 GROUP BY user_name
			 ORDER BY page_count DESC, user_name ASC
			 LIMIT ?`,
			append(args, topN)...,
		).Scan(&resp.TopUsers).Error; err != nil {
			return err
		}

		if err := tx.Raw(
			`SELECT printer_name, COUNT(*) AS job_count, COALESCE(SUM(page_count), 0) AS page_count
			 FROM print_jobs`+where+`
			 GROUP BY printer_name
			 ORDER BY job_count DESC, printer_name ASC
			 LIMIT ?`,
			append(args, topN)...,
		).Scan(&resp.TopPrinters).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return domain.StatsResponse{}, err
	}

	if resp.TopUsers == nil {
		resp.TopUsers = []domain.UserStat{}
	}
	if resp.TopPrinters == nil {
		resp.TopPrinters = []domain.PrinterStat{}
	}

	if cacheable {
		s.cache.Set(unfilteredCacheKey, resp, s.cacheTTL)
	}
	return resp, nil
}

func rangeClause(req domain.StatsRequest) (string, []any) {
	if !req.Ranged() {
		return "", nil
	}
	return " WHERE print_time >= ? AND print_time <= ?", []any{req.From.UTC(), req.To.UTC()}
}
