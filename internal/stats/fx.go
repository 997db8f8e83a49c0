package stats

import (
	"go.uber.org/fx"

	"github.com/kmurdhar/PrinterManagementSystem/internal/stats/service"
)

var Module = fx.Module("stats.service",
	fx.Provide(service.NewStatsCache),
	fx.Provide(service.NewService),
)
