package printjob

import (
	"go.uber.org/fx"

	"github.com/kmurdhar/PrinterManagementSystem/internal/printjob/service"
)

var Module = fx.Module("printjob.service",
	fx.Provide(service.NewService),
)
