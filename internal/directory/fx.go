package directory

import (
	"go.uber.org/fx"

	"github.com/kmurdhar/PrinterManagementSystem/internal/directory/service"
)

var Module = fx.Module("directory.service",
	fx.Provide(service.NewService),
)
