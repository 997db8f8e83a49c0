// @title           Printer Management API
// @version         1.0
// @description     Print-job telemetry collection and reporting API

// @host      localhost:3000
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/clock"
	"github.com/kmurdhar/PrinterManagementSystem/internal/config"
	"github.com/kmurdhar/PrinterManagementSystem/internal/directory"
	"github.com/kmurdhar/PrinterManagementSystem/internal/migration"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability"
	"github.com/kmurdhar/PrinterManagementSystem/internal/printjob"
	"github.com/kmurdhar/PrinterManagementSystem/internal/seed"
	"github.com/kmurdhar/PrinterManagementSystem/internal/server"
	"github.com/kmurdhar/PrinterManagementSystem/internal/stats"
	"github.com/kmurdhar/PrinterManagementSystem/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureDirectory(conn)
		}),

		printjob.Module,
		stats.Module,
		directory.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
