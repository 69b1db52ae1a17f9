package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mackml1997/reserves-rarities/internal/audit"
	"github.com/mackml1997/reserves-rarities/internal/clock"
	"github.com/mackml1997/reserves-rarities/internal/commerce7"
	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/customer"
	"github.com/mackml1997/reserves-rarities/internal/events"
	"github.com/mackml1997/reserves-rarities/internal/gateway"
	"github.com/mackml1997/reserves-rarities/internal/migration"
	"github.com/mackml1997/reserves-rarities/internal/observability"
	"github.com/mackml1997/reserves-rarities/internal/order"
	"github.com/mackml1997/reserves-rarities/internal/pipeline"
	"github.com/mackml1997/reserves-rarities/internal/seed"
	"github.com/mackml1997/reserves-rarities/internal/server"
	"github.com/mackml1997/reserves-rarities/internal/tenant"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"github.com/mackml1997/reserves-rarities/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,
		fx.Provide(events.NewOutbox),

		tenant.Module,
		gateway.Module,
		commerce7.Module,
		customer.Module,
		order.Module,
		audit.Module,
		pipeline.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config, tenants tenantdomain.Service, log *zap.Logger) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.Run(context.Background(), cfg, tenants, log)
		}),
		server.Module,
	)
	app.Run()
}
