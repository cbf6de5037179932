package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fairmog/tagihin/internal/catalog"
	"github.com/fairmog/tagihin/internal/clock"
	"github.com/fairmog/tagihin/internal/config"
	"github.com/fairmog/tagihin/internal/invoice"
	"github.com/fairmog/tagihin/internal/migration"
	"github.com/fairmog/tagihin/internal/observability"
	"github.com/fairmog/tagihin/internal/seed"
	"github.com/fairmog/tagihin/internal/server"
	"github.com/fairmog/tagihin/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			if err := migration.RunMigrations(conn); err != nil {
				return err
			}
			return seed.EnsureDefaultBusiness(conn)
		}),

		catalog.Module,
		invoice.Module,
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
