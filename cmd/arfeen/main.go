package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/migration"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/observability"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/server"
	"github.com/arfeen-portal/arfeen-portal-sub002/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
