package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/productify/productify/internal/clock"
	"github.com/productify/productify/internal/comment"
	"github.com/productify/productify/internal/config"
	"github.com/productify/productify/internal/identity"
	"github.com/productify/productify/internal/logger"
	"github.com/productify/productify/internal/migration"
	"github.com/productify/productify/internal/product"
	"github.com/productify/productify/internal/ratelimit"
	"github.com/productify/productify/internal/server"
	"github.com/productify/productify/internal/upload"
	"github.com/productify/productify/internal/user"
	"github.com/productify/productify/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		identity.Module,
		user.Module,
		comment.Module,
		product.Module,
		upload.Module,
		ratelimit.Module,

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
