package migration

import (
	commentdomain "github.com/productify/productify/internal/comment/domain"
	"github.com/productify/productify/internal/config"
	productdomain "github.com/productify/productify/internal/product/domain"
	userdomain "github.com/productify/productify/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module applies the schema at startup. Postgres gets the versioned SQL
// migrations; other dialects (sqlite/mysql dev setups) fall back to gorm
// auto-migration of the same tables.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		return conn.AutoMigrate(
			&userdomain.User{},
			&productdomain.Product{},
			&commentdomain.Comment{},
		)
	}),
)
