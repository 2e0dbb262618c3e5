package db_fx

import (
	"bettrack/internal/infra"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	infra.LoadConfig,
	provideDB)

func provideDB(cfg *infra.Config) *gorm.DB {
	return infra.InitPostgresql(cfg)
}
