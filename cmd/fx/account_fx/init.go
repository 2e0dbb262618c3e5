package account_fx

import (
	"bettrack/internal/repositories"
	"bettrack/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideUserRepo,
	services.NewUsageLedger,
	services.NewGoogleOAuthConfig,
	services.NewAccountService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}
