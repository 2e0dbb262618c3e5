package bet_fx

import (
	"bettrack/internal/infra"
	"bettrack/internal/repositories"
	"bettrack/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideBetRepo,
	provideExtractionClient,
	services.NewBetService)

func provideBetRepo(db *gorm.DB) repositories.BetRepository {
	return repositories.NewBetRepository(db)
}

func provideExtractionClient(cfg *infra.Config) (services.ExtractionClientInterface, error) {
	switch cfg.ExtractionProvider {
	case "openai":
		return services.NewExtractionClient("openai", cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return services.NewExtractionClient("gemini", cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}
