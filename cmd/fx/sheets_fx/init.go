package sheets_fx

import (
	"bettrack/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	services.NewSheetsService)
