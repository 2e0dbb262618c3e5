package controllers_fx

import (
	"bettrack/internal/api/controllers"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewBetController),
	fx.Provide(controllers.NewSheetsController))
