package main

import (
	"context"
	"log"

	"bettrack/cmd/fx/account_fx"
	"bettrack/cmd/fx/bet_fx"
	"bettrack/cmd/fx/controllers_fx"
	"bettrack/cmd/fx/db_fx"
	"bettrack/cmd/fx/sheets_fx"
	"bettrack/internal/api/controllers"
	"bettrack/internal/infra"
	"bettrack/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		bet_fx.Module,
		sheets_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	userController *controllers.UserController,
	betController *controllers.BetController,
	sheetsController *controllers.SheetsController) *gin.Engine {

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, authController, userController, betController, sheetsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	betController *controllers.BetController,
	sheetsController *controllers.SheetsController) {

	generalLimiter := middleware.NewRateLimiter("general", 10, 20)
	authLimiter := middleware.NewRateLimiter("auth", 1, 5)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	authGroup.Use(authLimiter.Middleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/google", authController.GoogleLogin)
	authGroup.GET("/google/callback", authController.GoogleCallback)

	api := r.Group("/")
	api.Use(middleware.JWTAuthMiddleware())
	api.Use(generalLimiter.Middleware())
	api.GET("/user/info", userController.Info)
	api.POST("/process-bet", betController.ProcessBet)
	api.GET("/history", betController.History)

	sheetsGroup := api.Group("/sheets")
	sheetsGroup.GET("/status", sheetsController.Status)
	sheetsGroup.POST("/create-template", sheetsController.CreateTemplate)
	sheetsGroup.POST("/sync-bet", sheetsController.SyncBet)
	sheetsGroup.POST("/disconnect", sheetsController.Disconnect)
}
