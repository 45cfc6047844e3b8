package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mvaldebenito/vocanta/config"
	"github.com/mvaldebenito/vocanta/database"
	_ "github.com/mvaldebenito/vocanta/docs" // Swagger docs
	adminctrl "github.com/mvaldebenito/vocanta/internal/controller/admin"
	studentctrl "github.com/mvaldebenito/vocanta/internal/controller/student"
	"github.com/mvaldebenito/vocanta/internal/logger"
	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/mvaldebenito/vocanta/internal/repository"
	"github.com/mvaldebenito/vocanta/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Vocanta Vocational Testing API
// @version 1.0
// @description Backend for school vocational testing: INAPV interest/aptitude inventory and CAAS career adaptability scale, with attempt tracking, scoring and period-level aggregates.
// @contact.name API Support
// @contact.email soporte@vocanta.cl
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,
			repository.NewStore,
		),

		fx.Provide(
			service.NewInapAttemptService,
			service.NewCaasAttemptService,
			service.NewPeriodResultsService,
			service.NewAdminService,
		),

		fx.Provide(
			studentctrl.NewInapAttemptController,
			studentctrl.NewCaasAttemptController,
			adminctrl.NewAdminController,
			adminctrl.NewPeriodResultsController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the controllers under /api/v1 and ties
// the HTTP server into the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	inapCtrl *studentctrl.InapAttemptController,
	caasCtrl *studentctrl.CaasAttemptController,
	adminCtrl *adminctrl.AdminController,
	periodResultsCtrl *adminctrl.PeriodResultsController,
) {
	api := router.Group("/api/v1")
	inapCtrl.RegisterRoutes(api)
	caasCtrl.RegisterRoutes(api)
	adminCtrl.RegisterRoutes(api)
	periodResultsCtrl.RegisterRoutes(api)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Vocanta API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Organization{},
		&model.User{},
		&model.Test{},
		&model.Period{},
		&model.Enrollment{},
		&model.Attempt{},
		&model.InapQuestion{},
		&model.CaasQuestion{},
		&model.InapAnswer{},
		&model.CaasAnswer{},
		&model.InapResult{},
		&model.CaasResult{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
