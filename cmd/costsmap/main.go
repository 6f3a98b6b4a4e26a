package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"costsmap/internal/api"
	"costsmap/internal/api/handlers"
	"costsmap/internal/repository"
	"costsmap/internal/service"
	"costsmap/migrations"
	"costsmap/pkg/auth"
	"costsmap/pkg/config"
	"costsmap/pkg/logger"
	"costsmap/pkg/postgres"

	"go.uber.org/zap"
)

// @title CostsMap API
// @version 1.0
// @description Personal finance tracker: cards, categories, costs and incomes

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting CostsMap service")

	if err := postgres.Migrate(&cfg.Database, migrations.FS, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(appLogger)
	cardRepo := repository.NewCardRepository(appLogger)
	categoryRepo := repository.NewCategoryRepository(appLogger)
	costRepo := repository.NewCostRepository(appLogger)
	incomeRepo := repository.NewIncomeRepository(appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	authService := service.NewAuthService(db, userRepo, jwtManager, appLogger)
	cardService := service.NewCardService(db, cardRepo, appLogger)
	categoryService := service.NewCategoryService(db, categoryRepo, costRepo, appLogger)
	costService := service.NewCostService(db, costRepo, categoryRepo, cardRepo, userRepo, appLogger)
	incomeService := service.NewIncomeService(db, incomeRepo, cardRepo, userRepo, appLogger)

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	cardHandler := handlers.NewCardHandler(cardService, appLogger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, appLogger)
	costHandler := handlers.NewCostHandler(costService, appLogger)
	incomeHandler := handlers.NewIncomeHandler(incomeService, appLogger)

	app := api.SetupRouter(authHandler, cardHandler, categoryHandler, costHandler, incomeHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
