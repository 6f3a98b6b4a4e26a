// Demo-data seeder: creates a demo user with two cards, a few categories and
// a month of sample transactions. Safe to re-run; it skips seeding when the
// demo user already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"costsmap/internal/dto"
	"costsmap/internal/repository"
	"costsmap/internal/service"
	"costsmap/migrations"
	"costsmap/pkg/auth"
	"costsmap/pkg/config"
	"costsmap/pkg/logger"
	"costsmap/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@costsmap.local"
	demoPassword = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

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

	if _, err := userRepo.GetByEmail(ctx, db, demoEmail); err == nil {
		appLogger.Info("Demo user already exists, nothing to do", zap.String("email", demoEmail))
		return
	}

	appLogger.Info("Seeding demo data")

	authResp, err := authService.Register(ctx, &dto.RegisterRequest{
		Username: "demo",
		Email:    demoEmail,
		Password: demoPassword,
		Currency: "$",
	})
	if err != nil {
		appLogger.Fatal("Failed to register demo user", zap.Error(err))
	}
	userID := uuid.MustParse(authResp.User.ID)

	mainCard, err := cardService.Create(ctx, userID, &dto.CreateCardRequest{
		Title:    "Main",
		Currency: "$",
		Color:    "#2e7d32",
	})
	if err != nil {
		appLogger.Fatal("Failed to create card", zap.Error(err))
	}
	rubCard, err := cardService.Create(ctx, userID, &dto.CreateCardRequest{
		Title:    "Rubles",
		Currency: "₽",
		Color:    "#1565c0",
	})
	if err != nil {
		appLogger.Fatal("Failed to create card", zap.Error(err))
	}

	limit := decimal.NewFromInt(300)
	categoryTitles := []struct {
		title string
		limit *decimal.Decimal
	}{
		{"Groceries", &limit},
		{"Transport", nil},
		{"Entertainment", nil},
	}
	categoryIDs := make(map[string]uuid.UUID, len(categoryTitles))
	for _, ct := range categoryTitles {
		category, err := categoryService.Create(ctx, userID, &dto.CreateCategoryRequest{
			Title:      ct.title,
			CostsLimit: ct.limit,
		})
		if err != nil {
			appLogger.Fatal("Failed to create category", zap.String("title", ct.title), zap.Error(err))
		}
		categoryIDs[ct.title] = uuid.MustParse(category.ID)
	}

	mainID := uuid.MustParse(mainCard.ID)
	rubID := uuid.MustParse(rubCard.ID)
	month := time.Now().UTC().Format("2006-01")

	if _, err := incomeService.Create(ctx, userID, &dto.CreateIncomeRequest{
		Amount: decimal.NewFromInt(2500),
		CardID: mainID,
		Date:   fmt.Sprintf("%s-01", month),
	}); err != nil {
		appLogger.Fatal("Failed to create income", zap.Error(err))
	}

	rubAmount := decimal.NewFromInt(50000)
	if _, err := incomeService.Create(ctx, userID, &dto.CreateIncomeRequest{
		Amount:             decimal.NewFromInt(500),
		CardCurrencyAmount: &rubAmount,
		CardID:             rubID,
		Date:               fmt.Sprintf("%s-02", month),
	}); err != nil {
		appLogger.Fatal("Failed to create income", zap.Error(err))
	}

	sampleCosts := []struct {
		amount   int64
		category string
		day      string
	}{
		{85, "Groceries", "03"},
		{42, "Groceries", "07"},
		{15, "Transport", "05"},
		{60, "Entertainment", "08"},
	}
	for _, sc := range sampleCosts {
		if _, err := costService.Create(ctx, userID, &dto.CreateCostRequest{
			Amount:     decimal.NewFromInt(sc.amount),
			CategoryID: categoryIDs[sc.category],
			CardID:     mainID,
			Date:       fmt.Sprintf("%s-%s", month, sc.day),
		}); err != nil {
			appLogger.Fatal("Failed to create cost", zap.String("category", sc.category), zap.Error(err))
		}
	}

	appLogger.Info("Demo data seeded",
		zap.String("email", demoEmail),
		zap.String("password", demoPassword),
	)
}
