package repository_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"costsmap/internal/models"
	"costsmap/internal/repository"
	"costsmap/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Integration tests against a real Postgres. Set TEST_DATABASE_URL to a
// postgres:// URL pointing at a disposable database to run them.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	migrateURL := strings.Replace(dbURL, "postgresql://", "pgx5://", 1)
	migrateURL = strings.Replace(migrateURL, "postgres://", "pgx5://", 1)

	source, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL)
	require.NoError(t, err)
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("migrate up: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	require.NoError(t, err)
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), "TRUNCATE users CASCADE")
	require.NoError(t, err)

	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, email string) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  "tester",
		Email:     email,
		Password:  "hash",
		Currency:  "$",
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo := repository.NewUserRepository(zap.NewNop())
	require.NoError(t, repo.Create(context.Background(), pool, user))
	return user
}

func createTestCard(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, title, amount string) *models.Card {
	t.Helper()
	now := time.Now()
	card := &models.Card{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Currency:  "$",
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo := repository.NewCardRepository(zap.NewNop())
	require.NoError(t, repo.Create(context.Background(), pool, card))
	return card
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewUserRepository(zap.NewNop())
	ctx := context.Background()

	first := createTestUser(t, pool, "dup@example.com")

	dup := *first
	dup.ID = uuid.New()
	err := repo.Create(ctx, pool, &dup)
	assert.True(t, repository.IsUniqueViolation(err))

	got, err := repo.GetByEmail(ctx, pool, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestCardRepositoryApplyDelta(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewCardRepository(zap.NewNop())
	ctx := context.Background()

	user := createTestUser(t, pool, "cards@example.com")
	card := createTestCard(t, pool, user.ID, "Main", "100.00")

	require.NoError(t, repo.ApplyDelta(ctx, pool, card.ID, decimal.RequireFromString("-30.50")))

	got, err := repo.GetByID(ctx, pool, card.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("69.50")), "got %s", got.Amount)

	err = repo.ApplyDelta(ctx, pool, uuid.New(), decimal.NewFromInt(1))
	assert.True(t, repository.IsNotFound(err))
}

func TestCardRepositoryGetForUpdateInTx(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewCardRepository(zap.NewNop())
	ctx := context.Background()

	user := createTestUser(t, pool, "lock@example.com")
	card := createTestCard(t, pool, user.ID, "Main", "10.00")

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	locked, err := repo.GetForUpdate(ctx, tx, card.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, locked.ID)

	require.NoError(t, repo.ApplyDelta(ctx, tx, card.ID, decimal.NewFromInt(5)))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetByID(ctx, pool, card.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("15.00")), "got %s", got.Amount)
}

func TestCardRepositoryOwnership(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewCardRepository(zap.NewNop())
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner@example.com")
	card := createTestCard(t, pool, owner.ID, "Main", "10.00")

	_, err := repo.GetByID(ctx, pool, card.ID, uuid.New())
	assert.True(t, repository.IsNotFound(err))

	err = repo.Delete(ctx, pool, card.ID, uuid.New())
	assert.True(t, repository.IsNotFound(err))
}

func TestCostRepositorySums(t *testing.T) {
	pool := setupTestDB(t)
	costs := repository.NewCostRepository(zap.NewNop())
	categories := repository.NewCategoryRepository(zap.NewNop())
	ctx := context.Background()

	user := createTestUser(t, pool, "sums@example.com")
	card := createTestCard(t, pool, user.ID, "Main", "1000.00")

	now := time.Now()
	category := &models.Category{
		ID:        uuid.New(),
		UserID:    user.ID,
		Title:     "Food",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, categories.Create(ctx, pool, category))

	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	april := march.AddDate(0, 1, 0)

	// sum over an empty range is zero, not an error
	sum, err := costs.SumByCategory(ctx, pool, category.ID, user.ID, march, april)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	for _, c := range []struct {
		amount string
		date   time.Time
	}{
		{"50.00", march.AddDate(0, 0, 4)},
		{"25.00", march.AddDate(0, 0, 27)},
		{"99.00", april}, // first day of the next month is excluded
	} {
		cost := &models.Cost{
			ID:                 uuid.New(),
			UserID:             user.ID,
			CardID:             card.ID,
			CategoryID:         category.ID,
			UserCurrencyAmount: decimal.RequireFromString(c.amount),
			Date:               c.date,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		require.NoError(t, costs.Create(ctx, pool, cost))
	}

	sum, err = costs.SumByCategory(ctx, pool, category.ID, user.ID, march, april)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("75.00")), "got %s", sum)

	list, err := costs.ListByUser(ctx, pool, user.ID, march, april)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCostRepositoryCardCurrencyAmountRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	costs := repository.NewCostRepository(zap.NewNop())
	categories := repository.NewCategoryRepository(zap.NewNop())
	ctx := context.Background()

	user := createTestUser(t, pool, "roundtrip@example.com")
	card := createTestCard(t, pool, user.ID, "Rubles", "0")

	now := time.Now()
	category := &models.Category{
		ID:        uuid.New(),
		UserID:    user.ID,
		Title:     "Travel",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, categories.Create(ctx, pool, category))

	cardAmount := decimal.RequireFromString("5000.00")
	cost := &models.Cost{
		ID:                 uuid.New(),
		UserID:             user.ID,
		CardID:             card.ID,
		CategoryID:         category.ID,
		UserCurrencyAmount: decimal.RequireFromString("50.00"),
		CardCurrencyAmount: &cardAmount,
		Date:               time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, costs.Create(ctx, pool, cost))

	got, err := costs.GetByID(ctx, pool, cost.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CardCurrencyAmount)
	assert.True(t, got.CardCurrencyAmount.Equal(cardAmount))
	assert.True(t, got.ResolvedAmount().Equal(cardAmount))
}

func TestIncomeRepositoryCRUD(t *testing.T) {
	pool := setupTestDB(t)
	incomes := repository.NewIncomeRepository(zap.NewNop())
	ctx := context.Background()

	user := createTestUser(t, pool, "income@example.com")
	card := createTestCard(t, pool, user.ID, "Main", "0")

	now := time.Now()
	income := &models.Income{
		ID:                 uuid.New(),
		UserID:             user.ID,
		CardID:             card.ID,
		UserCurrencyAmount: decimal.RequireFromString("500.00"),
		Date:               time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, incomes.Create(ctx, pool, income))

	income.UserCurrencyAmount = decimal.RequireFromString("600.00")
	require.NoError(t, incomes.Update(ctx, pool, income))

	got, err := incomes.GetByID(ctx, pool, income.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, got.UserCurrencyAmount.Equal(decimal.RequireFromString("600.00")))

	require.NoError(t, incomes.Delete(ctx, pool, income.ID, user.ID))
	err = incomes.Delete(ctx, pool, income.ID, user.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestCategoryRepositoryDuplicateTitlePerUser(t *testing.T) {
	pool := setupTestDB(t)
	categories := repository.NewCategoryRepository(zap.NewNop())
	ctx := context.Background()

	user := createTestUser(t, pool, "cat@example.com")
	other := createTestUser(t, pool, "cat2@example.com")

	now := time.Now()
	mk := func(userID uuid.UUID) *models.Category {
		return &models.Category{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     "Food",
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	require.NoError(t, categories.Create(ctx, pool, mk(user.ID)))

	err := categories.Create(ctx, pool, mk(user.ID))
	assert.True(t, repository.IsUniqueViolation(err))

	// the same title is fine for a different user
	require.NoError(t, categories.Create(ctx, pool, mk(other.ID)))
}
