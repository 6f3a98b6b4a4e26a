package service

import (
	"context"
	"time"

	"costsmap/internal/models"
	"costsmap/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DB is the database handle the services are given. *pgxpool.Pool satisfies
// it. Repositories never see the pool directly; every query goes through the
// Querier the service hands them, which inside a mutator is the open pgx.Tx.
type DB interface {
	repository.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type userStore interface {
	Create(ctx context.Context, q repository.Querier, user *models.User) error
	GetByEmail(ctx context.Context, q repository.Querier, email string) (*models.User, error)
	GetByID(ctx context.Context, q repository.Querier, id uuid.UUID) (*models.User, error)
}

type cardStore interface {
	Create(ctx context.Context, q repository.Querier, card *models.Card) error
	GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Card, error)
	GetForUpdate(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Card, error)
	ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID) ([]*models.Card, error)
	Update(ctx context.Context, q repository.Querier, card *models.Card) error
	ApplyDelta(ctx context.Context, q repository.Querier, id uuid.UUID, delta decimal.Decimal) error
	Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error
}

type categoryStore interface {
	Create(ctx context.Context, q repository.Querier, category *models.Category) error
	GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Category, error)
	ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID) ([]*models.Category, error)
	Update(ctx context.Context, q repository.Querier, category *models.Category) error
	Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error
}

type costStore interface {
	Create(ctx context.Context, q repository.Querier, cost *models.Cost) error
	GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Cost, error)
	ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) ([]*models.Cost, error)
	Update(ctx context.Context, q repository.Querier, cost *models.Cost) error
	Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error
	SumByCategory(ctx context.Context, q repository.Querier, categoryID, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	SumByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

type incomeStore interface {
	Create(ctx context.Context, q repository.Querier, income *models.Income) error
	GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Income, error)
	ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) ([]*models.Income, error)
	Update(ctx context.Context, q repository.Querier, income *models.Income) error
	Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error
	SumByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
