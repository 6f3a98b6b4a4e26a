package repository

import (
	"context"
	"time"

	"costsmap/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var costColumns = []string{"id", "user_id", "card_id", "category_id", "user_currency_amount", "card_currency_amount", "date", "created_at", "updated_at"}

type CostRepository struct {
	logger *zap.Logger
}

func NewCostRepository(logger *zap.Logger) *CostRepository {
	return &CostRepository{logger: logger}
}

func (r *CostRepository) Create(ctx context.Context, q Querier, cost *models.Cost) error {
	query := squirrel.Insert("costs").
		Columns(costColumns...).
		Values(cost.ID, cost.UserID, cost.CardID, cost.CategoryID, cost.UserCurrencyAmount, cost.CardCurrencyAmount, cost.Date, cost.CreatedAt, cost.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *CostRepository) GetByID(ctx context.Context, q Querier, id, userID uuid.UUID) (*models.Cost, error) {
	query := squirrel.Select(costColumns...).
		From("costs").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cost models.Cost
	err = q.QueryRow(ctx, sql, args...).Scan(
		&cost.ID, &cost.UserID, &cost.CardID, &cost.CategoryID, &cost.UserCurrencyAmount, &cost.CardCurrencyAmount, &cost.Date, &cost.CreatedAt, &cost.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &cost, nil
}

// ListByUser returns the user's costs within [from, to), newest first.
func (r *CostRepository) ListByUser(ctx context.Context, q Querier, userID uuid.UUID, from, to time.Time) ([]*models.Cost, error) {
	query := squirrel.Select(costColumns...).
		From("costs").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []*models.Cost
	for rows.Next() {
		var cost models.Cost
		if err := rows.Scan(
			&cost.ID, &cost.UserID, &cost.CardID, &cost.CategoryID, &cost.UserCurrencyAmount, &cost.CardCurrencyAmount, &cost.Date, &cost.CreatedAt, &cost.UpdatedAt,
		); err != nil {
			return nil, err
		}
		costs = append(costs, &cost)
	}

	return costs, rows.Err()
}

func (r *CostRepository) Update(ctx context.Context, q Querier, cost *models.Cost) error {
	query := squirrel.Update("costs").
		Set("card_id", cost.CardID).
		Set("category_id", cost.CategoryID).
		Set("user_currency_amount", cost.UserCurrencyAmount).
		Set("card_currency_amount", cost.CardCurrencyAmount).
		Set("date", cost.Date).
		Set("updated_at", cost.UpdatedAt).
		Where(squirrel.Eq{"id": cost.ID, "user_id": cost.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CostRepository) Delete(ctx context.Context, q Querier, id, userID uuid.UUID) error {
	query := squirrel.Delete("costs").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SumByCategory sums user-currency amounts of a category's costs within
// [from, to). Returns zero, not null, when nothing matches.
func (r *CostRepository) SumByCategory(ctx context.Context, q Querier, categoryID, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(user_currency_amount), 0)").
		From("costs").
		Where(squirrel.Eq{"category_id": categoryID, "user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		PlaceholderFormat(squirrel.Dollar)

	return r.scanSum(ctx, q, query)
}

// SumByUser sums user-currency amounts of all the user's costs within [from, to).
func (r *CostRepository) SumByUser(ctx context.Context, q Querier, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(user_currency_amount), 0)").
		From("costs").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		PlaceholderFormat(squirrel.Dollar)

	return r.scanSum(ctx, q, query)
}

func (r *CostRepository) scanSum(ctx context.Context, q Querier, query squirrel.SelectBuilder) (decimal.Decimal, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
