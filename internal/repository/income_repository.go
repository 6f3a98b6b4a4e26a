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

var incomeColumns = []string{"id", "user_id", "card_id", "user_currency_amount", "card_currency_amount", "date", "created_at", "updated_at"}

type IncomeRepository struct {
	logger *zap.Logger
}

func NewIncomeRepository(logger *zap.Logger) *IncomeRepository {
	return &IncomeRepository{logger: logger}
}

func (r *IncomeRepository) Create(ctx context.Context, q Querier, income *models.Income) error {
	query := squirrel.Insert("incomes").
		Columns(incomeColumns...).
		Values(income.ID, income.UserID, income.CardID, income.UserCurrencyAmount, income.CardCurrencyAmount, income.Date, income.CreatedAt, income.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *IncomeRepository) GetByID(ctx context.Context, q Querier, id, userID uuid.UUID) (*models.Income, error) {
	query := squirrel.Select(incomeColumns...).
		From("incomes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var income models.Income
	err = q.QueryRow(ctx, sql, args...).Scan(
		&income.ID, &income.UserID, &income.CardID, &income.UserCurrencyAmount, &income.CardCurrencyAmount, &income.Date, &income.CreatedAt, &income.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &income, nil
}

// ListByUser returns the user's incomes within [from, to), newest first.
func (r *IncomeRepository) ListByUser(ctx context.Context, q Querier, userID uuid.UUID, from, to time.Time) ([]*models.Income, error) {
	query := squirrel.Select(incomeColumns...).
		From("incomes").
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

	var incomes []*models.Income
	for rows.Next() {
		var income models.Income
		if err := rows.Scan(
			&income.ID, &income.UserID, &income.CardID, &income.UserCurrencyAmount, &income.CardCurrencyAmount, &income.Date, &income.CreatedAt, &income.UpdatedAt,
		); err != nil {
			return nil, err
		}
		incomes = append(incomes, &income)
	}

	return incomes, rows.Err()
}

func (r *IncomeRepository) Update(ctx context.Context, q Querier, income *models.Income) error {
	query := squirrel.Update("incomes").
		Set("card_id", income.CardID).
		Set("user_currency_amount", income.UserCurrencyAmount).
		Set("card_currency_amount", income.CardCurrencyAmount).
		Set("date", income.Date).
		Set("updated_at", income.UpdatedAt).
		Where(squirrel.Eq{"id": income.ID, "user_id": income.UserID}).
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

func (r *IncomeRepository) Delete(ctx context.Context, q Querier, id, userID uuid.UUID) error {
	query := squirrel.Delete("incomes").
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

// SumByUser sums user-currency amounts of all the user's incomes within [from, to).
func (r *IncomeRepository) SumByUser(ctx context.Context, q Querier, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(user_currency_amount), 0)").
		From("incomes").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		PlaceholderFormat(squirrel.Dollar)

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
