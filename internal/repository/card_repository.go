package repository

import (
	"context"

	"costsmap/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var cardColumns = []string{"id", "user_id", "title", "currency", "color", "amount", "created_at", "updated_at"}

type CardRepository struct {
	logger *zap.Logger
}

func NewCardRepository(logger *zap.Logger) *CardRepository {
	return &CardRepository{logger: logger}
}

func (r *CardRepository) Create(ctx context.Context, q Querier, card *models.Card) error {
	query := squirrel.Insert("cards").
		Columns(cardColumns...).
		Values(card.ID, card.UserID, card.Title, card.Currency, card.Color, card.Amount, card.CreatedAt, card.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *CardRepository) GetByID(ctx context.Context, q Querier, id, userID uuid.UUID) (*models.Card, error) {
	return r.get(ctx, q, id, userID, false)
}

// GetForUpdate loads the card with a row-level lock so concurrent balance
// updates serialize on the card row for the duration of the transaction.
func (r *CardRepository) GetForUpdate(ctx context.Context, q Querier, id, userID uuid.UUID) (*models.Card, error) {
	return r.get(ctx, q, id, userID, true)
}

func (r *CardRepository) get(ctx context.Context, q Querier, id, userID uuid.UUID, lock bool) (*models.Card, error) {
	query := squirrel.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var card models.Card
	err = q.QueryRow(ctx, sql, args...).Scan(
		&card.ID, &card.UserID, &card.Title, &card.Currency, &card.Color, &card.Amount, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &card, nil
}

func (r *CardRepository) ListByUser(ctx context.Context, q Querier, userID uuid.UUID) ([]*models.Card, error) {
	query := squirrel.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
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

	var cards []*models.Card
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(
			&card.ID, &card.UserID, &card.Title, &card.Currency, &card.Color, &card.Amount, &card.CreatedAt, &card.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, &card)
	}

	return cards, rows.Err()
}

// Update persists title, currency and color. The balance is deliberately
// excluded: it only moves through ApplyDelta.
func (r *CardRepository) Update(ctx context.Context, q Querier, card *models.Card) error {
	query := squirrel.Update("cards").
		Set("title", card.Title).
		Set("currency", card.Currency).
		Set("color", card.Color).
		Set("updated_at", card.UpdatedAt).
		Where(squirrel.Eq{"id": card.ID, "user_id": card.UserID}).
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

// ApplyDelta adds delta (which may be negative) to the card balance in a
// single UPDATE. Callers hold the row lock taken by GetForUpdate.
func (r *CardRepository) ApplyDelta(ctx context.Context, q Querier, id uuid.UUID, delta decimal.Decimal) error {
	query := squirrel.Update("cards").
		Set("amount", squirrel.Expr("amount + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
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

func (r *CardRepository) Delete(ctx context.Context, q Querier, id, userID uuid.UUID) error {
	query := squirrel.Delete("cards").
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
