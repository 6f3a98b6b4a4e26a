package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Card is a money container with its own currency and running balance.
// Amount is only ever mutated through the transaction mutators; the title
// is unique per owner (enforced by a DB constraint).
type Card struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Title     string          `db:"title"`
	Currency  string          `db:"currency"`
	Color     string          `db:"color"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
