package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income is a deposit that credits a card. Same amount semantics as Cost,
// minus the category.
type Income struct {
	ID                 uuid.UUID        `db:"id"`
	UserID             uuid.UUID        `db:"user_id"`
	CardID             uuid.UUID        `db:"card_id"`
	UserCurrencyAmount decimal.Decimal  `db:"user_currency_amount"`
	CardCurrencyAmount *decimal.Decimal `db:"card_currency_amount"`
	Date               time.Time        `db:"date"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}

// ResolvedAmount is the amount actually applied to the card balance.
func (i *Income) ResolvedAmount() decimal.Decimal {
	if i.CardCurrencyAmount != nil {
		return *i.CardCurrencyAmount
	}
	return i.UserCurrencyAmount
}
