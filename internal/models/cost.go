package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cost is an expense that debits a card. UserCurrencyAmount is always set;
// CardCurrencyAmount is set when the card's currency differs from the user's
// default and takes precedence for the balance update.
type Cost struct {
	ID                 uuid.UUID        `db:"id"`
	UserID             uuid.UUID        `db:"user_id"`
	CardID             uuid.UUID        `db:"card_id"`
	CategoryID         uuid.UUID        `db:"category_id"`
	UserCurrencyAmount decimal.Decimal  `db:"user_currency_amount"`
	CardCurrencyAmount *decimal.Decimal `db:"card_currency_amount"`
	Date               time.Time        `db:"date"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}

// ResolvedAmount is the amount actually applied to the card balance.
func (c *Cost) ResolvedAmount() decimal.Decimal {
	if c.CardCurrencyAmount != nil {
		return *c.CardCurrencyAmount
	}
	return c.UserCurrencyAmount
}
