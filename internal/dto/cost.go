package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amount is in the user's default currency; CardCurrencyAmount must be set
// when the target card uses a different currency.
type CreateCostRequest struct {
	Amount             decimal.Decimal  `json:"amount" validate:"required"`
	CardCurrencyAmount *decimal.Decimal `json:"card_currency_amount,omitempty"`
	CategoryID         uuid.UUID        `json:"category_id" validate:"required"`
	CardID             uuid.UUID        `json:"card_id" validate:"required"`
	Date               string           `json:"date"`
}

type UpdateCostRequest struct {
	Amount             decimal.Decimal  `json:"amount" validate:"required"`
	CardCurrencyAmount *decimal.Decimal `json:"card_currency_amount,omitempty"`
	CategoryID         uuid.UUID        `json:"category_id" validate:"required"`
	CardID             uuid.UUID        `json:"card_id" validate:"required"`
	Date               string           `json:"date"`
}

type CostResponse struct {
	ID                 string           `json:"id"`
	Amount             decimal.Decimal  `json:"amount"`
	CardCurrencyAmount *decimal.Decimal `json:"card_currency_amount,omitempty"`
	Date               string           `json:"date"`
	Card               CardResponse     `json:"card"`
	Category           CategoryResponse `json:"category"`
	CreatedAt          string           `json:"created_at"`
}

type TotalResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
