package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateIncomeRequest struct {
	Amount             decimal.Decimal  `json:"amount" validate:"required"`
	CardCurrencyAmount *decimal.Decimal `json:"card_currency_amount,omitempty"`
	CardID             uuid.UUID        `json:"card_id" validate:"required"`
	Date               string           `json:"date"`
}

type UpdateIncomeRequest struct {
	Amount             decimal.Decimal  `json:"amount" validate:"required"`
	CardCurrencyAmount *decimal.Decimal `json:"card_currency_amount,omitempty"`
	CardID             uuid.UUID        `json:"card_id" validate:"required"`
	Date               string           `json:"date"`
}

type IncomeResponse struct {
	ID                 string           `json:"id"`
	Amount             decimal.Decimal  `json:"amount"`
	CardCurrencyAmount *decimal.Decimal `json:"card_currency_amount,omitempty"`
	Date               string           `json:"date"`
	Card               CardResponse     `json:"card"`
	CreatedAt          string           `json:"created_at"`
}
