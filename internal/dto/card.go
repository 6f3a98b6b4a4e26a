package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCardRequest struct {
	Title    string `json:"title" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Color    string `json:"color"`
}

type UpdateCardRequest struct {
	Title    string `json:"title" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Color    string `json:"color"`
}

type CardResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

type TransferRequest struct {
	FromID     uuid.UUID        `json:"from_id" validate:"required"`
	ToID       uuid.UUID        `json:"to_id" validate:"required"`
	FromAmount decimal.Decimal  `json:"from_amount" validate:"required"`
	ToAmount   *decimal.Decimal `json:"to_amount,omitempty"`
}

type TransferResponse struct {
	From CardResponse `json:"from"`
	To   CardResponse `json:"to"`
}
