package dto

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	Title      string           `json:"title" validate:"required"`
	CostsLimit *decimal.Decimal `json:"costs_limit,omitempty"`
}

type UpdateCategoryRequest struct {
	Title      string           `json:"title" validate:"required"`
	CostsLimit *decimal.Decimal `json:"costs_limit,omitempty"`
}

type CategoryResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	CostsLimit *decimal.Decimal `json:"costs_limit,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

type CategorySumResponse struct {
	Month string          `json:"month"`
	Sum   decimal.Decimal `json:"sum"`
}
