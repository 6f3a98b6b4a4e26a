package service

import "errors"

// Expected outcomes of normal usage. Handlers switch on these with errors.Is
// to pick a status code; anything else is a genuine server failure.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCardNotFound     = errors.New("card not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCostNotFound     = errors.New("cost not found")
	ErrIncomeNotFound   = errors.New("income not found")

	ErrInsufficientFunds         = errors.New("insufficient funds on card")
	ErrMissingCardCurrencyAmount = errors.New("card currency amount is required when card currency differs from user currency")
	ErrMissingToAmount           = errors.New("to_amount is required when transferring between cards with different currencies")
	ErrSameCardTransfer          = errors.New("cannot transfer between a card and itself")
	ErrDuplicateTitle            = errors.New("title is already in use")

	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
)
