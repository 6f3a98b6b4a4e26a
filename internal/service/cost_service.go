package service

import (
	"context"
	"time"

	"costsmap/internal/dto"
	"costsmap/internal/models"
	"costsmap/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CostService orchestrates expense rows and the card balances they debit.
// The balance bookkeeping itself lives in the shared transaction mutator,
// instantiated here with the debit direction and cost-specific hooks.
type CostService struct {
	db         DB
	costs      costStore
	categories categoryStore
	cards      cardStore
	mutator    *transactionMutator
	logger     *zap.Logger
}

func NewCostService(db DB, costs costStore, categories categoryStore, cards cardStore, users userStore, logger *zap.Logger) *CostService {
	return &CostService{
		db:         db,
		costs:      costs,
		categories: categories,
		cards:      cards,
		mutator:    newTransactionMutator(db, users, cards, debit, logger),
		logger:     logger,
	}
}

func (s *CostService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCostRequest) (*dto.CostResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cost := &models.Cost{
		ID:                 uuid.New(),
		UserID:             userID,
		CardID:             req.CardID,
		CategoryID:         req.CategoryID,
		UserCurrencyAmount: req.Amount,
		CardCurrencyAmount: req.CardCurrencyAmount,
		Date:               date,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var (
		category *models.Category
		card     *models.Card
	)
	err = s.mutator.create(ctx, userID, costOperation(cost), mutationHooks{
		loadRelated: func(ctx context.Context, q repository.Querier) error {
			category, err = s.categories.GetByID(ctx, q, req.CategoryID, userID)
			return translateNotFound(err, ErrCategoryNotFound)
		},
		persist: func(ctx context.Context, q repository.Querier, target *models.Card) error {
			card = target
			return s.costs.Create(ctx, q, cost)
		},
	})
	if err != nil {
		return nil, err
	}

	resp := costResponse(cost, card, category)
	return &resp, nil
}

func (s *CostService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.CostResponse, error) {
	cost, err := s.costs.GetByID(ctx, s.db, id, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCostNotFound)
	}
	return s.resolve(ctx, cost)
}

// List returns the user's costs for the given month with their card and
// category resolved. Cards and categories are bulk-loaded once instead of
// per row.
func (s *CostService) List(ctx context.Context, userID uuid.UUID, month string) ([]dto.CostResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	from, to := monthRange(m)

	costs, err := s.costs.ListByUser(ctx, s.db, userID, from, to)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	cardByID := make(map[uuid.UUID]*models.Card, len(cards))
	for _, card := range cards {
		cardByID[card.ID] = card
	}
	categoryByID := make(map[uuid.UUID]*models.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	resp := make([]dto.CostResponse, 0, len(costs))
	for _, cost := range costs {
		resp = append(resp, costResponse(cost, cardByID[cost.CardID], categoryByID[cost.CategoryID]))
	}
	return resp, nil
}

func (s *CostService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateCostRequest) (*dto.CostResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	newOp := cardOperation{
		CardID:             req.CardID,
		UserCurrencyAmount: req.Amount,
		CardCurrencyAmount: req.CardCurrencyAmount,
	}

	var (
		cost     *models.Cost
		category *models.Category
		card     *models.Card
	)
	err = s.mutator.update(ctx, userID, newOp,
		func(ctx context.Context, q repository.Querier) (cardOperation, error) {
			cost, err = s.costs.GetByID(ctx, q, id, userID)
			if err != nil {
				return cardOperation{}, translateNotFound(err, ErrCostNotFound)
			}
			return costOperation(cost), nil
		},
		mutationHooks{
			loadRelated: func(ctx context.Context, q repository.Querier) error {
				category, err = s.categories.GetByID(ctx, q, req.CategoryID, userID)
				return translateNotFound(err, ErrCategoryNotFound)
			},
			persist: func(ctx context.Context, q repository.Querier, target *models.Card) error {
				card = target
				cost.CardID = req.CardID
				cost.CategoryID = req.CategoryID
				cost.UserCurrencyAmount = req.Amount
				cost.CardCurrencyAmount = req.CardCurrencyAmount
				cost.Date = date
				cost.UpdatedAt = time.Now()
				return s.costs.Update(ctx, q, cost)
			},
		},
	)
	if err != nil {
		return nil, err
	}

	resp := costResponse(cost, card, category)
	return &resp, nil
}

func (s *CostService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.mutator.remove(ctx, userID,
		func(ctx context.Context, q repository.Querier) (cardOperation, error) {
			cost, err := s.costs.GetByID(ctx, q, id, userID)
			if err != nil {
				return cardOperation{}, translateNotFound(err, ErrCostNotFound)
			}
			return costOperation(cost), nil
		},
		func(ctx context.Context, q repository.Querier) error {
			return s.costs.Delete(ctx, q, id, userID)
		},
	)
}

// MonthTotal reports the user-currency total spent in the given month.
func (s *CostService) MonthTotal(ctx context.Context, userID uuid.UUID, month string) (*dto.TotalResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	from, to := monthRange(m)
	total, err := s.costs.SumByUser(ctx, s.db, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.TotalResponse{
		Month: m.Format(monthLayout),
		Total: total,
	}, nil
}

func (s *CostService) resolve(ctx context.Context, cost *models.Cost) (*dto.CostResponse, error) {
	card, err := s.cards.GetByID(ctx, s.db, cost.CardID, cost.UserID)
	if err != nil {
		return nil, translateNotFound(err, ErrCardNotFound)
	}
	category, err := s.categories.GetByID(ctx, s.db, cost.CategoryID, cost.UserID)
	if err != nil {
		return nil, translateNotFound(err, ErrCategoryNotFound)
	}

	resp := costResponse(cost, card, category)
	return &resp, nil
}

func costOperation(cost *models.Cost) cardOperation {
	return cardOperation{
		CardID:             cost.CardID,
		UserCurrencyAmount: cost.UserCurrencyAmount,
		CardCurrencyAmount: cost.CardCurrencyAmount,
	}
}

func costResponse(cost *models.Cost, card *models.Card, category *models.Category) dto.CostResponse {
	resp := dto.CostResponse{
		ID:                 cost.ID.String(),
		Amount:             cost.UserCurrencyAmount,
		CardCurrencyAmount: cost.CardCurrencyAmount,
		Date:               cost.Date.Format(dateLayout),
		CreatedAt:          cost.CreatedAt.Format(time.RFC3339),
	}
	if card != nil {
		resp.Card = cardResponse(card)
	}
	if category != nil {
		resp.Category = categoryResponse(category)
	}
	return resp
}
