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

// IncomeService mirrors CostService with the credit direction and no
// category.
type IncomeService struct {
	db      DB
	incomes incomeStore
	cards   cardStore
	mutator *transactionMutator
	logger  *zap.Logger
}

func NewIncomeService(db DB, incomes incomeStore, cards cardStore, users userStore, logger *zap.Logger) *IncomeService {
	return &IncomeService{
		db:      db,
		incomes: incomes,
		cards:   cards,
		mutator: newTransactionMutator(db, users, cards, credit, logger),
		logger:  logger,
	}
}

func (s *IncomeService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateIncomeRequest) (*dto.IncomeResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	income := &models.Income{
		ID:                 uuid.New(),
		UserID:             userID,
		CardID:             req.CardID,
		UserCurrencyAmount: req.Amount,
		CardCurrencyAmount: req.CardCurrencyAmount,
		Date:               date,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var card *models.Card
	err = s.mutator.create(ctx, userID, incomeOperation(income), mutationHooks{
		persist: func(ctx context.Context, q repository.Querier, target *models.Card) error {
			card = target
			return s.incomes.Create(ctx, q, income)
		},
	})
	if err != nil {
		return nil, err
	}

	resp := incomeResponse(income, card)
	return &resp, nil
}

func (s *IncomeService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.IncomeResponse, error) {
	income, err := s.incomes.GetByID(ctx, s.db, id, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrIncomeNotFound)
	}

	card, err := s.cards.GetByID(ctx, s.db, income.CardID, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCardNotFound)
	}

	resp := incomeResponse(income, card)
	return &resp, nil
}

func (s *IncomeService) List(ctx context.Context, userID uuid.UUID, month string) ([]dto.IncomeResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	from, to := monthRange(m)

	incomes, err := s.incomes.ListByUser(ctx, s.db, userID, from, to)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	cardByID := make(map[uuid.UUID]*models.Card, len(cards))
	for _, card := range cards {
		cardByID[card.ID] = card
	}

	resp := make([]dto.IncomeResponse, 0, len(incomes))
	for _, income := range incomes {
		resp = append(resp, incomeResponse(income, cardByID[income.CardID]))
	}
	return resp, nil
}

func (s *IncomeService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateIncomeRequest) (*dto.IncomeResponse, error) {
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
		income *models.Income
		card   *models.Card
	)
	err = s.mutator.update(ctx, userID, newOp,
		func(ctx context.Context, q repository.Querier) (cardOperation, error) {
			income, err = s.incomes.GetByID(ctx, q, id, userID)
			if err != nil {
				return cardOperation{}, translateNotFound(err, ErrIncomeNotFound)
			}
			return incomeOperation(income), nil
		},
		mutationHooks{
			persist: func(ctx context.Context, q repository.Querier, target *models.Card) error {
				card = target
				income.CardID = req.CardID
				income.UserCurrencyAmount = req.Amount
				income.CardCurrencyAmount = req.CardCurrencyAmount
				income.Date = date
				income.UpdatedAt = time.Now()
				return s.incomes.Update(ctx, q, income)
			},
		},
	)
	if err != nil {
		return nil, err
	}

	resp := incomeResponse(income, card)
	return &resp, nil
}

func (s *IncomeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.mutator.remove(ctx, userID,
		func(ctx context.Context, q repository.Querier) (cardOperation, error) {
			income, err := s.incomes.GetByID(ctx, q, id, userID)
			if err != nil {
				return cardOperation{}, translateNotFound(err, ErrIncomeNotFound)
			}
			return incomeOperation(income), nil
		},
		func(ctx context.Context, q repository.Querier) error {
			return s.incomes.Delete(ctx, q, id, userID)
		},
	)
}

// MonthTotal reports the user-currency total received in the given month.
func (s *IncomeService) MonthTotal(ctx context.Context, userID uuid.UUID, month string) (*dto.TotalResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	from, to := monthRange(m)
	total, err := s.incomes.SumByUser(ctx, s.db, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.TotalResponse{
		Month: m.Format(monthLayout),
		Total: total,
	}, nil
}

func incomeOperation(income *models.Income) cardOperation {
	return cardOperation{
		CardID:             income.CardID,
		UserCurrencyAmount: income.UserCurrencyAmount,
		CardCurrencyAmount: income.CardCurrencyAmount,
	}
}

func incomeResponse(income *models.Income, card *models.Card) dto.IncomeResponse {
	resp := dto.IncomeResponse{
		ID:                 income.ID.String(),
		Amount:             income.UserCurrencyAmount,
		CardCurrencyAmount: income.CardCurrencyAmount,
		Date:               income.Date.Format(dateLayout),
		CreatedAt:          income.CreatedAt.Format(time.RFC3339),
	}
	if card != nil {
		resp.Card = cardResponse(card)
	}
	return resp
}
