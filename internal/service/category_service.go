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

type CategoryService struct {
	db         DB
	categories categoryStore
	costs      costStore
	logger     *zap.Logger
}

func NewCategoryService(db DB, categories categoryStore, costs costStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		db:         db,
		categories: categories,
		costs:      costs,
		logger:     logger,
	}
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	category := &models.Category{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      req.Title,
		CostsLimit: req.CostsLimit,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.categories.Create(ctx, s.db, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	resp := categoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, s.db, id, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCategoryNotFound)
	}
	resp := categoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, categoryResponse(category))
	}
	return resp, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, s.db, id, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCategoryNotFound)
	}

	category.Title = req.Title
	category.CostsLimit = req.CostsLimit
	category.UpdatedAt = time.Now()

	if err := s.categories.Update(ctx, s.db, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, translateNotFound(err, ErrCategoryNotFound)
	}

	resp := categoryResponse(category)
	return &resp, nil
}

// Delete removes the category; costs referencing it cascade away in the
// schema, and card balances deliberately keep the spent amounts.
func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, s.db, id, userID); err != nil {
		return translateNotFound(err, ErrCategoryNotFound)
	}
	return nil
}

// MonthSum reports the user-currency total of the category's costs for the
// given month. Display-side only, never enforced against CostsLimit.
func (s *CategoryService) MonthSum(ctx context.Context, userID, id uuid.UUID, month string) (*dto.CategorySumResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	if _, err := s.categories.GetByID(ctx, s.db, id, userID); err != nil {
		return nil, translateNotFound(err, ErrCategoryNotFound)
	}

	from, to := monthRange(m)
	sum, err := s.costs.SumByCategory(ctx, s.db, id, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.CategorySumResponse{
		Month: m.Format(monthLayout),
		Sum:   sum,
	}, nil
}

func categoryResponse(category *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:         category.ID.String(),
		Title:      category.Title,
		CostsLimit: category.CostsLimit,
		CreatedAt:  category.CreatedAt.Format(time.RFC3339),
	}
}
