package handlers

import (
	"costsmap/internal/dto"
	"costsmap/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Security Bearer
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} map[string]string
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	resp, err := h.categoryService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List the user's categories
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.categoryService.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Security Bearer
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	resp, err := h.categoryService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category"
// @Security Bearer
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	resp, err := h.categoryService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a category and its costs
// @Tags categories
// @Param id path string true "Category ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	if err := h.categoryService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MonthSum godoc
// @Summary Sum of the category's costs for a month
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {object} dto.CategorySumResponse
// @Failure 404 {object} map[string]string
// @Router /categories/{id}/sum [get]
func (h *CategoryHandler) MonthSum(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	resp, err := h.categoryService.MonthSum(c.Context(), userID, id, c.Query("month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}
