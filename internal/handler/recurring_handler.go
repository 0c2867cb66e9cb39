package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecurringHandler handles recurring item HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
	}
}

// RecurringRequest represents the create/update recurring item request body
type RecurringRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Direction   string  `json:"direction"`
	Amount      string  `json:"amount"`
	DueDay      int     `json:"dueDay"`
	StartMonth  string  `json:"startMonth"`
	EndMonth    *string `json:"endMonth,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// RecurringResponse represents a recurring item in API responses
type RecurringResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Direction   string  `json:"direction"`
	Amount      string  `json:"amount"`
	DueDay      int     `json:"dueDay"`
	StartMonth  string  `json:"startMonth"`
	EndMonth    *string `json:"endMonth,omitempty"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// RecurringListResponse represents the list response
type RecurringListResponse struct {
	Data []RecurringResponse `json:"data"`
}

func (r RecurringRequest) toInput() (service.RecurringInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.RecurringInput{}, err
	}
	return service.RecurringInput{
		Description: r.Description,
		Category:    r.Category,
		Direction:   domain.Direction(r.Direction),
		Amount:      amount,
		DueDay:      r.DueDay,
		StartMonth:  r.StartMonth,
		EndMonth:    r.EndMonth,
		IsActive:    r.IsActive,
	}, nil
}

// CreateRecurring handles POST /api/v1/recurring-items
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req RecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := req.toInput()
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.recurringService.CreateRecurring(userID, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "create recurring item")
	}

	log.Info().Str("user_id", userID.String()).Str("recurring_id", item.ID.String()).Str("description", item.Description).Msg("Recurring item created")

	return c.JSON(http.StatusCreated, toRecurringResponse(item))
}

// ListRecurring handles GET /api/v1/recurring-items
func (h *RecurringHandler) ListRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)

	// Check for active query param
	var activeOnly *bool
	if activeParam := c.QueryParam("active"); activeParam != "" {
		active := activeParam == "true"
		activeOnly = &active
	}

	items, err := h.recurringService.ListRecurring(userID, activeOnly)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list recurring items")
		return NewInternalError(c, "Failed to list recurring items")
	}

	response := make([]RecurringResponse, len(items))
	for i, item := range items {
		response[i] = toRecurringResponse(item)
	}

	return c.JSON(http.StatusOK, RecurringListResponse{Data: response})
}

// GetRecurring handles GET /api/v1/recurring-items/:id
func (h *RecurringHandler) GetRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring item ID", nil)
	}

	item, err := h.recurringService.GetRecurringByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring item not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("recurring_id", id.String()).Msg("Failed to get recurring item")
		return NewInternalError(c, "Failed to get recurring item")
	}

	return c.JSON(http.StatusOK, toRecurringResponse(item))
}

// UpdateRecurring handles PUT /api/v1/recurring-items/:id
func (h *RecurringHandler) UpdateRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring item ID", nil)
	}

	var req RecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := req.toInput()
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.recurringService.UpdateRecurring(userID, id, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "update recurring item")
	}

	log.Info().Str("user_id", userID.String()).Str("recurring_id", item.ID.String()).Msg("Recurring item updated")

	return c.JSON(http.StatusOK, toRecurringResponse(item))
}

// DeleteRecurring handles DELETE /api/v1/recurring-items/:id
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring item ID", nil)
	}

	if err := h.recurringService.DeleteRecurring(userID, id); err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring item not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("recurring_id", id.String()).Msg("Failed to delete recurring item")
		return NewInternalError(c, "Failed to delete recurring item")
	}

	log.Info().Str("user_id", userID.String()).Str("recurring_id", id.String()).Msg("Recurring item deleted")

	return c.NoContent(http.StatusNoContent)
}

// ToggleActive handles PATCH /api/v1/recurring-items/:id/toggle-active
func (h *RecurringHandler) ToggleActive(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring item ID", nil)
	}

	item, err := h.recurringService.ToggleActive(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring item not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("recurring_id", id.String()).Msg("Failed to toggle recurring item active status")
		return NewInternalError(c, "Failed to toggle active status")
	}

	statusText := "deactivated"
	if item.IsActive {
		statusText = "activated"
	}
	log.Info().Str("user_id", userID.String()).Str("recurring_id", item.ID.String()).Str("status", statusText).Msg("Recurring item active status toggled")

	return c.JSON(http.StatusOK, toRecurringResponse(item))
}

// GenerateRequest represents the request to generate entries from recurring items
type GenerateRequest struct {
	Month string `json:"month,omitempty"` // Optional YYYY-MM, defaults to current month
}

// GenerateResponse represents the response from generating entries
type GenerateResponse struct {
	GeneratedCount int      `json:"generatedCount"`
	SkippedCount   int      `json:"skippedCount"`
	Errors         []string `json:"errors,omitempty"`
}

// Generate handles POST /api/v1/recurring-items/generate
func (h *RecurringHandler) Generate(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target := domain.YearMonthOf(time.Now())
	if req.Month != "" {
		parsed, err := domain.ParseYearMonth(req.Month)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		target = parsed
	}

	result, err := h.recurringService.GenerateEntries(userID, target)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("month", target.String()).Msg("Failed to generate entries")
		return NewInternalError(c, "Failed to generate entries")
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		GeneratedCount: result.Generated,
		SkippedCount:   result.Skipped,
		Errors:         result.Errors,
	})
}

// handleServiceError handles common service errors
func (h *RecurringHandler) handleServiceError(c echo.Context, err error, userID uuid.UUID, operation string) error {
	if errors.Is(err, domain.ErrRecurringNotFound) {
		return NewNotFoundError(c, "Recurring item not found")
	}
	if errors.Is(err, domain.ErrDescriptionRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	}
	if errors.Is(err, domain.ErrDescriptionTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	if errors.Is(err, domain.ErrInvalidDirection) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "direction", Message: "Direction must be 'income' or 'expense'"},
		})
	}
	if errors.Is(err, domain.ErrInvalidDueDay) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "dueDay", Message: "Due day must be between 1 and 31"},
		})
	}
	if errors.Is(err, domain.ErrInvalidMonth) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "startMonth", Message: "Months must be in YYYY-MM format"},
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "endMonth", Message: "End month must not be before start month"},
		})
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("operation", operation).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}

// Helper function to convert domain.RecurringItem to RecurringResponse
func toRecurringResponse(item *domain.RecurringItem) RecurringResponse {
	return RecurringResponse{
		ID:          item.ID.String(),
		Description: item.Description,
		Category:    item.Category,
		Direction:   string(item.Direction),
		Amount:      item.Amount.StringFixed(2),
		DueDay:      item.DueDay,
		StartMonth:  item.StartMonth,
		EndMonth:    item.EndMonth,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}
