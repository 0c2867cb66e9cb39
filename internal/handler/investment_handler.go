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

// InvestmentHandler handles investment HTTP requests
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// InvestmentRequest represents the create/update investment request body
type InvestmentRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Asset  string  `json:"asset"`
	Amount string  `json:"amount"`
	Note   *string `json:"note,omitempty"`
}

// InvestmentResponse represents an investment in API responses
type InvestmentResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Asset     string  `json:"asset"`
	Amount    string  `json:"amount"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// InvestmentListResponse represents the list response
type InvestmentListResponse struct {
	Data          []InvestmentResponse `json:"data"`
	TotalInvested string               `json:"totalInvested"`
}

func (r InvestmentRequest) toInput() (service.InvestmentInput, []ValidationError) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return service.InvestmentInput{}, []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		}
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.InvestmentInput{}, []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		}
	}
	return service.InvestmentInput{
		Date:   date,
		Asset:  r.Asset,
		Amount: amount,
		Note:   r.Note,
	}, nil
}

// CreateInvestment handles POST /api/v1/investments
func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	inv, err := h.investmentService.CreateInvestment(userID, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "create investment")
	}

	log.Info().Str("user_id", userID.String()).Str("investment_id", inv.ID.String()).Str("asset", inv.Asset).Msg("Investment created")

	return c.JSON(http.StatusCreated, toInvestmentResponse(inv))
}

// ListInvestments handles GET /api/v1/investments
func (h *InvestmentHandler) ListInvestments(c echo.Context) error {
	userID := middleware.GetUserID(c)

	filter, verrs := parsePeriodFilter(c)
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	invs, err := h.investmentService.ListInvestments(userID, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list investments")
		return NewInternalError(c, "Failed to list investments")
	}

	total := decimal.Zero
	response := make([]InvestmentResponse, len(invs))
	for i, inv := range invs {
		response[i] = toInvestmentResponse(inv)
		total = total.Add(inv.Amount)
	}

	return c.JSON(http.StatusOK, InvestmentListResponse{
		Data:          response,
		TotalInvested: total.StringFixed(2),
	})
}

// UpdateInvestment handles PUT /api/v1/investments/:id
func (h *InvestmentHandler) UpdateInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid investment ID", nil)
	}

	var req InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	inv, err := h.investmentService.UpdateInvestment(userID, id, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "update investment")
	}

	log.Info().Str("user_id", userID.String()).Str("investment_id", inv.ID.String()).Msg("Investment updated")

	return c.JSON(http.StatusOK, toInvestmentResponse(inv))
}

// DeleteInvestment handles DELETE /api/v1/investments/:id
func (h *InvestmentHandler) DeleteInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid investment ID", nil)
	}

	if err := h.investmentService.DeleteInvestment(userID, id); err != nil {
		if errors.Is(err, domain.ErrInvestmentNotFound) {
			return NewNotFoundError(c, "Investment not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("investment_id", id.String()).Msg("Failed to delete investment")
		return NewInternalError(c, "Failed to delete investment")
	}

	log.Info().Str("user_id", userID.String()).Str("investment_id", id.String()).Msg("Investment deleted")

	return c.NoContent(http.StatusNoContent)
}

// handleServiceError handles common service errors
func (h *InvestmentHandler) handleServiceError(c echo.Context, err error, userID uuid.UUID, operation string) error {
	if errors.Is(err, domain.ErrInvestmentNotFound) {
		return NewNotFoundError(c, "Investment not found")
	}
	if errors.Is(err, domain.ErrDescriptionRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "asset", Message: "Asset is required"},
		})
	}
	if errors.Is(err, domain.ErrDescriptionTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "asset", Message: "Asset must be 255 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrInvalidDate) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("operation", operation).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}

// Helper function to convert domain.Investment to InvestmentResponse
func toInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:        inv.ID.String(),
		Date:      inv.Date.Format("2006-01-02"),
		Asset:     inv.Asset,
		Amount:    inv.Amount.StringFixed(2),
		Note:      inv.Note,
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: inv.UpdatedAt.Format(time.RFC3339),
	}
}
