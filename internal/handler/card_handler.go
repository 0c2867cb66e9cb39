package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CardHandler handles credit card HTTP requests
type CardHandler struct {
	cardService *service.CardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CardRequest represents the create/update card request body
type CardRequest struct {
	Name            string `json:"name"`
	TotalLimit      string `json:"totalLimit"`
	UsedLimit       string `json:"usedLimit"`
	DueDay          int    `json:"dueDay"`
	BestPurchaseDay *int   `json:"bestPurchaseDay,omitempty"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// CardResponse represents a credit card in API responses
type CardResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TotalLimit      string `json:"totalLimit"`
	UsedLimit       string `json:"usedLimit"`
	AvailableLimit  string `json:"availableLimit"`
	DueDay          int    `json:"dueDay"`
	BestPurchaseDay *int   `json:"bestPurchaseDay,omitempty"`
	IsActive        bool   `json:"isActive"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// InvoiceResponse represents a card invoice in API responses
type InvoiceResponse struct {
	ID             string   `json:"id"`
	CardID         string   `json:"cardId"`
	ReferenceMonth string   `json:"referenceMonth"`
	TotalAmount    string   `json:"totalAmount"`
	PaidAmount     string   `json:"paidAmount"`
	DueDate        string   `json:"dueDate"`
	Status         string   `json:"status"`
	EntryIDs       []string `json:"entryIds"`
	CreatedAt      string   `json:"createdAt"`
	PaidAt         *string  `json:"paidAt,omitempty"`
}

// ComputeInvoiceRequest represents the invoice calculation request body
type ComputeInvoiceRequest struct {
	Month string `json:"month"` // YYYY-MM, defaults to the current month
}

// InvoiceAlertsResponse represents the due-date alert list
type InvoiceAlertsResponse struct {
	Alerts []InvoiceResponse `json:"alerts"`
	Total  int               `json:"total"`
}

func (r CardRequest) toInput() (service.CardInput, []ValidationError) {
	totalLimit, err := decimal.NewFromString(r.TotalLimit)
	if err != nil {
		return service.CardInput{}, []ValidationError{
			{Field: "totalLimit", Message: "Must be a valid decimal number"},
		}
	}
	usedLimit := decimal.Zero
	if r.UsedLimit != "" {
		usedLimit, err = decimal.NewFromString(r.UsedLimit)
		if err != nil {
			return service.CardInput{}, []ValidationError{
				{Field: "usedLimit", Message: "Must be a valid decimal number"},
			}
		}
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.CardInput{
		Name:            r.Name,
		TotalLimit:      totalLimit,
		UsedLimit:       usedLimit,
		DueDay:          r.DueDay,
		BestPurchaseDay: r.BestPurchaseDay,
		IsActive:        isActive,
	}, nil
}

// CreateCard handles POST /api/v1/cards
func (h *CardHandler) CreateCard(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	card, err := h.cardService.CreateCard(userID, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "create card")
	}

	log.Info().Str("user_id", userID.String()).Str("card_id", card.ID.String()).Str("name", card.Name).Msg("Credit card created")

	return c.JSON(http.StatusCreated, toCardResponse(card))
}

// ListCards handles GET /api/v1/cards
func (h *CardHandler) ListCards(c echo.Context) error {
	userID := middleware.GetUserID(c)

	cards, err := h.cardService.ListCards(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list cards")
		return NewInternalError(c, "Failed to list cards")
	}

	response := make([]CardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCardResponse(card)
	}

	return c.JSON(http.StatusOK, response)
}

// GetCard handles GET /api/v1/cards/:id
func (h *CardHandler) GetCard(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	card, err := h.cardService.GetCard(userID, id)
	if err != nil {
		return h.handleServiceError(c, err, userID, "get card")
	}

	return c.JSON(http.StatusOK, toCardResponse(card))
}

// UpdateCard handles PUT /api/v1/cards/:id
func (h *CardHandler) UpdateCard(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	var req CardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	card, err := h.cardService.UpdateCard(userID, id, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "update card")
	}

	log.Info().Str("user_id", userID.String()).Str("card_id", card.ID.String()).Msg("Credit card updated")

	return c.JSON(http.StatusOK, toCardResponse(card))
}

// DeleteCard handles DELETE /api/v1/cards/:id
func (h *CardHandler) DeleteCard(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	if err := h.cardService.DeleteCard(userID, id); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return NewNotFoundError(c, "Card not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("card_id", id.String()).Msg("Failed to delete card")
		return NewInternalError(c, "Failed to delete card")
	}

	log.Info().Str("user_id", userID.String()).Str("card_id", id.String()).Msg("Credit card deleted")

	return c.NoContent(http.StatusNoContent)
}

// ListInvoices handles GET /api/v1/cards/:id/invoices?month=YYYY-MM
func (h *CardHandler) ListInvoices(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	var month *domain.YearMonth
	if monthParam := c.QueryParam("month"); monthParam != "" {
		parsed, err := domain.ParseYearMonth(monthParam)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		month = &parsed
	}

	invoices, err := h.cardService.ListInvoices(userID, id, month)
	if err != nil {
		return h.handleServiceError(c, err, userID, "list invoices")
	}

	response := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		response[i] = toInvoiceResponse(invoice)
	}

	return c.JSON(http.StatusOK, response)
}

// ComputeInvoice handles POST /api/v1/cards/:id/invoices/compute
func (h *CardHandler) ComputeInvoice(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	var req ComputeInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	month := domain.YearMonthOf(time.Now())
	if req.Month != "" {
		month, err = domain.ParseYearMonth(req.Month)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
	}

	invoice, err := h.cardService.ComputeInvoice(userID, id, month)
	if err != nil {
		return h.handleServiceError(c, err, userID, "compute invoice")
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// InvoiceAlerts handles GET /api/v1/cards/alerts?daysAhead=7
func (h *CardHandler) InvoiceAlerts(c echo.Context) error {
	userID := middleware.GetUserID(c)

	daysAhead := 7
	if param := c.QueryParam("daysAhead"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 1 {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "daysAhead", Message: "Must be a positive integer"},
			})
		}
		daysAhead = parsed
	}

	alerts, err := h.cardService.UpcomingInvoiceAlerts(userID, daysAhead, time.Now())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list invoice alerts")
		return NewInternalError(c, "Failed to list invoice alerts")
	}

	response := make([]InvoiceResponse, len(alerts))
	for i, invoice := range alerts {
		response[i] = toInvoiceResponse(invoice)
	}

	return c.JSON(http.StatusOK, InvoiceAlertsResponse{
		Alerts: response,
		Total:  len(response),
	})
}

// handleServiceError handles common service errors
func (h *CardHandler) handleServiceError(c echo.Context, err error, userID uuid.UUID, operation string) error {
	if errors.Is(err, domain.ErrCardNotFound) {
		return NewNotFoundError(c, "Card not found")
	}
	if errors.Is(err, domain.ErrInvoiceNotFound) {
		return NewNotFoundError(c, "Invoice not found")
	}
	if errors.Is(err, domain.ErrDescriptionRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if errors.Is(err, domain.ErrDescriptionTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "totalLimit", Message: "Limits must be positive"},
		})
	}
	if errors.Is(err, domain.ErrInvalidDueDay) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "dueDay", Message: "Day must be between 1 and 31"},
		})
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("operation", operation).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}

// Helper function to convert domain.CreditCard to CardResponse
func toCardResponse(card *domain.CreditCard) CardResponse {
	return CardResponse{
		ID:              card.ID.String(),
		Name:            card.Name,
		TotalLimit:      card.TotalLimit.StringFixed(2),
		UsedLimit:       card.UsedLimit.StringFixed(2),
		AvailableLimit:  card.AvailableLimit().StringFixed(2),
		DueDay:          card.DueDay,
		BestPurchaseDay: card.BestPurchaseDay,
		IsActive:        card.IsActive,
		CreatedAt:       card.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       card.UpdatedAt.Format(time.RFC3339),
	}
}

// Helper function to convert domain.CardInvoice to InvoiceResponse
func toInvoiceResponse(invoice *domain.CardInvoice) InvoiceResponse {
	entryIDs := make([]string, len(invoice.EntryIDs))
	for i, id := range invoice.EntryIDs {
		entryIDs[i] = id.String()
	}
	var paidAt *string
	if invoice.PaidAt != nil {
		s := invoice.PaidAt.Format(time.RFC3339)
		paidAt = &s
	}
	return InvoiceResponse{
		ID:             invoice.ID.String(),
		CardID:         invoice.CardID.String(),
		ReferenceMonth: invoice.ReferenceMonth,
		TotalAmount:    invoice.TotalAmount.StringFixed(2),
		PaidAmount:     invoice.PaidAmount.StringFixed(2),
		DueDate:        invoice.DueDate.Format("2006-01-02"),
		Status:         string(invoice.Status),
		EntryIDs:       entryIDs,
		CreatedAt:      invoice.CreatedAt.Format(time.RFC3339),
		PaidAt:         paidAt,
	}
}
