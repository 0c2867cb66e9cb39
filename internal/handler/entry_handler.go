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

// EntryHandler handles ledger entry HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// EntryRequest represents the create/update entry request body
type EntryRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Direction   string  `json:"direction"`
	Amount      string  `json:"amount"`
	Method      string  `json:"method"`
	Note        *string `json:"note,omitempty"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Direction   string  `json:"direction"`
	Amount      string  `json:"amount"`
	Method      string  `json:"method"`
	Origin      string  `json:"origin"`
	Note        *string `json:"note,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// EntryListResponse represents the list response
type EntryListResponse struct {
	Data []EntryResponse `json:"data"`
}

func (r EntryRequest) toInput() (service.EntryInput, []ValidationError) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return service.EntryInput{}, []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		}
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.EntryInput{}, []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		}
	}
	return service.EntryInput{
		Date:        date,
		Description: r.Description,
		Category:    r.Category,
		Direction:   domain.Direction(r.Direction),
		Amount:      amount,
		Method:      domain.PaymentMethod(r.Method),
		Note:        r.Note,
	}, nil
}

// parsePeriodFilter reads the period query params shared by the listing and
// summary endpoints: month=YYYY-MM, year=YYYY, or from/to=YYYY-MM-DD.
func parsePeriodFilter(c echo.Context) (service.PeriodFilter, []ValidationError) {
	if monthParam := c.QueryParam("month"); monthParam != "" {
		month, err := domain.ParseYearMonth(monthParam)
		if err != nil {
			return service.PeriodFilter{}, []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			}
		}
		return service.PeriodFilter{Mode: service.PeriodMonth, Month: month}, nil
	}

	if yearParam := c.QueryParam("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil || year < 1970 || year > 2100 {
			return service.PeriodFilter{}, []ValidationError{
				{Field: "year", Message: "Must be a year between 1970 and 2100"},
			}
		}
		return service.PeriodFilter{Mode: service.PeriodYear, Year: year}, nil
	}

	fromParam := c.QueryParam("from")
	toParam := c.QueryParam("to")
	if fromParam != "" || toParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return service.PeriodFilter{}, []ValidationError{
				{Field: "from", Message: "Must be in YYYY-MM-DD format"},
			}
		}
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return service.PeriodFilter{}, []ValidationError{
				{Field: "to", Message: "Must be in YYYY-MM-DD format"},
			}
		}
		if to.Before(from) {
			return service.PeriodFilter{}, []ValidationError{
				{Field: "to", Message: "Must not be before 'from'"},
			}
		}
		return service.PeriodFilter{Mode: service.PeriodRange, From: from, To: to}, nil
	}

	return service.PeriodFilter{}, nil
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	entry, err := h.entryService.CreateEntry(userID, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "create entry")
	}

	log.Info().Str("user_id", userID.String()).Str("entry_id", entry.ID.String()).Str("description", entry.Description).Msg("Entry created")

	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// ListEntries handles GET /api/v1/entries
func (h *EntryHandler) ListEntries(c echo.Context) error {
	userID := middleware.GetUserID(c)

	filter, verrs := parsePeriodFilter(c)
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	entries, err := h.entryService.ListEntries(userID, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list entries")
		return NewInternalError(c, "Failed to list entries")
	}

	response := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = toEntryResponse(entry)
	}

	return c.JSON(http.StatusOK, EntryListResponse{Data: response})
}

// GetEntry handles GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	entry, err := h.entryService.GetEntryByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Failed to get entry")
		return NewInternalError(c, "Failed to get entry")
	}

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// UpdateEntry handles PUT /api/v1/entries/:id
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	entry, err := h.entryService.UpdateEntry(userID, id, input)
	if err != nil {
		return h.handleServiceError(c, err, userID, "update entry")
	}

	log.Info().Str("user_id", userID.String()).Str("entry_id", entry.ID.String()).Msg("Entry updated")

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if err := h.entryService.DeleteEntry(userID, id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Failed to delete entry")
		return NewInternalError(c, "Failed to delete entry")
	}

	log.Info().Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Entry deleted")

	return c.NoContent(http.StatusNoContent)
}

// SummaryResponse represents the period summary response
type SummaryResponse struct {
	TotalIncome  string                  `json:"totalIncome"`
	TotalExpense string                  `json:"totalExpense"`
	NetBalance   string                  `json:"netBalance"`
	ByCategory   []CategoryTotalResponse `json:"byCategory"`
}

// CategoryTotalResponse is one category's share of the summary
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// Summary handles GET /api/v1/entries/summary
func (h *EntryHandler) Summary(c echo.Context) error {
	userID := middleware.GetUserID(c)

	filter, verrs := parsePeriodFilter(c)
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}

	summary, err := h.entryService.Summarize(userID, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to summarize entries")
		return NewInternalError(c, "Failed to summarize entries")
	}

	byCategory := make([]CategoryTotalResponse, len(summary.ByCategory))
	for i, ct := range summary.ByCategory {
		byCategory[i] = CategoryTotalResponse{Category: ct.Category, Total: ct.Total.StringFixed(2)}
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		TotalIncome:  summary.TotalIncome.StringFixed(2),
		TotalExpense: summary.TotalExpense.StringFixed(2),
		NetBalance:   summary.NetBalance.StringFixed(2),
		ByCategory:   byCategory,
	})
}

// handleServiceError handles common service errors
func (h *EntryHandler) handleServiceError(c echo.Context, err error, userID uuid.UUID, operation string) error {
	if errors.Is(err, domain.ErrEntryNotFound) {
		return NewNotFoundError(c, "Entry not found")
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
	if errors.Is(err, domain.ErrInvalidDirection) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "direction", Message: "Direction must be 'income' or 'expense'"},
		})
	}
	if errors.Is(err, domain.ErrInvalidMethod) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "method", Message: "Unknown payment method"},
		})
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("operation", operation).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}

// Helper function to convert domain.LedgerEntry to EntryResponse
func toEntryResponse(entry *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		Date:        entry.Date.Format("2006-01-02"),
		Description: entry.Description,
		Category:    entry.Category,
		Direction:   string(entry.Direction),
		Amount:      entry.Amount.StringFixed(2),
		Method:      string(entry.Method),
		Origin:      string(entry.Origin),
		Note:        entry.Note,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   entry.UpdatedAt.Format(time.RFC3339),
	}
}
