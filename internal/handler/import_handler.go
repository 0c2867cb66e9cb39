package handler

import (
	"net/http"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxStatementSize is the largest accepted statement upload
const MaxStatementSize = 5 << 20 // 5 MiB

// ImportHandler handles bank statement import HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// StatementTransactionResponse is a parsed statement line ready for review
type StatementTransactionResponse struct {
	Date              string  `json:"date"`
	Description       string  `json:"description"`
	Direction         string  `json:"direction"`
	Amount            string  `json:"amount"`
	SuggestedCategory string  `json:"suggestedCategory,omitempty"`
	IsDuplicate       bool    `json:"isDuplicate"`
	DuplicateOf       *string `json:"duplicateOf,omitempty"`
}

// ParseStatementResponse represents the statement preview
type ParseStatementResponse struct {
	Transactions []StatementTransactionResponse `json:"transactions"`
	Skipped      []string                       `json:"skipped,omitempty"`
}

// ParseStatement handles POST /api/v1/import/statement (multipart upload)
func (h *ImportHandler) ParseStatement(c echo.Context) error {
	userID := middleware.GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: "A CSV file upload is required"},
		})
	}
	if fileHeader.Size > MaxStatementSize {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: "File exceeds the 5 MiB limit"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to open uploaded statement")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	txns, skipped, err := h.importService.ParseStatement(userID, file)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to parse statement")
		return NewValidationError(c, "Could not parse the statement CSV", nil)
	}

	log.Info().Str("user_id", userID.String()).Int("transactions", len(txns)).Int("skipped", len(skipped)).Msg("Statement parsed")

	response := make([]StatementTransactionResponse, len(txns))
	for i, txn := range txns {
		response[i] = toStatementTransactionResponse(txn)
	}

	return c.JSON(http.StatusOK, ParseStatementResponse{
		Transactions: response,
		Skipped:      skipped,
	})
}

// ConfirmTransactionRequest is one reviewed transaction to persist
type ConfirmTransactionRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
	Direction   string `json:"direction"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	IsDuplicate bool   `json:"isDuplicate"`
}

// ConfirmImportRequest represents the confirm import request body
type ConfirmImportRequest struct {
	Transactions []ConfirmTransactionRequest `json:"transactions"`
}

// ConfirmImportResponse represents the confirm import response
type ConfirmImportResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ConfirmImport handles POST /api/v1/import/confirm
func (h *ImportHandler) ConfirmImport(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req ConfirmImportRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.Transactions) == 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "transactions", Message: "At least one transaction is required"},
		})
	}

	txns := make([]*service.StatementTransaction, 0, len(req.Transactions))
	for _, tr := range req.Transactions {
		date, err := time.Parse("2006-01-02", tr.Date)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "transactions", Message: "Dates must be in YYYY-MM-DD format"},
			})
		}
		amount, err := decimal.NewFromString(tr.Amount)
		if err != nil || amount.LessThanOrEqual(decimal.Zero) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "transactions", Message: "Amounts must be positive decimal numbers"},
			})
		}
		direction := domain.Direction(tr.Direction)
		if direction != domain.DirectionIncome && direction != domain.DirectionExpense {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "transactions", Message: "Direction must be 'income' or 'expense'"},
			})
		}
		txns = append(txns, &service.StatementTransaction{
			Date:              date,
			Description:       tr.Description,
			Direction:         direction,
			Amount:            amount,
			SuggestedCategory: tr.Category,
			IsDuplicate:       tr.IsDuplicate,
		})
	}

	result, err := h.importService.ConfirmImport(userID, txns)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to confirm import")
		return NewInternalError(c, "Failed to confirm import")
	}

	return c.JSON(http.StatusOK, ConfirmImportResponse{
		Created: result.Created,
		Skipped: result.Skipped,
	})
}

func toStatementTransactionResponse(txn *service.StatementTransaction) StatementTransactionResponse {
	resp := StatementTransactionResponse{
		Date:              txn.Date.Format("2006-01-02"),
		Description:       txn.Description,
		Direction:         string(txn.Direction),
		Amount:            txn.Amount.StringFixed(2),
		SuggestedCategory: txn.SuggestedCategory,
		IsDuplicate:       txn.IsDuplicate,
	}
	if txn.DuplicateOf != nil {
		id := txn.DuplicateOf.String()
		resp.DuplicateOf = &id
	}
	return resp
}
