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
)

// CategoryHandler handles category rule and suggestion HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// RuleRequest represents the create rule request body
type RuleRequest struct {
	Pattern   string `json:"pattern"`
	MatchType string `json:"matchType,omitempty"`
	Category  string `json:"category"`
}

// RuleResponse represents a category rule in API responses
type RuleResponse struct {
	ID        string `json:"id"`
	Pattern   string `json:"pattern"`
	MatchType string `json:"matchType"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
}

// RuleListResponse represents the list response
type RuleListResponse struct {
	Data []RuleResponse `json:"data"`
}

// SuggestResponse represents a category suggestion
type SuggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CreateRule handles POST /api/v1/category-rules
func (h *CategoryHandler) CreateRule(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req RuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	rule, err := h.categoryService.CreateRule(userID, service.RuleInput{
		Pattern:   req.Pattern,
		MatchType: domain.MatchType(req.MatchType),
		Category:  req.Category,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMatchType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "matchType", Message: "Match type must be 'substring' or 'exact'"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "pattern", Message: "Pattern and category are required"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category rule")
		return NewInternalError(c, "Failed to create category rule")
	}

	log.Info().Str("user_id", userID.String()).Str("rule_id", rule.ID.String()).Str("pattern", rule.Pattern).Msg("Category rule created")

	return c.JSON(http.StatusCreated, toRuleResponse(rule))
}

// ListRules handles GET /api/v1/category-rules
func (h *CategoryHandler) ListRules(c echo.Context) error {
	userID := middleware.GetUserID(c)

	rules, err := h.categoryService.ListRules(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list category rules")
		return NewInternalError(c, "Failed to list category rules")
	}

	response := make([]RuleResponse, len(rules))
	for i, rule := range rules {
		response[i] = toRuleResponse(rule)
	}

	return c.JSON(http.StatusOK, RuleListResponse{Data: response})
}

// DeleteRule handles DELETE /api/v1/category-rules/:id
func (h *CategoryHandler) DeleteRule(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	if err := h.categoryService.DeleteRule(userID, id); err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return NewNotFoundError(c, "Category rule not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("rule_id", id.String()).Msg("Failed to delete category rule")
		return NewInternalError(c, "Failed to delete category rule")
	}

	log.Info().Str("user_id", userID.String()).Str("rule_id", id.String()).Msg("Category rule deleted")

	return c.NoContent(http.StatusNoContent)
}

// Suggest handles GET /api/v1/categories/suggest?description=...
func (h *CategoryHandler) Suggest(c echo.Context) error {
	userID := middleware.GetUserID(c)

	description := c.QueryParam("description")
	if description == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	}

	category, err := h.categoryService.SuggestCategory(userID, description)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to suggest category")
		return NewInternalError(c, "Failed to suggest category")
	}

	return c.JSON(http.StatusOK, SuggestResponse{
		Description: description,
		Category:    category,
	})
}

// Helper function to convert domain.CategoryRule to RuleResponse
func toRuleResponse(rule *domain.CategoryRule) RuleResponse {
	return RuleResponse{
		ID:        rule.ID.String(),
		Pattern:   rule.Pattern,
		MatchType: string(rule.MatchType),
		Category:  rule.Category,
		CreatedAt: rule.CreatedAt.Format(time.RFC3339),
	}
}
