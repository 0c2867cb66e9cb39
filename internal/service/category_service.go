package service

import (
	"strings"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
)

// defaultKeywords maps description fragments to categories when no user rule
// matches. Checked in order; first hit wins.
var defaultKeywords = []struct {
	keyword  string
	category string
}{
	{"salary", "Income"},
	{"payroll", "Income"},
	{"rent", "Housing"},
	{"mortgage", "Housing"},
	{"electric", "Utilities"},
	{"water", "Utilities"},
	{"internet", "Utilities"},
	{"phone", "Utilities"},
	{"netflix", "Subscriptions"},
	{"spotify", "Subscriptions"},
	{"uber", "Transport"},
	{"fuel", "Transport"},
	{"parking", "Transport"},
	{"market", "Groceries"},
	{"grocery", "Groceries"},
	{"pharmacy", "Health"},
	{"restaurant", "Dining"},
	{"ifood", "Dining"},
}

// CategoryService suggests categories for transaction descriptions using the
// user's saved rules with a built-in keyword fallback.
type CategoryService struct {
	ruleRepo domain.CategoryRuleRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(ruleRepo domain.CategoryRuleRepository) *CategoryService {
	return &CategoryService{
		ruleRepo: ruleRepo,
	}
}

// SuggestCategory returns the best category guess for a description, or ""
// when nothing matches. User rules are checked in creation order before the
// default keyword table.
func (s *CategoryService) SuggestCategory(userID uuid.UUID, description string) (string, error) {
	rules, err := s.ruleRepo.ListByUser(userID)
	if err != nil {
		return "", err
	}

	desc := strings.ToLower(strings.TrimSpace(description))

	for _, rule := range rules {
		pattern := strings.ToLower(rule.Pattern)
		if pattern == "" || rule.Category == "" {
			continue
		}
		switch rule.MatchType {
		case domain.MatchSubstring:
			if strings.Contains(desc, pattern) {
				return rule.Category, nil
			}
		case domain.MatchExact:
			if desc == pattern {
				return rule.Category, nil
			}
		}
	}

	for _, kw := range defaultKeywords {
		if strings.Contains(desc, kw.keyword) {
			return kw.category, nil
		}
	}

	return "", nil
}

// RuleInput holds the input for creating a category rule
type RuleInput struct {
	Pattern   string
	MatchType domain.MatchType
	Category  string
}

// CreateRule creates a new category rule
func (s *CategoryService) CreateRule(userID uuid.UUID, input RuleInput) (*domain.CategoryRule, error) {
	input.Pattern = strings.TrimSpace(input.Pattern)
	input.Category = strings.TrimSpace(input.Category)
	if input.Pattern == "" || input.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.MatchType == "" {
		input.MatchType = domain.MatchSubstring
	}
	if input.MatchType != domain.MatchSubstring && input.MatchType != domain.MatchExact {
		return nil, domain.ErrInvalidMatchType
	}

	rule := &domain.CategoryRule{
		UserID:    userID,
		Pattern:   input.Pattern,
		MatchType: input.MatchType,
		Category:  input.Category,
	}

	return s.ruleRepo.Create(rule)
}

// ListRules retrieves the user's category rules
func (s *CategoryService) ListRules(userID uuid.UUID) ([]*domain.CategoryRule, error) {
	return s.ruleRepo.ListByUser(userID)
}

// DeleteRule deletes a category rule
func (s *CategoryService) DeleteRule(userID, id uuid.UUID) error {
	return s.ruleRepo.Delete(userID, id)
}
