package service

import (
	"testing"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCategory_UserRuleWinsOverDefaults(t *testing.T) {
	ruleRepo := testutil.NewMockCategoryRuleRepository()
	service := NewCategoryService(ruleRepo)
	userID := uuid.New()

	ruleRepo.AddRule(&domain.CategoryRule{
		ID:        uuid.New(),
		UserID:    userID,
		Pattern:   "netflix",
		MatchType: domain.MatchSubstring,
		Category:  "Entertainment",
	})

	got, err := service.SuggestCategory(userID, "NETFLIX.COM subscription")
	require.NoError(t, err)
	assert.Equal(t, "Entertainment", got, "user rule overrides the built-in keyword table")
}

func TestSuggestCategory_RuleOrder(t *testing.T) {
	ruleRepo := testutil.NewMockCategoryRuleRepository()
	service := NewCategoryService(ruleRepo)
	userID := uuid.New()

	ruleRepo.AddRule(&domain.CategoryRule{
		ID: uuid.New(), UserID: userID,
		Pattern: "store", MatchType: domain.MatchSubstring, Category: "Shopping",
	})
	ruleRepo.AddRule(&domain.CategoryRule{
		ID: uuid.New(), UserID: userID,
		Pattern: "pet store", MatchType: domain.MatchSubstring, Category: "Pets",
	})

	got, err := service.SuggestCategory(userID, "Pet Store Downtown")
	require.NoError(t, err)
	assert.Equal(t, "Shopping", got, "rules are applied in creation order, first match wins")
}

func TestSuggestCategory_ExactMatch(t *testing.T) {
	ruleRepo := testutil.NewMockCategoryRuleRepository()
	service := NewCategoryService(ruleRepo)
	userID := uuid.New()

	ruleRepo.AddRule(&domain.CategoryRule{
		ID: uuid.New(), UserID: userID,
		Pattern: "gym", MatchType: domain.MatchExact, Category: "Health",
	})

	got, err := service.SuggestCategory(userID, "Gym")
	require.NoError(t, err)
	assert.Equal(t, "Health", got)

	got, err = service.SuggestCategory(userID, "Gym membership")
	require.NoError(t, err)
	assert.NotEqual(t, "Health", got, "exact rules must not match longer descriptions")
}

func TestSuggestCategory_DefaultKeywords(t *testing.T) {
	service := NewCategoryService(testutil.NewMockCategoryRuleRepository())
	userID := uuid.New()

	got, err := service.SuggestCategory(userID, "UBER *TRIP 1234")
	require.NoError(t, err)
	assert.Equal(t, "Transport", got)

	got, err = service.SuggestCategory(userID, "Totally unknown merchant")
	require.NoError(t, err)
	assert.Equal(t, "", got, "no match yields an empty suggestion")
}

func TestCreateRule_Validation(t *testing.T) {
	service := NewCategoryService(testutil.NewMockCategoryRuleRepository())
	userID := uuid.New()

	_, err := service.CreateRule(userID, RuleInput{Pattern: "", Category: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.CreateRule(userID, RuleInput{Pattern: "x", Category: "X", MatchType: "regex"})
	assert.ErrorIs(t, err, domain.ErrInvalidMatchType)

	rule, err := service.CreateRule(userID, RuleInput{Pattern: "x", Category: "X"})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchSubstring, rule.MatchType, "match type defaults to substring")
}
