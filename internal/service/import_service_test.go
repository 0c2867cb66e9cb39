package service

import (
	"strings"
	"testing"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupImportServiceTest() (*ImportService, *testutil.MockEntryRepository) {
	entryRepo := testutil.NewMockEntryRepository()
	categoryService := NewCategoryService(testutil.NewMockCategoryRuleRepository())
	service := NewImportService(entryRepo, categoryService)
	return service, entryRepo
}

func TestParseStatement(t *testing.T) {
	service, _ := setupImportServiceTest()

	csv := strings.Join([]string{
		"date,description,amount",
		"2025-06-05,ACME PAYROLL,3000.00",
		"2025-06-10,UBER *TRIP,-42.50",
		"2025-06-12,Corner Market,-230.10",
	}, "\n")

	txns, skipped, err := service.ParseStatement(uuid.New(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, txns, 3)

	payroll := txns[0]
	assert.Equal(t, domain.DirectionIncome, payroll.Direction)
	assert.True(t, payroll.Amount.Equal(decimal.NewFromInt(3000)))

	uber := txns[1]
	assert.Equal(t, domain.DirectionExpense, uber.Direction, "negative amounts become expenses")
	assert.True(t, uber.Amount.Equal(decimal.NewFromFloat(42.50)), "stored amount is positive")
	assert.Equal(t, "Transport", uber.SuggestedCategory)

	market := txns[2]
	assert.Equal(t, "Groceries", market.SuggestedCategory)
}

func TestParseStatement_SkipsMalformedRows(t *testing.T) {
	service, _ := setupImportServiceTest()

	csv := strings.Join([]string{
		"date,description,amount",
		"not-a-date,Something,10.00",
		"2025-06-10,Bad amount,ten",
		"2025-06-11,Fine,-5.00",
	}, "\n")

	txns, skipped, err := service.ParseStatement(uuid.New(), strings.NewReader(csv))
	require.NoError(t, err, "bad rows never abort the import")
	assert.Len(t, skipped, 2)
	require.Len(t, txns, 1)
	assert.Equal(t, "Fine", txns[0].Description)
}

func TestParseStatement_FlagsDuplicates(t *testing.T) {
	service, entryRepo := setupImportServiceTest()
	userID := uuid.New()

	existing := &domain.LedgerEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Description: "UBER *TRIP 99231",
		Direction:   domain.DirectionExpense,
		Amount:      decimal.NewFromFloat(42.50),
		Method:      domain.MethodCredit,
		Origin:      domain.OriginManual,
	}
	entryRepo.AddEntry(existing)

	csv := strings.Join([]string{
		"date,description,amount",
		"2025-06-10,UBER *TRIP 99231,-42.50",
		"2025-06-10,Completely different merchant,-42.50",
	}, "\n")

	txns, _, err := service.ParseStatement(userID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.True(t, txns[0].IsDuplicate, "same date, amount and description is a duplicate")
	require.NotNil(t, txns[0].DuplicateOf)
	assert.Equal(t, existing.ID, *txns[0].DuplicateOf)

	assert.False(t, txns[1].IsDuplicate, "same date and amount with a different description is kept")
}

func TestConfirmImport_SkipsDuplicates(t *testing.T) {
	service, entryRepo := setupImportServiceTest()
	userID := uuid.New()

	txns := []*StatementTransaction{
		{
			Date:        time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			Description: "Corner Market",
			Direction:   domain.DirectionExpense,
			Amount:      decimal.NewFromInt(100),
		},
		{
			Date:        time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC),
			Description: "Already there",
			Direction:   domain.DirectionExpense,
			Amount:      decimal.NewFromInt(50),
			IsDuplicate: true,
		},
	}

	result, err := service.ConfirmImport(userID, txns)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)

	entries, _ := entryRepo.ListByUser(userID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OriginImport, entries[0].Origin)
	assert.Equal(t, "Corner Market", entries[0].Description)
}

func TestDescriptionSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, descriptionSimilarity("Uber Trip", "uber trip"), "case-insensitive identity")
	assert.GreaterOrEqual(t, descriptionSimilarity("UBER *TRIP 99231", "UBER *TRIP 99232"), 0.8)
	assert.Less(t, descriptionSimilarity("Corner Market", "Electric bill"), 0.5)
	assert.Equal(t, 0.0, descriptionSimilarity("a", "ab"), "degenerate inputs score zero")
}
