package service

import (
	"testing"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addEntry(repo *testutil.MockEntryRepository, userID uuid.UUID, day time.Time, desc, category string, direction domain.Direction, amount float64) {
	repo.AddEntry(&domain.LedgerEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        day,
		Description: desc,
		Category:    category,
		Direction:   direction,
		Amount:      decimal.NewFromFloat(amount),
		Method:      domain.MethodPix,
		Origin:      domain.OriginManual,
	})
}

func TestCreateEntry_Success(t *testing.T) {
	entryRepo := testutil.NewMockEntryRepository()
	service := NewEntryService(entryRepo)
	userID := uuid.New()

	entry, err := service.CreateEntry(userID, EntryInput{
		Date:        date(2025, time.June, 10),
		Description: "Groceries",
		Category:    "Food",
		Direction:   domain.DirectionExpense,
		Amount:      decimal.NewFromFloat(230.50),
		Method:      domain.MethodDebit,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OriginManual, entry.Origin)
	assert.Equal(t, "Groceries", entry.Description)
	assert.True(t, entry.Amount.Equal(decimal.NewFromFloat(230.50)))
}

func TestCreateEntry_Validation(t *testing.T) {
	service := NewEntryService(testutil.NewMockEntryRepository())
	userID := uuid.New()

	base := EntryInput{
		Date:        date(2025, time.June, 10),
		Description: "Groceries",
		Direction:   domain.DirectionExpense,
		Amount:      decimal.NewFromInt(100),
	}

	input := base
	input.Description = ""
	_, err := service.CreateEntry(userID, input)
	assert.ErrorIs(t, err, domain.ErrDescriptionRequired)

	input = base
	input.Date = time.Time{}
	_, err = service.CreateEntry(userID, input)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	input = base
	input.Amount = decimal.Zero
	_, err = service.CreateEntry(userID, input)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	input = base
	input.Method = "cheque"
	_, err = service.CreateEntry(userID, input)
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)
}

func TestCreateEntry_DefaultsMethod(t *testing.T) {
	service := NewEntryService(testutil.NewMockEntryRepository())

	entry, err := service.CreateEntry(uuid.New(), EntryInput{
		Date:        date(2025, time.June, 10),
		Description: "Misc",
		Direction:   domain.DirectionExpense,
		Amount:      decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MethodOther, entry.Method)
}

func TestListEntries_MonthFilter(t *testing.T) {
	entryRepo := testutil.NewMockEntryRepository()
	service := NewEntryService(entryRepo)
	userID := uuid.New()

	addEntry(entryRepo, userID, date(2025, time.June, 1), "In June", "Food", domain.DirectionExpense, 50)
	addEntry(entryRepo, userID, date(2025, time.June, 30), "Also June", "Food", domain.DirectionExpense, 70)
	addEntry(entryRepo, userID, date(2025, time.July, 1), "July", "Food", domain.DirectionExpense, 90)

	entries, err := service.ListEntries(userID, PeriodFilter{
		Mode:  PeriodMonth,
		Month: domain.YearMonth{Year: 2025, Month: time.June},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2, "month filter is inclusive of both month boundaries")
}

func TestListEntries_YearAndRangeFilters(t *testing.T) {
	entryRepo := testutil.NewMockEntryRepository()
	service := NewEntryService(entryRepo)
	userID := uuid.New()

	addEntry(entryRepo, userID, date(2024, time.December, 31), "Last year", "Misc", domain.DirectionExpense, 10)
	addEntry(entryRepo, userID, date(2025, time.January, 1), "New year", "Misc", domain.DirectionExpense, 20)
	addEntry(entryRepo, userID, date(2025, time.March, 15), "Spring", "Misc", domain.DirectionExpense, 30)

	entries, err := service.ListEntries(userID, PeriodFilter{Mode: PeriodYear, Year: 2025})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = service.ListEntries(userID, PeriodFilter{
		Mode: PeriodRange,
		From: date(2025, time.January, 1),
		To:   date(2025, time.February, 1),
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "New year", entries[0].Description)
}

func TestListEntries_NoFilterReturnsAll(t *testing.T) {
	entryRepo := testutil.NewMockEntryRepository()
	service := NewEntryService(entryRepo)
	userID := uuid.New()

	addEntry(entryRepo, userID, date(2024, time.May, 1), "Old", "Misc", domain.DirectionExpense, 10)
	addEntry(entryRepo, userID, date(2025, time.May, 1), "New", "Misc", domain.DirectionExpense, 10)

	entries, err := service.ListEntries(userID, PeriodFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSummarize(t *testing.T) {
	entryRepo := testutil.NewMockEntryRepository()
	service := NewEntryService(entryRepo)
	userID := uuid.New()

	addEntry(entryRepo, userID, date(2025, time.June, 5), "Salary", "Income", domain.DirectionIncome, 3000)
	addEntry(entryRepo, userID, date(2025, time.June, 10), "Rent", "Housing", domain.DirectionExpense, 1200)
	addEntry(entryRepo, userID, date(2025, time.June, 12), "Groceries", "Food", domain.DirectionExpense, 400)
	addEntry(entryRepo, userID, date(2025, time.June, 20), "Restaurant", "Food", domain.DirectionExpense, 150)

	summary, err := service.Summarize(userID, PeriodFilter{
		Mode:  PeriodMonth,
		Month: domain.YearMonth{Year: 2025, Month: time.June},
	})
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.TotalExpense.Equal(decimal.NewFromInt(1750)))
	assert.True(t, summary.NetBalance.Equal(decimal.NewFromInt(1250)))

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Housing", summary.ByCategory[0].Category, "categories sorted by total, largest first")
	assert.True(t, summary.ByCategory[0].Total.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Food", summary.ByCategory[1].Category)
	assert.True(t, summary.ByCategory[1].Total.Equal(decimal.NewFromInt(550)))
}

func TestSummarize_Empty(t *testing.T) {
	service := NewEntryService(testutil.NewMockEntryRepository())

	summary, err := service.Summarize(uuid.New(), PeriodFilter{})
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpense.IsZero())
	assert.True(t, summary.NetBalance.IsZero())
	assert.Empty(t, summary.ByCategory)
}
