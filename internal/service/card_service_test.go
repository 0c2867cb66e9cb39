package service

import (
	"testing"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func setupCardServiceTest() (*CardService, *testutil.MockCardRepository, *testutil.MockInvoiceRepository, *testutil.MockEntryRepository) {
	cardRepo := testutil.NewMockCardRepository()
	invoiceRepo := testutil.NewMockInvoiceRepository()
	entryRepo := testutil.NewMockEntryRepository()
	service := NewCardService(cardRepo, invoiceRepo, entryRepo)
	return service, cardRepo, invoiceRepo, entryRepo
}

func validCardInput() CardInput {
	return CardInput{
		Name:       "Nubank",
		TotalLimit: decimal.NewFromFloat(5000.00),
		UsedLimit:  decimal.NewFromFloat(1200.00),
		DueDay:     15,
		IsActive:   true,
	}
}

func creditExpense(userID uuid.UUID, description string, amount float64, date time.Time) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		UserID:      userID,
		Date:        date,
		Description: description,
		Direction:   domain.DirectionExpense,
		Amount:      decimal.NewFromFloat(amount),
		Method:      domain.MethodCredit,
		Origin:      domain.OriginManual,
	}
}

func TestCreateCard_Success(t *testing.T) {
	service, _, _, _ := setupCardServiceTest()
	userID := uuid.New()

	card, err := service.CreateCard(userID, validCardInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.Name != "Nubank" {
		t.Errorf("Expected name 'Nubank', got %s", card.Name)
	}
	if !card.AvailableLimit().Equal(decimal.NewFromFloat(3800.00)) {
		t.Errorf("Expected available limit 3800.00, got %s", card.AvailableLimit().String())
	}
	if card.UserID != userID {
		t.Error("Expected card to belong to the creating user")
	}
}

func TestCreateCard_Validation(t *testing.T) {
	service, _, _, _ := setupCardServiceTest()
	userID := uuid.New()

	badDay := 0

	tests := []struct {
		name    string
		mutate  func(*CardInput)
		wantErr error
	}{
		{"empty name", func(in *CardInput) { in.Name = "  " }, domain.ErrDescriptionRequired},
		{"zero limit", func(in *CardInput) { in.TotalLimit = decimal.Zero }, domain.ErrInvalidAmount},
		{"negative used limit", func(in *CardInput) { in.UsedLimit = decimal.NewFromInt(-1) }, domain.ErrInvalidAmount},
		{"due day too low", func(in *CardInput) { in.DueDay = 0 }, domain.ErrInvalidDueDay},
		{"due day too high", func(in *CardInput) { in.DueDay = 32 }, domain.ErrInvalidDueDay},
		{"bad best purchase day", func(in *CardInput) { in.BestPurchaseDay = &badDay }, domain.ErrInvalidDueDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCardInput()
			tt.mutate(&input)
			_, err := service.CreateCard(userID, input)
			if err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateCard_NotFound(t *testing.T) {
	service, _, _, _ := setupCardServiceTest()

	_, err := service.UpdateCard(uuid.New(), uuid.New(), validCardInput())
	if err != domain.ErrCardNotFound {
		t.Errorf("Expected ErrCardNotFound, got %v", err)
	}
}

func TestUpdateCard_RecomputesAvailableLimit(t *testing.T) {
	service, cardRepo, _, _ := setupCardServiceTest()
	userID := uuid.New()

	card := &domain.CreditCard{
		UserID:     userID,
		Name:       "Visa",
		TotalLimit: decimal.NewFromInt(3000),
		UsedLimit:  decimal.NewFromInt(500),
		DueDay:     10,
		IsActive:   true,
	}
	cardRepo.AddCard(card)

	input := validCardInput()
	input.TotalLimit = decimal.NewFromInt(4000)
	input.UsedLimit = decimal.NewFromInt(2500)

	updated, err := service.UpdateCard(userID, card.ID, input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.AvailableLimit().Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected available limit 1500, got %s", updated.AvailableLimit().String())
	}
}

func TestComputeInvoice_SumsCreditExpensesOnly(t *testing.T) {
	service, cardRepo, _, entryRepo := setupCardServiceTest()
	userID := uuid.New()

	card := &domain.CreditCard{
		UserID:     userID,
		Name:       "Nubank",
		TotalLimit: decimal.NewFromInt(5000),
		DueDay:     15,
		IsActive:   true,
	}
	cardRepo.AddCard(card)

	month := domain.YearMonth{Year: 2025, Month: time.March}
	entryRepo.AddEntry(creditExpense(userID, "Groceries", 350.50, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
	entryRepo.AddEntry(creditExpense(userID, "Streaming", 49.90, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)))
	// Debit expense and credit income must not count toward the invoice
	debit := creditExpense(userID, "Pharmacy", 80.00, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	debit.Method = domain.MethodDebit
	entryRepo.AddEntry(debit)
	refund := creditExpense(userID, "Refund", 100.00, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	refund.Direction = domain.DirectionIncome
	entryRepo.AddEntry(refund)
	// Outside the reference month
	entryRepo.AddEntry(creditExpense(userID, "Old purchase", 20.00, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))

	invoice, err := service.ComputeInvoice(userID, card.ID, month)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !invoice.TotalAmount.Equal(decimal.NewFromFloat(400.40)) {
		t.Errorf("Expected invoice total 400.40, got %s", invoice.TotalAmount.String())
	}
	if len(invoice.EntryIDs) != 2 {
		t.Errorf("Expected 2 composing entries, got %d", len(invoice.EntryIDs))
	}
	if invoice.Status != domain.InvoiceOpen {
		t.Errorf("Expected open status, got %s", invoice.Status)
	}
	if invoice.ReferenceMonth != "2025-03" {
		t.Errorf("Expected reference month 2025-03, got %s", invoice.ReferenceMonth)
	}
}

func TestComputeInvoice_DueDateNextMonthCapped(t *testing.T) {
	service, cardRepo, _, _ := setupCardServiceTest()
	userID := uuid.New()

	card := &domain.CreditCard{
		UserID:     userID,
		Name:       "Visa",
		TotalLimit: decimal.NewFromInt(2000),
		DueDay:     31,
		IsActive:   true,
	}
	cardRepo.AddCard(card)

	month := domain.YearMonth{Year: 2025, Month: time.January}
	invoice, err := service.ComputeInvoice(userID, card.ID, month)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Day 31 is capped at 28, due in the month after the reference month
	want := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	if !invoice.DueDate.Equal(want) {
		t.Errorf("Expected due date %s, got %s", want.Format("2006-01-02"), invoice.DueDate.Format("2006-01-02"))
	}
}

func TestComputeInvoice_UpdatesExistingInvoice(t *testing.T) {
	service, cardRepo, invoiceRepo, entryRepo := setupCardServiceTest()
	userID := uuid.New()

	card := &domain.CreditCard{
		UserID:     userID,
		Name:       "Nubank",
		TotalLimit: decimal.NewFromInt(5000),
		DueDay:     10,
		IsActive:   true,
	}
	cardRepo.AddCard(card)

	month := domain.YearMonth{Year: 2025, Month: time.April}
	entryRepo.AddEntry(creditExpense(userID, "Dinner", 120.00, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)))

	first, err := service.ComputeInvoice(userID, card.ID, month)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	first.PaidAmount = decimal.NewFromInt(50)

	entryRepo.AddEntry(creditExpense(userID, "Fuel", 200.00, time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)))

	second, err := service.ComputeInvoice(userID, card.ID, month)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if second.ID != first.ID {
		t.Error("Expected recomputation to update the existing invoice, not create a new one")
	}
	if !second.TotalAmount.Equal(decimal.NewFromInt(320)) {
		t.Errorf("Expected updated total 320, got %s", second.TotalAmount.String())
	}
	if !second.PaidAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected paid amount preserved at 50, got %s", second.PaidAmount.String())
	}

	invoices, err := invoiceRepo.ListByCard(userID, card.ID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(invoices) != 1 {
		t.Errorf("Expected a single invoice for the month, got %d", len(invoices))
	}
}

func TestComputeInvoice_CardNotFound(t *testing.T) {
	service, _, _, _ := setupCardServiceTest()

	_, err := service.ComputeInvoice(uuid.New(), uuid.New(), domain.YearMonthOf(time.Now()))
	if err != domain.ErrCardNotFound {
		t.Errorf("Expected ErrCardNotFound, got %v", err)
	}
}

func TestListInvoices_NewestMonthFirst(t *testing.T) {
	service, cardRepo, invoiceRepo, _ := setupCardServiceTest()
	userID := uuid.New()

	card := &domain.CreditCard{
		UserID:     userID,
		Name:       "Visa",
		TotalLimit: decimal.NewFromInt(2000),
		DueDay:     5,
		IsActive:   true,
	}
	cardRepo.AddCard(card)

	for _, month := range []string{"2025-01", "2025-03", "2025-02"} {
		invoiceRepo.AddInvoice(&domain.CardInvoice{
			CardID:         card.ID,
			UserID:         userID,
			ReferenceMonth: month,
			Status:         domain.InvoiceOpen,
		})
	}

	invoices, err := service.ListInvoices(userID, card.ID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(invoices) != 3 {
		t.Fatalf("Expected 3 invoices, got %d", len(invoices))
	}
	for i, want := range []string{"2025-03", "2025-02", "2025-01"} {
		if invoices[i].ReferenceMonth != want {
			t.Errorf("Expected invoice %d to be %s, got %s", i, want, invoices[i].ReferenceMonth)
		}
	}
}

func TestUpcomingInvoiceAlerts_WindowAndStatus(t *testing.T) {
	service, cardRepo, invoiceRepo, _ := setupCardServiceTest()
	userID := uuid.New()

	card := &domain.CreditCard{
		UserID:     userID,
		Name:       "Nubank",
		TotalLimit: decimal.NewFromInt(5000),
		DueDay:     10,
		IsActive:   true,
	}
	cardRepo.AddCard(card)

	now := time.Date(2025, 5, 1, 14, 30, 0, 0, time.UTC)
	addInvoice := func(month string, due time.Time, status domain.InvoiceStatus) {
		invoiceRepo.AddInvoice(&domain.CardInvoice{
			CardID:         card.ID,
			UserID:         userID,
			ReferenceMonth: month,
			DueDate:        due,
			Status:         status,
		})
	}

	addInvoice("2025-04", time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), domain.InvoiceOpen)
	addInvoice("2025-03", time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), domain.InvoicePaid)
	addInvoice("2025-05", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), domain.InvoiceOpen)
	addInvoice("2025-02", time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC), domain.InvoiceOpen)

	alerts, err := service.UpcomingInvoiceAlerts(userID, 7, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(alerts) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].ReferenceMonth != "2025-04" {
		t.Errorf("Expected the 2025-04 invoice, got %s", alerts[0].ReferenceMonth)
	}
}
