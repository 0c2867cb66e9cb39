package testutil

import (
	"sort"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users   map[uuid.UUID]*domain.User
	ByEmail map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:   make(map[uuid.UUID]*domain.User),
		ByEmail: make(map[string]*domain.User),
	}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// ListIDs returns the IDs of all users
func (m *MockUserRepository) ListIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.Users))
	for id := range m.Users {
		ids = append(ids, id)
	}
	return ids, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
}

// MockRecurringRepository is a mock implementation of domain.RecurringRepository
type MockRecurringRepository struct {
	Items map[uuid.UUID]*domain.RecurringItem
	// Order preserves insertion order, which callers rely on for filtering
	Order []uuid.UUID
}

// NewMockRecurringRepository creates a new MockRecurringRepository
func NewMockRecurringRepository() *MockRecurringRepository {
	return &MockRecurringRepository{
		Items: make(map[uuid.UUID]*domain.RecurringItem),
	}
}

// Create creates a new recurring item
func (m *MockRecurringRepository) Create(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.Items[item.ID] = item
	m.Order = append(m.Order, item.ID)
	return item, nil
}

// GetByID retrieves a recurring item by ID
func (m *MockRecurringRepository) GetByID(userID, id uuid.UUID) (*domain.RecurringItem, error) {
	if item, ok := m.Items[id]; ok && item.UserID == userID {
		return item, nil
	}
	return nil, domain.ErrRecurringNotFound
}

// ListByUser retrieves all recurring items for a user in insertion order
func (m *MockRecurringRepository) ListByUser(userID uuid.UUID, activeOnly *bool) ([]*domain.RecurringItem, error) {
	var items []*domain.RecurringItem
	for _, id := range m.Order {
		item, ok := m.Items[id]
		if !ok || item.UserID != userID {
			continue
		}
		if activeOnly != nil && *activeOnly && !item.IsActive {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Update updates a recurring item
func (m *MockRecurringRepository) Update(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	existing, ok := m.Items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return nil, domain.ErrRecurringNotFound
	}
	item.UpdatedAt = time.Now()
	m.Items[item.ID] = item
	return item, nil
}

// Delete deletes a recurring item
func (m *MockRecurringRepository) Delete(userID, id uuid.UUID) error {
	item, ok := m.Items[id]
	if !ok || item.UserID != userID {
		return domain.ErrRecurringNotFound
	}
	delete(m.Items, id)
	for i, oid := range m.Order {
		if oid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// AddItem adds a recurring item to the mock repository (helper for tests)
func (m *MockRecurringRepository) AddItem(item *domain.RecurringItem) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.Items[item.ID] = item
	m.Order = append(m.Order, item.ID)
}

// MockEntryRepository is a mock implementation of domain.EntryRepository
type MockEntryRepository struct {
	Entries map[uuid.UUID]*domain.LedgerEntry
	Order   []uuid.UUID
}

// NewMockEntryRepository creates a new MockEntryRepository
func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		Entries: make(map[uuid.UUID]*domain.LedgerEntry),
	}
}

// Create creates a new ledger entry
func (m *MockEntryRepository) Create(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.Entries[entry.ID] = entry
	m.Order = append(m.Order, entry.ID)
	return entry, nil
}

// GetByID retrieves a ledger entry by ID
func (m *MockEntryRepository) GetByID(userID, id uuid.UUID) (*domain.LedgerEntry, error) {
	if entry, ok := m.Entries[id]; ok && entry.UserID == userID {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

// ListByUser retrieves all ledger entries for a user in insertion order
func (m *MockEntryRepository) ListByUser(userID uuid.UUID) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for _, id := range m.Order {
		if entry, ok := m.Entries[id]; ok && entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ListByDateRange retrieves entries dated within [from, to] inclusive
func (m *MockEntryRepository) ListByDateRange(userID uuid.UUID, from, to time.Time) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for _, id := range m.Order {
		entry, ok := m.Entries[id]
		if !ok || entry.UserID != userID {
			continue
		}
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Update updates a ledger entry
func (m *MockEntryRepository) Update(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	existing, ok := m.Entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return nil, domain.ErrEntryNotFound
	}
	entry.UpdatedAt = time.Now()
	m.Entries[entry.ID] = entry
	return entry, nil
}

// Delete deletes a ledger entry
func (m *MockEntryRepository) Delete(userID, id uuid.UUID) error {
	entry, ok := m.Entries[id]
	if !ok || entry.UserID != userID {
		return domain.ErrEntryNotFound
	}
	delete(m.Entries, id)
	for i, oid := range m.Order {
		if oid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// ExistsGenerated reports whether a recurring-origin entry with the given
// description exists in the given month
func (m *MockEntryRepository) ExistsGenerated(userID uuid.UUID, description string, month domain.YearMonth) (bool, error) {
	for _, entry := range m.Entries {
		if entry.UserID != userID || entry.Origin != domain.OriginRecurring {
			continue
		}
		if entry.Description == description && month.Contains(entry.Date) {
			return true, nil
		}
	}
	return false, nil
}

// AddEntry adds a ledger entry to the mock repository (helper for tests)
func (m *MockEntryRepository) AddEntry(entry *domain.LedgerEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.Entries[entry.ID] = entry
	m.Order = append(m.Order, entry.ID)
}

// MockInvestmentRepository is a mock implementation of domain.InvestmentRepository
type MockInvestmentRepository struct {
	Investments map[uuid.UUID]*domain.Investment
	Order       []uuid.UUID
}

// NewMockInvestmentRepository creates a new MockInvestmentRepository
func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{
		Investments: make(map[uuid.UUID]*domain.Investment),
	}
}

// Create creates a new investment
func (m *MockInvestmentRepository) Create(inv *domain.Investment) (*domain.Investment, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	m.Investments[inv.ID] = inv
	m.Order = append(m.Order, inv.ID)
	return inv, nil
}

// GetByID retrieves an investment by ID
func (m *MockInvestmentRepository) GetByID(userID, id uuid.UUID) (*domain.Investment, error) {
	if inv, ok := m.Investments[id]; ok && inv.UserID == userID {
		return inv, nil
	}
	return nil, domain.ErrInvestmentNotFound
}

// ListByUser retrieves all investments for a user in insertion order
func (m *MockInvestmentRepository) ListByUser(userID uuid.UUID) ([]*domain.Investment, error) {
	var invs []*domain.Investment
	for _, id := range m.Order {
		if inv, ok := m.Investments[id]; ok && inv.UserID == userID {
			invs = append(invs, inv)
		}
	}
	return invs, nil
}

// ListByDateRange retrieves investments dated within [from, to] inclusive
func (m *MockInvestmentRepository) ListByDateRange(userID uuid.UUID, from, to time.Time) ([]*domain.Investment, error) {
	var invs []*domain.Investment
	for _, id := range m.Order {
		inv, ok := m.Investments[id]
		if !ok || inv.UserID != userID {
			continue
		}
		if inv.Date.Before(from) || inv.Date.After(to) {
			continue
		}
		invs = append(invs, inv)
	}
	return invs, nil
}

// Update updates an investment
func (m *MockInvestmentRepository) Update(inv *domain.Investment) (*domain.Investment, error) {
	existing, ok := m.Investments[inv.ID]
	if !ok || existing.UserID != inv.UserID {
		return nil, domain.ErrInvestmentNotFound
	}
	inv.UpdatedAt = time.Now()
	m.Investments[inv.ID] = inv
	return inv, nil
}

// Delete deletes an investment
func (m *MockInvestmentRepository) Delete(userID, id uuid.UUID) error {
	inv, ok := m.Investments[id]
	if !ok || inv.UserID != userID {
		return domain.ErrInvestmentNotFound
	}
	delete(m.Investments, id)
	for i, oid := range m.Order {
		if oid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// AddInvestment adds an investment to the mock repository (helper for tests)
func (m *MockInvestmentRepository) AddInvestment(inv *domain.Investment) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	m.Investments[inv.ID] = inv
	m.Order = append(m.Order, inv.ID)
}

// MockCategoryRuleRepository is a mock implementation of domain.CategoryRuleRepository
type MockCategoryRuleRepository struct {
	Rules map[uuid.UUID]*domain.CategoryRule
	Order []uuid.UUID
}

// NewMockCategoryRuleRepository creates a new MockCategoryRuleRepository
func NewMockCategoryRuleRepository() *MockCategoryRuleRepository {
	return &MockCategoryRuleRepository{
		Rules: make(map[uuid.UUID]*domain.CategoryRule),
	}
}

// Create creates a new category rule
func (m *MockCategoryRuleRepository) Create(rule *domain.CategoryRule) (*domain.CategoryRule, error) {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	rule.CreatedAt = time.Now()
	m.Rules[rule.ID] = rule
	m.Order = append(m.Order, rule.ID)
	return rule, nil
}

// ListByUser retrieves all category rules for a user in insertion order
func (m *MockCategoryRuleRepository) ListByUser(userID uuid.UUID) ([]*domain.CategoryRule, error) {
	var rules []*domain.CategoryRule
	for _, id := range m.Order {
		if rule, ok := m.Rules[id]; ok && rule.UserID == userID {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// Delete deletes a category rule
func (m *MockCategoryRuleRepository) Delete(userID, id uuid.UUID) error {
	rule, ok := m.Rules[id]
	if !ok || rule.UserID != userID {
		return domain.ErrRuleNotFound
	}
	delete(m.Rules, id)
	for i, oid := range m.Order {
		if oid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// AddRule adds a category rule to the mock repository (helper for tests)
func (m *MockCategoryRuleRepository) AddRule(rule *domain.CategoryRule) {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	m.Rules[rule.ID] = rule
	m.Order = append(m.Order, rule.ID)
}

// MockCardRepository is a mock implementation of domain.CardRepository
type MockCardRepository struct {
	Cards map[uuid.UUID]*domain.CreditCard
	Order []uuid.UUID
}

// NewMockCardRepository creates a new MockCardRepository
func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{
		Cards: make(map[uuid.UUID]*domain.CreditCard),
	}
}

// Create creates a new credit card
func (m *MockCardRepository) Create(card *domain.CreditCard) (*domain.CreditCard, error) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	m.Cards[card.ID] = card
	m.Order = append(m.Order, card.ID)
	return card, nil
}

// GetByID retrieves a credit card by ID
func (m *MockCardRepository) GetByID(userID, id uuid.UUID) (*domain.CreditCard, error) {
	if card, ok := m.Cards[id]; ok && card.UserID == userID {
		return card, nil
	}
	return nil, domain.ErrCardNotFound
}

// ListByUser retrieves all credit cards for a user in insertion order
func (m *MockCardRepository) ListByUser(userID uuid.UUID) ([]*domain.CreditCard, error) {
	var cards []*domain.CreditCard
	for _, id := range m.Order {
		if card, ok := m.Cards[id]; ok && card.UserID == userID {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// Update updates a credit card
func (m *MockCardRepository) Update(card *domain.CreditCard) (*domain.CreditCard, error) {
	existing, ok := m.Cards[card.ID]
	if !ok || existing.UserID != card.UserID {
		return nil, domain.ErrCardNotFound
	}
	card.UpdatedAt = time.Now()
	m.Cards[card.ID] = card
	return card, nil
}

// Delete deletes a credit card
func (m *MockCardRepository) Delete(userID, id uuid.UUID) error {
	card, ok := m.Cards[id]
	if !ok || card.UserID != userID {
		return domain.ErrCardNotFound
	}
	delete(m.Cards, id)
	for i, oid := range m.Order {
		if oid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// AddCard adds a credit card to the mock repository (helper for tests)
func (m *MockCardRepository) AddCard(card *domain.CreditCard) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	m.Cards[card.ID] = card
	m.Order = append(m.Order, card.ID)
}

// MockInvoiceRepository is a mock implementation of domain.InvoiceRepository
type MockInvoiceRepository struct {
	Invoices map[uuid.UUID]*domain.CardInvoice
	Order    []uuid.UUID
}

// NewMockInvoiceRepository creates a new MockInvoiceRepository
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		Invoices: make(map[uuid.UUID]*domain.CardInvoice),
	}
}

// Create creates a new card invoice
func (m *MockInvoiceRepository) Create(invoice *domain.CardInvoice) (*domain.CardInvoice, error) {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now()
	m.Invoices[invoice.ID] = invoice
	m.Order = append(m.Order, invoice.ID)
	return invoice, nil
}

// GetByCardAndMonth retrieves a card's invoice for a reference month
func (m *MockInvoiceRepository) GetByCardAndMonth(userID, cardID uuid.UUID, month string) (*domain.CardInvoice, error) {
	for _, id := range m.Order {
		inv, ok := m.Invoices[id]
		if !ok || inv.UserID != userID || inv.CardID != cardID {
			continue
		}
		if inv.ReferenceMonth == month {
			return inv, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

// ListByCard retrieves a card's invoices, optionally filtered by month,
// newest reference month first
func (m *MockInvoiceRepository) ListByCard(userID, cardID uuid.UUID, month *string) ([]*domain.CardInvoice, error) {
	var invoices []*domain.CardInvoice
	for _, id := range m.Order {
		inv, ok := m.Invoices[id]
		if !ok || inv.UserID != userID || inv.CardID != cardID {
			continue
		}
		if month != nil && inv.ReferenceMonth != *month {
			continue
		}
		invoices = append(invoices, inv)
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].ReferenceMonth > invoices[j].ReferenceMonth
	})
	return invoices, nil
}

// Update updates a card invoice
func (m *MockInvoiceRepository) Update(invoice *domain.CardInvoice) (*domain.CardInvoice, error) {
	existing, ok := m.Invoices[invoice.ID]
	if !ok || existing.UserID != invoice.UserID {
		return nil, domain.ErrInvoiceNotFound
	}
	m.Invoices[invoice.ID] = invoice
	return invoice, nil
}

// ListOpenDueBetween retrieves open invoices due within [from, to] inclusive
func (m *MockInvoiceRepository) ListOpenDueBetween(userID uuid.UUID, from, to time.Time) ([]*domain.CardInvoice, error) {
	var invoices []*domain.CardInvoice
	for _, id := range m.Order {
		inv, ok := m.Invoices[id]
		if !ok || inv.UserID != userID || inv.Status != domain.InvoiceOpen {
			continue
		}
		if inv.DueDate.Before(from) || inv.DueDate.After(to) {
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// AddInvoice adds a card invoice to the mock repository (helper for tests)
func (m *MockInvoiceRepository) AddInvoice(invoice *domain.CardInvoice) {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	m.Invoices[invoice.ID] = invoice
	m.Order = append(m.Order, invoice.ID)
}
