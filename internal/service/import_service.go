package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// statementRow is one line of an uploaded bank statement CSV.
type statementRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
}

// StatementTransaction is a parsed statement line ready for review. Negative
// statement amounts become expenses; the stored Amount is always positive.
type StatementTransaction struct {
	Date              time.Time        `json:"date"`
	Description       string           `json:"description"`
	Direction         domain.Direction `json:"direction"`
	Amount            decimal.Decimal  `json:"amount"`
	SuggestedCategory string           `json:"suggestedCategory,omitempty"`
	IsDuplicate       bool             `json:"isDuplicate"`
	DuplicateOf       *uuid.UUID       `json:"duplicateOf,omitempty"`
}

// ImportService parses bank statement CSVs into reviewable transactions and
// turns confirmed ones into ledger entries.
type ImportService struct {
	entryRepo       domain.EntryRepository
	categoryService *CategoryService
}

// NewImportService creates a new ImportService
func NewImportService(entryRepo domain.EntryRepository, categoryService *CategoryService) *ImportService {
	return &ImportService{
		entryRepo:       entryRepo,
		categoryService: categoryService,
	}
}

var statementDateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

func parseStatementDate(s string) (time.Time, error) {
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}

// ParseStatement reads a CSV statement and returns its transactions with
// category suggestions and duplicate flags. Rows that cannot be parsed are
// skipped and reported in skipped; a bad row never aborts the import.
func (s *ImportService) ParseStatement(userID uuid.UUID, r io.Reader) (txns []*StatementTransaction, skipped []string, err error) {
	var rows []*statementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse statement: %w", err)
	}

	for i, row := range rows {
		date, err := parseStatementDate(row.Date)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("line %d: %v", i+2, err))
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("line %d: invalid amount %q", i+2, row.Amount))
			continue
		}
		description := strings.TrimSpace(row.Description)
		if description == "" || amount.IsZero() {
			skipped = append(skipped, fmt.Sprintf("line %d: empty description or zero amount", i+2))
			continue
		}

		txn := &StatementTransaction{
			Date:        date,
			Description: description,
			Direction:   domain.DirectionIncome,
			Amount:      amount,
		}
		if amount.IsNegative() {
			txn.Direction = domain.DirectionExpense
			txn.Amount = amount.Abs()
		}

		if category, err := s.categoryService.SuggestCategory(userID, description); err == nil {
			txn.SuggestedCategory = category
		} else {
			log.Warn().Err(err).Str("description", description).Msg("Category suggestion failed")
		}

		txns = append(txns, txn)
	}

	if err := s.flagDuplicates(userID, txns); err != nil {
		return nil, nil, err
	}

	return txns, skipped, nil
}

// flagDuplicates marks transactions that already exist in the ledger: same
// date, same amount, and a description similar enough to be the same record.
func (s *ImportService) flagDuplicates(userID uuid.UUID, txns []*StatementTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	from, to := txns[0].Date, txns[0].Date
	for _, txn := range txns[1:] {
		if txn.Date.Before(from) {
			from = txn.Date
		}
		if txn.Date.After(to) {
			to = txn.Date
		}
	}

	existing, err := s.entryRepo.ListByDateRange(userID, from, to)
	if err != nil {
		return err
	}

	for _, txn := range txns {
		for _, entry := range existing {
			if !entry.Date.Equal(txn.Date) || entry.Direction != txn.Direction {
				continue
			}
			if !entry.Amount.Equal(txn.Amount) {
				continue
			}
			if descriptionSimilarity(entry.Description, txn.Description) >= 0.8 {
				txn.IsDuplicate = true
				id := entry.ID
				txn.DuplicateOf = &id
				break
			}
		}
	}

	return nil
}

// descriptionSimilarity returns a 0..1 similarity score between two
// descriptions using character-bigram overlap (Sorensen-Dice).
func descriptionSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}
	matches := 0
	for i := 0; i < len(b)-1; i++ {
		if bigrams[b[i:i+2]] > 0 {
			bigrams[b[i:i+2]]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(len(a)-1+len(b)-1)
}

// ImportResult reports the outcome of a confirmed import
type ImportResult struct {
	Created int
	Skipped int
}

// ConfirmImport creates ledger entries for the given transactions, skipping
// the ones flagged as duplicates.
func (s *ImportService) ConfirmImport(userID uuid.UUID, txns []*StatementTransaction) (*ImportResult, error) {
	result := &ImportResult{}
	for _, txn := range txns {
		if txn.IsDuplicate {
			result.Skipped++
			continue
		}
		entry := &domain.LedgerEntry{
			UserID:      userID,
			Date:        txn.Date,
			Description: txn.Description,
			Category:    txn.SuggestedCategory,
			Direction:   txn.Direction,
			Amount:      txn.Amount,
			Method:      domain.MethodOther,
			Origin:      domain.OriginImport,
		}
		if _, err := s.entryRepo.Create(entry); err != nil {
			return nil, err
		}
		result.Created++
	}

	log.Info().
		Str("user_id", userID.String()).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("Statement import confirmed")

	return result, nil
}
