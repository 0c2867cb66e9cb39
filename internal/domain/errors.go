package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRecurringNotFound   = errors.New("recurring item not found")
	ErrEntryNotFound       = errors.New("ledger entry not found")
	ErrInvestmentNotFound  = errors.New("investment not found")
	ErrRuleNotFound        = errors.New("category rule not found")
	ErrCardNotFound        = errors.New("credit card not found")
	ErrInvoiceNotFound     = errors.New("card invoice not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDirection    = errors.New("direction must be 'income' or 'expense'")
	ErrInvalidDueDay       = errors.New("due day must be between 1 and 31")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInvalidMatchType    = errors.New("match type must be 'substring' or 'exact'")
	ErrWeakPassword        = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail        = errors.New("invalid email address")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MinPasswordLength    = 8
)
