package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func addRecurring(repo *testutil.MockRecurringRepository, userID uuid.UUID, description string, direction domain.Direction, amount int64, dueDay int) {
	repo.AddItem(&domain.RecurringItem{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Direction:   direction,
		Amount:      decimal.NewFromInt(amount),
		DueDay:      dueDay,
		StartMonth:  "2024-01",
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	})
}

func TestGetPaymentPlan_Success(t *testing.T) {
	e := echo.New()
	recurringRepo := testutil.NewMockRecurringRepository()
	allocationService := service.NewAllocationService(recurringRepo)
	handler := NewAllocationHandler(allocationService)

	userID := uuid.New()
	addRecurring(recurringRepo, userID, "Salary", domain.DirectionIncome, 3000, 5)
	addRecurring(recurringRepo, userID, "Advance", domain.DirectionIncome, 1000, 20)
	addRecurring(recurringRepo, userID, "Internet", domain.DirectionExpense, 100, 2)
	addRecurring(recurringRepo, userID, "Rent", domain.DirectionExpense, 1500, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payment-plan?month=2025-06", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetUserID(c, userID)

	if err := handler.GetPaymentPlan(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response PaymentPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Month != "2025-06" {
		t.Errorf("Expected month '2025-06', got %s", response.Month)
	}
	if response.NetBalance != "2400.00" {
		t.Errorf("Expected net balance '2400.00', got %s", response.NetBalance)
	}
	if response.Verdict != "healthy" {
		t.Errorf("Expected verdict 'healthy', got %s", response.Verdict)
	}
	if response.Advice == "" {
		t.Error("Expected advice to be set")
	}

	// Expenses come back in due-day order
	if len(response.Allocations) != 2 {
		t.Fatalf("Expected 2 allocations, got %d", len(response.Allocations))
	}
	internet := response.Allocations[0]
	if internet.ExpenseDescription != "Internet" {
		t.Errorf("Expected first allocation 'Internet', got %s", internet.ExpenseDescription)
	}
	if internet.Timing != "paid_late" {
		t.Errorf("Expected Internet to be paid late, got %s", internet.Timing)
	}
	rent := response.Allocations[1]
	if rent.Timing != "on_time" {
		t.Errorf("Expected Rent to be on time, got %s", rent.Timing)
	}
	if rent.AssignedIncome == nil || rent.AssignedIncome.Description != "Salary" {
		t.Errorf("Expected Rent assigned to Salary, got %+v", rent.AssignedIncome)
	}
}

func TestGetPaymentPlan_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler := NewAllocationHandler(service.NewAllocationService(testutil.NewMockRecurringRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payment-plan?month=junk", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetUserID(c, uuid.New())

	if err := handler.GetPaymentPlan(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetPaymentPlan_UserIsolation(t *testing.T) {
	e := echo.New()
	recurringRepo := testutil.NewMockRecurringRepository()
	handler := NewAllocationHandler(service.NewAllocationService(recurringRepo))

	addRecurring(recurringRepo, uuid.New(), "Someone else's salary", domain.DirectionIncome, 9000, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payment-plan?month=2025-06", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetUserID(c, uuid.New())

	if err := handler.GetPaymentPlan(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response PaymentPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Incomes) != 0 {
		t.Errorf("Expected no incomes for a fresh user, got %d", len(response.Incomes))
	}
	if response.Verdict != "negative" {
		t.Errorf("Expected verdict 'negative' for an empty month, got %s", response.Verdict)
	}
}
