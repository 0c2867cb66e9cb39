package handler

import (
	"net/http"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AllocationHandler handles payment plan HTTP requests
type AllocationHandler struct {
	allocationService *service.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler
func NewAllocationHandler(allocationService *service.AllocationService) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
	}
}

// IncomeSlotResponse is one income source in the payment plan
type IncomeSlotResponse struct {
	Description      string `json:"description"`
	DueDay           int    `json:"dueDay"`
	Amount           string `json:"amount"`
	RemainingBalance string `json:"remainingBalance"`
}

// AssignedIncomeResponse identifies the income covering an expense
type AssignedIncomeResponse struct {
	Description string `json:"description"`
	DueDay      int    `json:"dueDay"`
}

// AllocationRowResponse is one expense row of the payment plan
type AllocationRowResponse struct {
	ExpenseDescription string                  `json:"expenseDescription"`
	DueDay             int                     `json:"dueDay"`
	Amount             string                  `json:"amount"`
	Category           string                  `json:"category,omitempty"`
	AssignedIncome     *AssignedIncomeResponse `json:"assignedIncome,omitempty"`
	Timing             string                  `json:"timing"`
}

// PaymentPlanResponse represents the monthly payment plan
type PaymentPlanResponse struct {
	Month        string                  `json:"month"`
	Incomes      []IncomeSlotResponse    `json:"incomes"`
	Allocations  []AllocationRowResponse `json:"allocations"`
	TotalIncome  string                  `json:"totalIncome"`
	TotalExpense string                  `json:"totalExpense"`
	NetBalance   string                  `json:"netBalance"`
	Verdict      string                  `json:"verdict"`
	Advice       string                  `json:"advice"`
}

// GetPaymentPlan handles GET /api/v1/payment-plan?month=YYYY-MM
func (h *AllocationHandler) GetPaymentPlan(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var selected domain.YearMonth
	if monthParam := c.QueryParam("month"); monthParam != "" {
		parsed, err := domain.ParseYearMonth(monthParam)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		selected = parsed
	}
	target := service.ResolveTargetMonth(service.PeriodMonth, selected, time.Now())

	report, err := h.allocationService.PlanMonth(userID, target)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("month", target.String()).Msg("Failed to compute payment plan")
		return NewInternalError(c, "Failed to compute payment plan")
	}

	return c.JSON(http.StatusOK, toPaymentPlanResponse(report))
}

func toPaymentPlanResponse(report *domain.MonthlyAllocationReport) PaymentPlanResponse {
	incomes := make([]IncomeSlotResponse, len(report.Incomes))
	for i, in := range report.Incomes {
		incomes[i] = IncomeSlotResponse{
			Description:      in.Description,
			DueDay:           in.DueDay,
			Amount:           in.Amount.StringFixed(2),
			RemainingBalance: in.RemainingBalance.StringFixed(2),
		}
	}

	allocations := make([]AllocationRowResponse, len(report.Allocations))
	for i, alloc := range report.Allocations {
		row := AllocationRowResponse{
			ExpenseDescription: alloc.ExpenseDescription,
			DueDay:             alloc.DueDay,
			Amount:             alloc.Amount.StringFixed(2),
			Category:           alloc.Category,
			Timing:             string(alloc.Timing),
		}
		if alloc.AssignedIncome != nil {
			row.AssignedIncome = &AssignedIncomeResponse{
				Description: alloc.AssignedIncome.Description,
				DueDay:      alloc.AssignedIncome.DueDay,
			}
		}
		allocations[i] = row
	}

	return PaymentPlanResponse{
		Month:        report.Month.String(),
		Incomes:      incomes,
		Allocations:  allocations,
		TotalIncome:  report.TotalIncome.StringFixed(2),
		TotalExpense: report.TotalExpense.StringFixed(2),
		NetBalance:   report.NetBalance.StringFixed(2),
		Verdict:      string(report.Verdict),
		Advice:       report.Verdict.Advice(),
	}
}
