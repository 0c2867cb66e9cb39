package handler

import (
	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, recurringHandler *RecurringHandler, entryHandler *EntryHandler, investmentHandler *InvestmentHandler, categoryHandler *CategoryHandler, importHandler *ImportHandler, cardHandler *CardHandler, allocationHandler *AllocationHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Everything below requires a bearer token
	protected := api.Group("", authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))

	protected.GET("/auth/me", authHandler.Me)

	// Recurring item routes
	recurring := protected.Group("/recurring-items")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.ListRecurring)
	recurring.GET("/:id", recurringHandler.GetRecurring)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.PATCH("/:id/toggle-active", recurringHandler.ToggleActive)
	recurring.POST("/generate", recurringHandler.Generate)

	// Ledger entry routes
	entries := protected.Group("/entries")
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("", entryHandler.ListEntries)
	entries.GET("/summary", entryHandler.Summary)
	entries.GET("/:id", entryHandler.GetEntry)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Category rule routes
	rules := protected.Group("/category-rules")
	rules.POST("", categoryHandler.CreateRule)
	rules.GET("", categoryHandler.ListRules)
	rules.DELETE("/:id", categoryHandler.DeleteRule)
	protected.GET("/categories/suggest", categoryHandler.Suggest)

	// Statement import routes
	imports := protected.Group("/import")
	imports.POST("/statement", importHandler.ParseStatement)
	imports.POST("/confirm", importHandler.ConfirmImport)

	// Credit card routes
	cards := protected.Group("/cards")
	cards.POST("", cardHandler.CreateCard)
	cards.GET("", cardHandler.ListCards)
	cards.GET("/alerts", cardHandler.InvoiceAlerts)
	cards.GET("/:id", cardHandler.GetCard)
	cards.PUT("/:id", cardHandler.UpdateCard)
	cards.DELETE("/:id", cardHandler.DeleteCard)
	cards.GET("/:id/invoices", cardHandler.ListInvoices)
	cards.POST("/:id/invoices/compute", cardHandler.ComputeInvoice)

	// Payment plan
	protected.GET("/payment-plan", allocationHandler.GetPaymentPlan)
}
