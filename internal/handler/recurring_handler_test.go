package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/financeia/financeia-backend/internal/middleware"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setupRecurringHandlerTest() (*echo.Echo, *RecurringHandler, *testutil.MockRecurringRepository, *testutil.MockEntryRepository) {
	e := echo.New()
	recurringRepo := testutil.NewMockRecurringRepository()
	entryRepo := testutil.NewMockEntryRepository()
	recurringService := service.NewRecurringService(recurringRepo, entryRepo)
	return e, NewRecurringHandler(recurringService), recurringRepo, entryRepo
}

func postJSON(e *echo.Echo, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetUserID(c, userID)
	return c, rec
}

func TestCreateRecurring_Success(t *testing.T) {
	e, handler, _, _ := setupRecurringHandlerTest()

	body := `{"description":"Rent","category":"Housing","direction":"expense","amount":"1500.00","dueDay":10,"startMonth":"2025-01"}`
	c, rec := postJSON(e, "/api/v1/recurring-items", body, uuid.New())

	if err := handler.CreateRecurring(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response RecurringResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Description != "Rent" {
		t.Errorf("Expected description 'Rent', got %s", response.Description)
	}
	if response.Amount != "1500.00" {
		t.Errorf("Expected amount '1500.00', got %s", response.Amount)
	}
	if !response.IsActive {
		t.Error("Expected new items to start active")
	}
}

func TestCreateRecurring_ValidationErrors(t *testing.T) {
	e, handler, _, _ := setupRecurringHandlerTest()
	userID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"bad amount", `{"description":"Rent","direction":"expense","amount":"lots","dueDay":10,"startMonth":"2025-01"}`},
		{"missing description", `{"description":"","direction":"expense","amount":"10.00","dueDay":10,"startMonth":"2025-01"}`},
		{"bad direction", `{"description":"Rent","direction":"sideways","amount":"10.00","dueDay":10,"startMonth":"2025-01"}`},
		{"bad due day", `{"description":"Rent","direction":"expense","amount":"10.00","dueDay":42,"startMonth":"2025-01"}`},
		{"bad month", `{"description":"Rent","direction":"expense","amount":"10.00","dueDay":10,"startMonth":"January"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON(e, "/api/v1/recurring-items", tt.body, userID)
			if err := handler.CreateRecurring(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetRecurring_NotFound(t *testing.T) {
	e, handler, _, _ := setupRecurringHandlerTest()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recurring-items/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	middleware.SetUserID(c, uuid.New())

	if err := handler.GetRecurring(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGenerate_DefaultsToCurrentMonth(t *testing.T) {
	e, handler, _, _ := setupRecurringHandlerTest()

	c, rec := postJSON(e, "/api/v1/recurring-items/generate", `{}`, uuid.New())
	if err := handler.Generate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.GeneratedCount != 0 || response.SkippedCount != 0 {
		t.Errorf("Expected nothing generated for an empty user, got %+v", response)
	}
}

func TestGenerate_BadMonth(t *testing.T) {
	e, handler, _, _ := setupRecurringHandlerTest()

	c, rec := postJSON(e, "/api/v1/recurring-items/generate", `{"month":"06/2025"}`, uuid.New())
	if err := handler.Generate(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
