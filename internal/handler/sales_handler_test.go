package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// stubSalesService returns canned results so the handler's status
// mapping can be tested without a database.
type stubSalesService struct {
	recordErr error
	recorded  *model.Transaction
	deleteErr error
	deleted   int
}

func (s *stubSalesService) RecordSale(req *model.Transaction, userID, userName string) (*model.Transaction, error) {
	if s.recordErr != nil {
		return nil, s.recordErr
	}
	return s.recorded, nil
}

func (s *stubSalesService) GetAllTransactions() ([]model.Transaction, error) { return nil, nil }

func (s *stubSalesService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return nil, repository.ErrNotFound
}

func (s *stubSalesService) GetTransactionsByDate(date string) ([]model.Transaction, error) {
	return nil, nil
}

func (s *stubSalesService) GetTransactionsByDateRange(start, end string) ([]model.Transaction, error) {
	return nil, nil
}

func (s *stubSalesService) DeleteAllTransactions(userID string) error { return nil }

func (s *stubSalesService) DeleteByItemAndDate(itemID uuid.UUID, date string, userID string) (int, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	return s.deleted, nil
}

func newSalesApp(svc *stubSalesService) *fiber.App {
	app := fiber.New()
	h := NewSalesHandler(svc)
	app.Post("/transactions", h.CreateTransaction)
	app.Delete("/transactions/item", h.DeleteByItemAndDate)
	return app
}

func postJSON(app *fiber.App, t *testing.T, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func TestCreateTransactionSuccess(t *testing.T) {
	recorded := &model.Transaction{
		Date:          "2025-03-12",
		TotalAmount:   decimal.RequireFromString("30.00"),
		PaymentMethod: model.PaymentCash,
		CashAmount:    decimal.RequireFromString("30.00"),
	}
	recorded.ID = uuid.New()
	app := newSalesApp(&stubSalesService{recorded: recorded})

	status, body := postJSON(app, t, "/transactions", `{"date":"2025-03-12","items":[],"total_amount":"30.00","payment_method":"cash"}`)
	if status != 201 {
		t.Fatalf("expected 201, got %d", status)
	}
	data := body["data"].(map[string]interface{})
	if data["total_amount"] != "30.00" {
		t.Fatalf("expected formatted total 30.00, got %v", data["total_amount"])
	}
}

func TestCreateTransactionInsufficientStockMapsTo409(t *testing.T) {
	app := newSalesApp(&stubSalesService{
		recordErr: &repository.InsufficientStockError{ItemName: "Tea", Available: 2, Requested: 3},
	})

	status, body := postJSON(app, t, "/transactions", `{"date":"2025-03-12","items":[],"total_amount":"30.00","payment_method":"cash"}`)
	if status != 409 {
		t.Fatalf("expected 409, got %d", status)
	}
	if body["item_name"] != "Tea" {
		t.Fatalf("expected item_name Tea, got %v", body["item_name"])
	}
	if body["available"] != float64(2) || body["requested"] != float64(3) {
		t.Fatalf("expected shortfall detail, got %v", body)
	}
}

func TestCreateTransactionUnknownItemMapsTo404(t *testing.T) {
	app := newSalesApp(&stubSalesService{recordErr: repository.ErrNotFound})

	status, _ := postJSON(app, t, "/transactions", `{"date":"2025-03-12","items":[],"total_amount":"30.00","payment_method":"cash"}`)
	if status != 404 {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestCreateTransactionInvalidInputMapsTo400(t *testing.T) {
	app := newSalesApp(&stubSalesService{
		recordErr: fmt.Errorf("%w: invalid date %q", repository.ErrInvalidInput, "not-a-date"),
	})

	status, _ := postJSON(app, t, "/transactions", `{"date":"not-a-date","items":[],"total_amount":"30.00","payment_method":"cash"}`)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestCreateTransactionStorageErrorMapsTo500(t *testing.T) {
	app := newSalesApp(&stubSalesService{recordErr: errors.New("connection refused")})

	status, body := postJSON(app, t, "/transactions", `{"date":"2025-03-12","items":[],"total_amount":"30.00","payment_method":"cash"}`)
	if status != 500 {
		t.Fatalf("expected 500, got %d", status)
	}
	if msg := body["error"]; msg == "connection refused" {
		t.Fatalf("internal error detail must not leak to the client, got %v", msg)
	}
}

func TestCreateTransactionBadJSON(t *testing.T) {
	app := newSalesApp(&stubSalesService{})

	status, _ := postJSON(app, t, "/transactions", `{not json`)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestDeleteByItemAndDateValidation(t *testing.T) {
	app := newSalesApp(&stubSalesService{deleted: 2})

	req := httptest.NewRequest("DELETE", "/transactions/item?item_id=not-a-uuid&date=2025-03-12", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for bad uuid, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/transactions/item?item_id="+uuid.New().String(), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for missing date, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/transactions/item?item_id="+uuid.New().String()+"&date=2025-03-12", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
