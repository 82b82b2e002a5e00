package handler

import (
	"errors"

	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"
	"go-counter-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// Helpers to pull user info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondServiceError maps the error taxonomy onto HTTP statuses:
// missing entity 404, insufficient stock 409 (with the shortfall
// detail), rejected input 400. Anything unclassified is a storage or
// internal failure and surfaces as 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var stockErr *repository.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(409).JSON(fiber.Map{
			"error":     stockErr.Error(),
			"item_name": stockErr.ItemName,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	}
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, repository.ErrInvalidInput) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

// CreateTransaction records a sale
// POST /api/v1/transactions
func (h *SalesHandler) CreateTransaction(c *fiber.Ctx) error {
	var tx model.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	recorded, err := h.service.RecordSale(&tx, getUserID(c), getUserName(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": recorded.ToResponse()})
}

// GetTransactions lists transactions, newest first.
// Query params: date (exact day) OR start+end (inclusive range)
// GET /api/v1/transactions
func (h *SalesHandler) GetTransactions(c *fiber.Ctx) error {
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")

	var (
		transactions []model.Transaction
		err          error
	)
	switch {
	case date != "":
		transactions, err = h.service.GetTransactionsByDate(date)
	case start != "" && end != "":
		transactions, err = h.service.GetTransactionsByDateRange(start, end)
	default:
		transactions, err = h.service.GetAllTransactions()
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	responses := make([]model.TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = transactions[i].ToResponse()
	}
	return c.JSON(responses)
}

// GetTransaction returns one transaction by id
// GET /api/v1/transactions/:id
func (h *SalesHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(tx.ToResponse())
}

// DeleteAllTransactions clears the ledger and all rollups
// DELETE /api/v1/transactions
func (h *SalesHandler) DeleteAllTransactions(c *fiber.Ctx) error {
	if err := h.service.DeleteAllTransactions(getUserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "All transactions deleted"})
}

// DeleteByItemAndDate undoes a specific item's recorded sales for a day
// DELETE /api/v1/transactions/item?item_id=<uuid>&date=YYYY-MM-DD
func (h *SalesHandler) DeleteByItemAndDate(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Query("item_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}
	date := c.Query("date")
	if date == "" {
		return c.Status(400).JSON(fiber.Map{"error": "date is required"})
	}

	count, err := h.service.DeleteByItemAndDate(itemID, date, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transactions deleted", "count": count})
}
