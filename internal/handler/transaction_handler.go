package handler

import (
	"strconv"

	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	saleService service.SaleService
}

func NewTransactionHandler(saleService service.SaleService) *TransactionHandler {
	return &TransactionHandler{saleService: saleService}
}

// CreateTransactionRequest mirrors what the checkout screen sends. The
// header totals are advisory; the service recomputes the subtotal from
// the lines and takes only the tax amount as given.
type CreateTransactionRequest struct {
	Transaction struct {
		ShiftID       uuid.UUID       `json:"shift_id"`
		Subtotal      decimal.Decimal `json:"subtotal"`
		Tax           decimal.Decimal `json:"tax"`
		Total         decimal.Decimal `json:"total"`
		PaymentMethod string          `json:"payment_method"`
	} `json:"transaction"`
	Items []struct {
		ProductID   uuid.UUID       `json:"product_id"`
		ProductName string          `json:"product_name"`
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
		Total       decimal.Decimal `json:"total"`
	} `json:"items"`
}

// CreateTransaction finalizes a cart
// POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale := service.SaleRequest{
		ShiftID:       req.Transaction.ShiftID,
		PaymentMethod: req.Transaction.PaymentMethod,
		Tax:           req.Transaction.Tax,
		Lines:         make([]service.CartLine, len(req.Items)),
	}
	for i, item := range req.Items {
		sale.Lines[i] = service.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	transaction, err := h.saleService.CommitSale(&sale, userID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(transaction)
}

// GetTransactions lists recent transactions
// GET /api/transactions?limit=N
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	transactions, err := h.saleService.GetRecentTransactions(limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}

// GetShiftTransactions lists one shift's transactions
// GET /api/transactions/shift/:shiftId
func (h *TransactionHandler) GetShiftTransactions(c *fiber.Ctx) error {
	shiftID, err := uuid.Parse(c.Params("shiftId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	transactions, err := h.saleService.GetTransactionsByShift(shiftID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}

// GetTransactionItems lists the line items of one transaction
// GET /api/transactions/:id/items
func (h *TransactionHandler) GetTransactionItems(c *fiber.Ctx) error {
	transactionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	items, err := h.saleService.GetTransactionItems(transactionID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}
