package service

import (
	"errors"
	"fmt"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/repository"
	"go-pos-ws/internal/ws"
	"go-pos-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine is one product scan in the cart. Price is the unit price at
// scan time; it is what gets snapshotted onto the item row, so a catalog
// price edit mid-sale does not change an already-rung line.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// SaleRequest is the cart handed to CommitSale. Tax is supplied
// precomputed; tax policy lives outside this workflow.
type SaleRequest struct {
	ShiftID       uuid.UUID       `json:"shift_id" validate:"uuid_required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card qris ewallet"`
	Tax           decimal.Decimal `json:"tax"`
	Lines         []CartLine      `json:"lines" validate:"required,min=1,dive"`
}

// SaleService finalizes carts into transactions. The commit touches four
// tables (transactions, transaction_items, shifts, products) and must
// land all of them or none.
type SaleService interface {
	CommitSale(req *SaleRequest, userID uuid.UUID) (*model.Transaction, error)
	GetRecentTransactions(limit int) ([]model.Transaction, error)
	GetTransactionsByShift(shiftID uuid.UUID) ([]model.Transaction, error)
	GetTransactionItems(transactionID uuid.UUID) ([]model.TransactionItem, error)
}

type saleService struct {
	shiftRepo       repository.ShiftRepository
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewSaleService(shiftRepo repository.ShiftRepository, productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		shiftRepo:       shiftRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		db:              db,
		wsHub:           hub,
	}
}

func (s *saleService) CommitSale(req *SaleRequest, userID uuid.UUID) (*model.Transaction, error) {
	// 1. Validasi input. All validation happens before any write.
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, errs[0].String())
	}

	// 2. Resolve the shift: must exist, belong to the caller, and be open.
	shift, err := s.shiftRepo.FindByID(req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if shift.UserID != userID {
		return nil, ErrShiftNotOwned
	}
	if !shift.IsOpen() {
		return nil, ErrShiftClosed
	}

	// 3. Resolve every product and check stock as read. No row lock is
	// taken here; two concurrent sales can both pass this check and
	// drive stock negative under load.
	products := make([]*model.Product, len(req.Lines))
	for i, line := range req.Lines {
		product, err := s.productRepo.FindByID(line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Stock:       product.Stock,
				Requested:   line.Quantity,
			}
		}
		products[i] = product
	}

	// 4. Totals from the scanned unit prices.
	subtotal := decimal.Zero
	for _, line := range req.Lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	total := subtotal.Add(req.Tax)

	transaction := &model.Transaction{
		ShiftID:       shift.ID,
		UserID:        userID,
		Subtotal:      subtotal,
		Tax:           req.Tax,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
	}

	// 5. Atomic write: transaction row, item rows, shift aggregates,
	// stock decrements. Any failure rolls the whole batch back.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		items := make([]model.TransactionItem, len(req.Lines))
		for i, line := range req.Lines {
			items[i] = model.TransactionItem{
				TransactionID: transaction.ID,
				ProductID:     line.ProductID,
				ProductName:   products[i].Name,
				Quantity:      line.Quantity,
				Price:         line.Price,
				Total:         line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		transaction.Items = items

		if err := s.shiftRepo.ApplySale(tx, shift.ID, total); err != nil {
			return err
		}

		for _, line := range req.Lines {
			if err := s.productRepo.DecrementStock(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		go s.broadcastSale(transaction, products, req.Lines)
	}

	return transaction, nil
}

func (s *saleService) broadcastSale(transaction *model.Transaction, products []*model.Product, lines []CartLine) {
	stock := make([]map[string]interface{}, len(lines))
	for i, line := range lines {
		stock[i] = map[string]interface{}{
			"product_id": line.ProductID,
			"name":       products[i].Name,
			"new_stock":  products[i].Stock - line.Quantity,
		}
	}
	s.wsHub.BroadcastEvent("sale_committed", map[string]interface{}{
		"transaction_id": transaction.ID,
		"shift_id":       transaction.ShiftID,
		"total":          transaction.Total,
		"stock":          stock,
	})
}

func (s *saleService) GetRecentTransactions(limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.transactionRepo.FindRecent(limit)
}

func (s *saleService) GetTransactionsByShift(shiftID uuid.UUID) ([]model.Transaction, error) {
	return s.transactionRepo.FindByShift(shiftID)
}

func (s *saleService) GetTransactionItems(transactionID uuid.UUID) ([]model.TransactionItem, error) {
	return s.transactionRepo.FindItems(transactionID)
}
