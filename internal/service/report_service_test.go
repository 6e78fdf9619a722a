package service

import (
	"fmt"
	"testing"
	"time"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func commitTestSale(t *testing.T, db *gorm.DB, user *model.User, shift *model.Shift, product *model.Product, qty int) *model.Transaction {
	t.Helper()
	tx, err := newSaleService(db).CommitSale(&SaleRequest{
		ShiftID:       shift.ID,
		PaymentMethod: model.PaymentCash,
		Tax:           decimal.Zero,
		Lines:         []CartLine{{ProductID: product.ID, Quantity: qty, Price: product.Price}},
	}, user.ID)
	if err != nil {
		t.Fatalf("commit sale: %v", err)
	}
	return tx
}

func TestGetSalesStats(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "kasir@test")
	shift := openTestShift(t, db, user)
	product := seedProduct(t, db, "Espresso Intenso", "Coffee", "3.50", 100)

	commitTestSale(t, db, user, shift, product, 2) // 7.00
	commitTestSale(t, db, user, shift, product, 1) // 3.50

	// A sale outside the window is not counted
	old := &model.Transaction{
		ShiftID:       shift.ID,
		UserID:        user.ID,
		Subtotal:      mustDecimal(t, "99.00"),
		Tax:           decimal.Zero,
		Total:         mustDecimal(t, "99.00"),
		PaymentMethod: model.PaymentCash,
	}
	old.CreatedAt = time.Now().AddDate(0, 0, -30)
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed old transaction: %v", err)
	}

	svc := NewReportService(repository.NewTransactionRepo(db))
	stats, err := svc.GetSalesStats(7)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("count = %d, want 2", stats.Count)
	}
	if !stats.Total.Equal(mustDecimal(t, "10.50")) {
		t.Errorf("total = %s, want 10.50", stats.Total)
	}

	// A wider window picks the old sale up
	wide, err := svc.GetSalesStats(60)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if wide.Count != 3 {
		t.Errorf("count = %d, want 3", wide.Count)
	}
}

func TestGetWeeklySales(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "kasir@test")
	shift := openTestShift(t, db, user)
	product := seedProduct(t, db, "Espresso Intenso", "Coffee", "3.50", 100)

	commitTestSale(t, db, user, shift, product, 2) // 7.00 today

	svc := NewReportService(repository.NewTransactionRepo(db))
	week, err := svc.GetWeeklySales()
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}

	if len(week) != 7 {
		t.Fatalf("entries = %d, want 7 (zero-filled)", len(week))
	}

	// Oldest to newest: the last entry is today
	today := week[6]
	if today.Name != dayNames[time.Now().Weekday()] {
		t.Errorf("last entry = %q, want today's day name", today.Name)
	}
	if !today.Sales.Equal(mustDecimal(t, "7.00")) {
		t.Errorf("today's sales = %s, want 7.00", today.Sales)
	}

	// Every other day is zero-filled
	for i := 0; i < 6; i++ {
		if !week[i].Sales.IsZero() {
			t.Errorf("day %d sales = %s, want 0", i, week[i].Sales)
		}
	}
}

func TestGetCategorySales(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "kasir@test")
	shift := openTestShift(t, db, user)

	// Seven distinct products; grouping is by the item's product name
	// snapshot, top 5 by revenue.
	for i := 1; i <= 7; i++ {
		product := seedProduct(t, db, fmt.Sprintf("Product %d", i), "Coffee", "1.00", 100)
		commitTestSale(t, db, user, shift, product, i)
	}

	svc := NewReportService(repository.NewTransactionRepo(db))
	top, err := svc.GetCategorySales()
	if err != nil {
		t.Fatalf("category sales: %v", err)
	}

	if len(top) != 5 {
		t.Fatalf("entries = %d, want top 5", len(top))
	}
	if top[0].Name != "Product 7" {
		t.Errorf("top seller = %q, want Product 7", top[0].Name)
	}
	if !top[0].Sales.Equal(mustDecimal(t, "7.00")) {
		t.Errorf("top sales = %s, want 7.00", top[0].Sales)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Sales.GreaterThan(top[i-1].Sales) {
			t.Errorf("results not ordered by revenue descending at %d", i)
		}
	}
}
