package service

import (
	"errors"
	"testing"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), nil)
}

func TestProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(db)

	product := &model.Product{
		Name:     "Espresso Intenso",
		Category: "Coffee",
		Price:    mustDecimal(t, "3.50"),
		Stock:    45,
	}
	if err := svc.CreateProduct(product); err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID == uuid.Nil {
		t.Fatal("no generated id")
	}

	newPrice := mustDecimal(t, "3.75")
	newStock := 50
	updated, err := svc.UpdateProduct(product.ID, &UpdateProductRequest{
		Price: &newPrice,
		Stock: &newStock,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Price.Equal(newPrice) || updated.Stock != 50 {
		t.Errorf("update applied %s/%d, want 3.75/50", updated.Price, updated.Stock)
	}
	if updated.Name != "Espresso Intenso" {
		t.Errorf("partial update touched name: %q", updated.Name)
	}

	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound after delete", err)
	}
}

func TestProductValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(db)

	if err := svc.CreateProduct(&model.Product{Category: "Coffee"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for missing name", err)
	}

	product := seedProduct(t, db, "Espresso Intenso", "Coffee", "3.50", 45)
	negative := -1
	if _, err := svc.UpdateProduct(product.ID, &UpdateProductRequest{Stock: &negative}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for negative stock", err)
	}
}

func TestProductDeleteKeepsHistory(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "kasir@test")
	shift := openTestShift(t, db, user)
	product := seedProduct(t, db, "Espresso Intenso", "Coffee", "3.50", 45)

	saleSvc := newSaleService(db)
	tx, err := saleSvc.CommitSale(&SaleRequest{
		ShiftID:       shift.ID,
		PaymentMethod: model.PaymentCash,
		Lines:         []CartLine{{ProductID: product.ID, Quantity: 1, Price: mustDecimal(t, "3.50")}},
	}, user.ID)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := newCatalogService(db).DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The item row keeps its snapshot
	items, err := saleSvc.GetTransactionItems(tx.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("items = %v (%v), want the snapshot row", items, err)
	}
	if items[0].ProductName != "Espresso Intenso" {
		t.Errorf("snapshot name = %q", items[0].ProductName)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(db)

	if _, err := svc.CreateCategory("Coffee"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateCategory("Coffee"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("err = %v, want ErrCategoryExists", err)
	}
	// Uniqueness is case-sensitive
	if _, err := svc.CreateCategory("coffee"); err != nil {
		t.Fatalf("lowercase variant rejected: %v", err)
	}
}

func TestDeleteCategoryGuard(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(db)

	category, err := svc.CreateCategory("Coffee")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	product := seedProduct(t, db, "Espresso Intenso", "Coffee", "3.50", 45)

	// Rejected while referenced, idempotently
	for i := 0; i < 2; i++ {
		if err := svc.DeleteCategory(category.ID); !errors.Is(err, ErrCategoryInUse) {
			t.Fatalf("err = %v, want ErrCategoryInUse", err)
		}
	}

	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := svc.DeleteCategory(category.ID); err != nil {
		t.Fatalf("delete after products gone: %v", err)
	}

	if err := svc.DeleteCategory(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}
