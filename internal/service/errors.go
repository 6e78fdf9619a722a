package service

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrValidation = errors.New("validation failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category is still referenced by products")

	ErrShiftNotFound   = errors.New("shift not found")
	ErrOpenShiftExists = errors.New("you already have an open shift")
	ErrShiftNotOwned   = errors.New("shift does not belong to you")
	ErrShiftClosed     = errors.New("shift is already closed")
)

// InsufficientStockError names the product that could not cover the
// requested quantity so the cashier sees which line to fix.
type InsufficientStockError struct {
	ProductName string
	Stock       int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
