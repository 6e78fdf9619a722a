package repository

import (
	"time"

	"go-pos-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindRecent(limit int) ([]model.Transaction, error)
	FindByShift(shiftID uuid.UUID) ([]model.Transaction, error)
	FindItems(transactionID uuid.UUID) ([]model.TransactionItem, error)

	GetSalesStats(since time.Time) (*SalesStats, error)
	GetDailySales(startDate, endDate time.Time) ([]DailySalesData, error)
	GetTopProductSales(limit int) ([]ProductSalesData, error)
}

// SalesStats untuk overview stats
type SalesStats struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// DailySalesData untuk chart data
type DailySalesData struct {
	Date  string          `json:"date"`
	Sales decimal.Decimal `json:"sales"`
}

// ProductSalesData untuk top seller chart
type ProductSalesData struct {
	Name  string          `json:"name"`
	Sales decimal.Decimal `json:"sales"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Order("created_at DESC").Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByShift(shiftID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Where("shift_id = ?", shiftID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindItems(transactionID uuid.UUID) ([]model.TransactionItem, error) {
	var items []model.TransactionItem
	err := r.db.Where("transaction_id = ?", transactionID).Find(&items).Error
	return items, err
}

func (r *transactionRepo) GetSalesStats(since time.Time) (*SalesStats, error) {
	var stats SalesStats
	err := r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(total), 0) as total, COUNT(id) as count").
		Where("created_at >= ?", since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *transactionRepo) GetDailySales(startDate, endDate time.Time) ([]DailySalesData, error) {
	var results []DailySalesData

	// Query untuk aggregate sales per hari
	rows, err := r.db.Model(&model.Transaction{}).
		Select("DATE(created_at) as date, COALESCE(SUM(total), 0) as sales").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySalesData
		if err := rows.Scan(&data.Date, &data.Sales); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

// GetTopProductSales groups by the denormalized product name snapshot on
// transaction_items. The dashboard labels the result "categories"; the
// grouping key is kept as-is to match the observed report.
func (r *transactionRepo) GetTopProductSales(limit int) ([]ProductSalesData, error) {
	var results []ProductSalesData

	rows, err := r.db.Model(&model.TransactionItem{}).
		Select("product_name as name, COALESCE(SUM(total), 0) as sales").
		Group("product_name").
		Order("sales DESC").
		Limit(limit).
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data ProductSalesData
		if err := rows.Scan(&data.Name, &data.Sales); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
