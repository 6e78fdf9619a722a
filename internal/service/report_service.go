package service

import (
	"time"

	"go-pos-ws/internal/repository"

	"github.com/shopspring/decimal"
)

// Hari dalam seminggu, indexed by time.Weekday
var dayNames = [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

// WeeklySalesData is one bar of the weekly chart
type WeeklySalesData struct {
	Name  string          `json:"name"`
	Sales decimal.Decimal `json:"sales"`
}

type ReportService interface {
	GetSalesStats(days int) (*repository.SalesStats, error)
	GetWeeklySales() ([]WeeklySalesData, error)
	GetCategorySales() ([]repository.ProductSalesData, error)
}

type reportService struct {
	transactionRepo repository.TransactionRepository
}

func NewReportService(transactionRepo repository.TransactionRepository) ReportService {
	return &reportService{transactionRepo: transactionRepo}
}

func (s *reportService) GetSalesStats(days int) (*repository.SalesStats, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.transactionRepo.GetSalesStats(since)
}

// GetWeeklySales returns the trailing 7 days oldest to newest, one entry
// per day, zero-filled when a day had no transactions.
func (s *reportService) GetWeeklySales() ([]WeeklySalesData, error) {
	now := time.Now()
	startDate := now.AddDate(0, 0, -6)

	raw, err := s.transactionRepo.GetDailySales(
		time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location()),
		now,
	)
	if err != nil {
		return nil, err
	}

	salesByDate := make(map[string]decimal.Decimal, len(raw))
	for _, r := range raw {
		// Keep only the date part; some drivers return a full timestamp.
		key := r.Date
		if len(key) > 10 {
			key = key[:10]
		}
		salesByDate[key] = r.Sales
	}

	week := make([]WeeklySalesData, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		sales, ok := salesByDate[date.Format("2006-01-02")]
		if !ok {
			sales = decimal.Zero
		}
		week = append(week, WeeklySalesData{
			Name:  dayNames[date.Weekday()],
			Sales: sales,
		})
	}

	return week, nil
}

// GetCategorySales returns the top 5 sellers. The grouping key is the
// item's product name snapshot; see DESIGN.md.
func (s *reportService) GetCategorySales() ([]repository.ProductSalesData, error) {
	return s.transactionRepo.GetTopProductSales(5)
}
