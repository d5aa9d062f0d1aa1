package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/models"

	"gorm.io/gorm"
)

// Service derives summary views from a user's expenses and transactions.
// All operations are read-only and scoped to one user id; rerunning them on
// unchanged data yields identical output.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ExpenseTotals holds sum, mean and count of a user's expense amounts.
type ExpenseTotals struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ExpenseTotals returns zeros, not nulls, when the user has no expenses.
func (s *Service) ExpenseTotals(userID uint) (ExpenseTotals, error) {
	var t ExpenseTotals
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0) AS total, COALESCE(AVG(amount), 0) AS average, COUNT(*) AS count").
		Scan(&t).Error
	if err != nil {
		return ExpenseTotals{}, fmt.Errorf("expense totals: %w", err)
	}
	return t, nil
}

// FraudSummary aggregates a user's transactions by fraud flag.
type FraudSummary struct {
	TotalTransactions int64   `json:"totalTransactions"`
	FraudTransactions int64   `json:"fraudTransactions"`
	FraudRate         float64 `json:"fraudRate"`
	TotalAmount       float64 `json:"totalAmount"`
	FraudAmount       float64 `json:"fraudAmount"`
}

// FraudSummary computes counts and amount sums overall and for flagged
// transactions. FraudRate is a percentage rounded to 2 decimals, 0 when the
// user has no transactions.
func (s *Service) FraudSummary(userID uint) (FraudSummary, error) {
	var fs FraudSummary
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select(`COUNT(*) AS total_transactions,
			COALESCE(SUM(CASE WHEN fraud_is_fraud THEN 1 ELSE 0 END), 0) AS fraud_transactions,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN fraud_is_fraud THEN amount ELSE 0 END), 0) AS fraud_amount`).
		Scan(&fs).Error
	if err != nil {
		return FraudSummary{}, fmt.Errorf("fraud summary: %w", err)
	}
	if fs.TotalTransactions > 0 {
		rate := float64(fs.FraudTransactions) / float64(fs.TotalTransactions) * 100
		fs.FraudRate = math.Round(rate*100) / 100
	}
	return fs, nil
}

// CategoryBucket is one row of the category breakdown.
type CategoryBucket struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// CategoryBreakdown groups the user's expenses by category, ordered by
// summed amount descending. Ties break on category name for determinism.
func (s *Service) CategoryBreakdown(userID uint) ([]CategoryBucket, error) {
	buckets := make([]CategoryBucket, 0)
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC, category ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	return buckets, nil
}

// MonthBucket is one (year, month) trend bucket.
type MonthBucket struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// trendMonths caps the monthly trend at the most recent buckets.
const trendMonths = 6

// MonthlyTrend groups the user's expenses by (year, month) of their date,
// newest first, truncated to the most recent 6 buckets.
func (s *Service) MonthlyTrend(userID uint) ([]MonthBucket, error) {
	buckets := make([]MonthBucket, 0, trendMonths)
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select(`CAST(strftime('%Y', date) AS INTEGER) AS year,
			CAST(strftime('%m', date) AS INTEGER) AS month,
			SUM(amount) AS total, COUNT(*) AS count`).
		Group("year, month").
		Order("year DESC, month DESC").
		Limit(trendMonths).
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	return buckets, nil
}

// ActivityItem is one entry of the merged recent-activity feed. Type is
// "transaction" or "expense"; Date is the item's relevant date (creation
// time for transactions, spend date for expenses).
type ActivityItem struct {
	Type string      `json:"type"`
	Date time.Time   `json:"date"`
	Data interface{} `json:"data"`
}

// RecentActivity merges the user's most recent transactions and expenses
// into one list sorted by date descending, truncated to limit.
func (s *Service) RecentActivity(userID uint, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = 10
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}

	items := make([]ActivityItem, 0, len(transactions)+len(expenses))
	for i := range transactions {
		items = append(items, ActivityItem{
			Type: "transaction",
			Date: transactions[i].CreatedAt,
			Data: transactions[i],
		})
	}
	for i := range expenses {
		items = append(items, ActivityItem{
			Type: "expense",
			Date: expenses[i].Date,
			Data: expenses[i],
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// RecentTransactions returns the user's newest transactions by creation time.
func (s *Service) RecentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0, limit)
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return transactions, nil
}

// RecentExpenses returns the user's newest expenses by spend date.
func (s *Service) RecentExpenses(userID uint, limit int) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0, limit)
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	return expenses, nil
}
