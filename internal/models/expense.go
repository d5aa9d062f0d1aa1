package models

import "time"

// Expense is a single spending record owned by exactly one user.
// Date is when the money was spent; CreatedAt is when the record was made.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"-"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    Category  `gorm:"size:32;index;not null;default:Other" json:"category"`
	Description string    `gorm:"size:200" json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
