package models

import (
	"fmt"
	"time"
)

// FraudVerdict is the classification result stored with a transaction.
// It is a value type owned by its parent record and is never referenced
// independently.
type FraudVerdict struct {
	IsFraud    bool      `gorm:"not null;default:false" json:"isFraud"`
	Confidence float64   `gorm:"not null;default:0" json:"confidence"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// NewFraudVerdict builds a verdict, enforcing confidence in [0, 1].
func NewFraudVerdict(isFraud bool, confidence float64, checkedAt time.Time) (FraudVerdict, error) {
	if confidence < 0 || confidence > 1 {
		return FraudVerdict{}, fmt.Errorf("confidence out of range [0,1]: %f", confidence)
	}
	return FraudVerdict{
		IsFraud:    isFraud,
		Confidence: confidence,
		CheckedAt:  checkedAt,
	}, nil
}

// Transaction is an append-only payment record. Time is when the payment
// occurred, distinct from CreatedAt.
type Transaction struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"index;not null" json:"-"`
	Amount      float64      `gorm:"not null" json:"amount"`
	Location    string       `gorm:"size:128;not null" json:"location"`
	Description string       `gorm:"size:200" json:"description"`
	Time        time.Time    `gorm:"index;not null" json:"time"`
	FraudResult FraudVerdict `gorm:"embedded;embeddedPrefix:fraud_" json:"fraudResult"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
}
