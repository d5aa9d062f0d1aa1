package models

import (
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	valid := []Category{
		CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryBills, CategoryHealthcare, CategoryEducation, CategoryOther,
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("Category(%q).Valid() = false, want true", c)
		}
	}

	invalid := []Category{"", "food", "Groceries", "OTHER", "Food "}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("Category(%q).Valid() = true, want false", c)
		}
	}
}

func TestNewFraudVerdict(t *testing.T) {
	now := time.Now()

	v, err := NewFraudVerdict(true, 0.85, now)
	if err != nil {
		t.Fatalf("NewFraudVerdict(0.85) error = %v", err)
	}
	if !v.IsFraud || v.Confidence != 0.85 || !v.CheckedAt.Equal(now) {
		t.Errorf("NewFraudVerdict() = %+v, want {true 0.85 %v}", v, now)
	}

	// bounds are inclusive
	for _, conf := range []float64{0, 1} {
		if _, err := NewFraudVerdict(false, conf, now); err != nil {
			t.Errorf("NewFraudVerdict(%f) error = %v, want nil", conf, err)
		}
	}

	for _, conf := range []float64{-0.1, 1.01, 5} {
		if _, err := NewFraudVerdict(false, conf, now); err == nil {
			t.Errorf("NewFraudVerdict(%f) error = nil, want out-of-range error", conf)
		}
	}
}
