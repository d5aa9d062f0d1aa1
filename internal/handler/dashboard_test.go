package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/models"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	r := setupAPI(t, db, user, &fakeClassifier{})

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	db.Create(&models.Expense{UserID: user.ID, Amount: 100, Category: models.CategoryFood, Date: now})
	db.Create(&models.Expense{UserID: user.ID, Amount: 50, Category: models.CategoryTransport, Date: now})
	db.Create(&models.Transaction{
		UserID: user.ID, Amount: 200, Location: "X", Time: now,
		FraudResult: models.FraudVerdict{IsFraud: true, Confidence: 0.9, CheckedAt: now},
	})

	w := doJSON(t, r, http.MethodGet, "/api/dashboard/stats", nil)
	wantStatus(t, w, http.StatusOK)
	env := decodeEnvelope(t, w)

	expenses := env.Data["expenses"].(map[string]interface{})
	if expenses["total"].(float64) != 150 {
		t.Errorf("expenses.total = %v, want 150", expenses["total"])
	}
	if expenses["average"].(float64) != 75 {
		t.Errorf("expenses.average = %v, want 75", expenses["average"])
	}
	if expenses["count"].(float64) != 2 {
		t.Errorf("expenses.count = %v, want 2", expenses["count"])
	}

	fraudStats := env.Data["fraud"].(map[string]interface{})
	if fraudStats["totalTransactions"].(float64) != 1 {
		t.Errorf("fraud.totalTransactions = %v, want 1", fraudStats["totalTransactions"])
	}
	if fraudStats["fraudRate"].(float64) != 100 {
		t.Errorf("fraud.fraudRate = %v, want 100", fraudStats["fraudRate"])
	}

	breakdown := env.Data["categoryBreakdown"].([]interface{})
	if len(breakdown) != 2 {
		t.Fatalf("categoryBreakdown has %d buckets, want 2", len(breakdown))
	}
	first := breakdown[0].(map[string]interface{})
	if first["category"] != "Food" || first["total"].(float64) != 100 {
		t.Errorf("breakdown[0] = %v, want Food/100 first (descending total)", first)
	}

	if _, ok := env.Data["monthlyTrends"]; !ok {
		t.Error("monthlyTrends missing from stats payload")
	}
	if _, ok := env.Data["recentTransactions"]; !ok {
		t.Error("recentTransactions missing from stats payload")
	}
	if _, ok := env.Data["recentExpenses"]; !ok {
		t.Error("recentExpenses missing from stats payload")
	}
}

func TestDashboardStats_EmptyUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	r := setupAPI(t, db, user, &fakeClassifier{})

	w := doJSON(t, r, http.MethodGet, "/api/dashboard/stats", nil)
	wantStatus(t, w, http.StatusOK)
	env := decodeEnvelope(t, w)

	expenses := env.Data["expenses"].(map[string]interface{})
	for _, key := range []string{"total", "average", "count"} {
		if expenses[key].(float64) != 0 {
			t.Errorf("expenses.%s = %v, want 0", key, expenses[key])
		}
	}

	fraudStats := env.Data["fraud"].(map[string]interface{})
	if fraudStats["fraudRate"].(float64) != 0 {
		t.Errorf("fraud.fraudRate = %v, want 0", fraudStats["fraudRate"])
	}
}

func TestDashboardRecent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	r := setupAPI(t, db, user, &fakeClassifier{})

	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t3 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	db.Create(&models.Transaction{UserID: user.ID, Amount: 10, Location: "X", Time: t1, CreatedAt: t1})
	db.Create(&models.Transaction{UserID: user.ID, Amount: 20, Location: "Y", Time: t2, CreatedAt: t2})
	db.Create(&models.Expense{UserID: user.ID, Amount: 5, Category: models.CategoryFood, Date: t3})

	w := doJSON(t, r, http.MethodGet, "/api/dashboard/recent?limit=2", nil)
	wantStatus(t, w, http.StatusOK)

	var env struct {
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
	}
	if err := jsonUnmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(env.Data) != 2 {
		t.Fatalf("activity list has %d entries, want 2", len(env.Data))
	}
	if env.Data[0]["type"] != "transaction" {
		t.Errorf("first item type = %v, want transaction (newest)", env.Data[0]["type"])
	}
	if env.Data[1]["type"] != "expense" {
		t.Errorf("second item type = %v, want expense (middle date)", env.Data[1]["type"])
	}
}
