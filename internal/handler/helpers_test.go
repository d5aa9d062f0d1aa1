package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/fraud"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/models"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/stats"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Expense{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// fakeClassifier returns a fixed verdict or error, for substituting the
// external fraud service.
type fakeClassifier struct {
	verdict fraud.Verdict
	err     error
}

func (f *fakeClassifier) Classify(ctx context.Context, attrs fraud.Attributes) (fraud.Verdict, error) {
	return f.verdict, f.err
}

// setupAPI wires the protected API routes with a stub auth middleware that
// injects the given user.
func setupAPI(t *testing.T, db *gorm.DB, user *models.User, classifier fraud.Classifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	})

	statsSvc := stats.New(db)

	expenseHandler := NewExpenseHandler(db, statsSvc, 10)
	api.POST("/expenses", expenseHandler.Create)
	api.GET("/expenses", expenseHandler.List)
	api.GET("/expenses/:id", expenseHandler.Get)
	api.PUT("/expenses/:id", expenseHandler.Update)
	api.DELETE("/expenses/:id", expenseHandler.Delete)

	transactionHandler := NewTransactionHandler(db, classifier, 10)
	api.POST("/transactions", transactionHandler.Create)
	api.GET("/transactions", transactionHandler.List)
	api.GET("/transactions/fraud", transactionHandler.ListFraud)

	dashboardHandler := NewDashboardHandler(statsSvc, 5)
	api.GET("/dashboard/stats", dashboardHandler.GetStats)
	api.GET("/dashboard/recent", dashboardHandler.GetRecent)

	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope is the generic API reply shape.
type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Errors  []string               `json:"errors"`
	Data    map[string]interface{} `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

// jsonUnmarshal keeps list-shaped replies easy to decode in tests.
func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
