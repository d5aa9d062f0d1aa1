package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/fraud"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/models"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the append-only transaction endpoints.
type TransactionHandler struct {
	DB         *gorm.DB
	Classifier fraud.Classifier
	PageSize   int
}

func NewTransactionHandler(db *gorm.DB, classifier fraud.Classifier, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TransactionHandler{
		DB:         db,
		Classifier: classifier,
		PageSize:   pageSize,
	}
}

type createTransactionReq struct {
	Amount      *float64 `json:"amount" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Description string   `json:"description" binding:"max=200"`
}

// Create classifies the transaction via the external service and persists it
// with the verdict. A failed fraud check degrades to the default verdict; it
// never rejects the transaction.
func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []string
	if req.Amount == nil || *req.Amount < 0 {
		errs = append(errs, "amount must be a non-negative number")
	}
	req.Location = strings.TrimSpace(req.Location)
	if req.Location == "" {
		errs = append(errs, "location is required")
	}
	occurredAt, okTime := parseDate(req.Time)
	if !okTime {
		errs = append(errs, "time must be a valid date")
	}
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	description := strings.TrimSpace(req.Description)

	verdict := fraud.Check(c.Request.Context(), h.Classifier, fraud.Attributes{
		Amount:      *req.Amount,
		Location:    req.Location,
		Time:        occurredAt.UnixMilli(),
		Description: description,
	})

	stored, err := models.NewFraudVerdict(verdict.IsFraud, verdict.Confidence, verdict.CheckedAt)
	if err != nil {
		// classifier already clamps; a bad verdict degrades, never rejects
		stored, _ = models.NewFraudVerdict(false, 0, time.Now())
	}

	transaction := models.Transaction{
		UserID:      user.ID,
		Amount:      *req.Amount,
		Location:    req.Location,
		Description: description,
		Time:        occurredAt,
		FraudResult: stored,
	}
	if err := h.DB.Create(&transaction).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Created(c, util.Response{
		"transaction": transaction,
		"fraudAlert":  verdict.IsFraud,
		"verdict":     verdict,
	})
}

func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	if limit <= 0 || limit > 100 {
		limit = h.PageSize
	}
	offset := (page - 1) * limit

	var total int64
	if err := h.DB.Model(&models.Transaction{}).
		Where("user_id = ?", user.ID).
		Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	transactions := make([]models.Transaction, 0, limit)
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Success(c, util.Response{
		"transactions": transactions,
		"pagination": util.Response{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// ListFraud returns the user's flagged transactions, newest first.
func (h *TransactionHandler) ListFraud(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	transactions := make([]models.Transaction, 0)
	if err := h.DB.Where("user_id = ? AND fraud_is_fraud = ?", user.ID, true).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.SuccessData(c, transactions)
}
