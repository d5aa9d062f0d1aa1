package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/models"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/stats"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler serves expense CRUD and the filtered listing.
type ExpenseHandler struct {
	DB       *gorm.DB
	Stats    *stats.Service
	PageSize int
}

func NewExpenseHandler(db *gorm.DB, statsSvc *stats.Service, pageSize int) *ExpenseHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ExpenseHandler{
		DB:       db,
		Stats:    statsSvc,
		PageSize: pageSize,
	}
}

type createExpenseReq struct {
	Amount      *float64 `json:"amount" binding:"required"`
	Category    string   `json:"category"`
	Description string   `json:"description" binding:"max=200"`
	Date        string   `json:"date"`
}

// validate returns field-level errors and the parsed category/date.
func (r *createExpenseReq) validate() ([]string, models.Category, time.Time) {
	var errs []string

	if r.Amount == nil || *r.Amount < 0 {
		errs = append(errs, "amount must be a non-negative number")
	}

	category := models.CategoryOther
	if strings.TrimSpace(r.Category) != "" {
		category = models.Category(strings.TrimSpace(r.Category))
		if !category.Valid() {
			errs = append(errs, "category must be one of the known categories")
		}
	}

	date := time.Now()
	if r.Date != "" {
		parsed, ok := parseDate(r.Date)
		if !ok {
			errs = append(errs, "date must be a valid date")
		} else {
			date = parsed
		}
	}

	return errs, category, date
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs, category, date := req.validate()
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	expense := models.Expense{
		UserID:      user.ID,
		Amount:      *req.Amount,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Created(c, util.Response{
		"expense": expense,
	})
}

// List returns the user's expenses filtered by category and date range,
// paginated, together with the category summary and pagination info.
func (h *ExpenseHandler) List(c *gin.Context) {
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

	query := h.DB.Model(&models.Expense{}).Where("user_id = ?", user.ID)

	if category := c.Query("category"); category != "" {
		if !models.Category(category).Valid() {
			util.Error(c, http.StatusBadRequest, "Unknown category")
			return
		}
		query = query.Where("category = ?", category)
	}
	if startStr := c.Query("startDate"); startStr != "" {
		start, ok := parseDate(startStr)
		if !ok {
			util.Error(c, http.StatusBadRequest, "Invalid startDate")
			return
		}
		query = query.Where("date >= ?", start)
	}
	if endStr := c.Query("endDate"); endStr != "" {
		end, ok := parseDate(endStr)
		if !ok {
			util.Error(c, http.StatusBadRequest, "Invalid endDate")
			return
		}
		query = query.Where("date <= ?", end)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	expenses := make([]models.Expense, 0, limit)
	if err := query.Session(&gorm.Session{}).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	// summary covers all of the user's expenses, not just the current filter
	categorySummary, err := h.Stats.CategoryBreakdown(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Success(c, util.Response{
		"expenses":        expenses,
		"categorySummary": categorySummary,
		"pagination": util.Response{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// findOwned loads one expense scoped to the user. Absent and not-owned are
// indistinguishable to the caller.
func (h *ExpenseHandler) findOwned(c *gin.Context, userID uint) (*models.Expense, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, "Expense not found")
		return nil, false
	}

	var expense models.Expense
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Expense not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error")
		}
		return nil, false
	}
	return &expense, true
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	expense, ok := h.findOwned(c, user.ID)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"expense": expense,
	})
}

type updateExpenseReq struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []string
	if req.Amount != nil && *req.Amount < 0 {
		errs = append(errs, "amount must be a non-negative number")
	}
	if req.Category != nil && !models.Category(*req.Category).Valid() {
		errs = append(errs, "category must be one of the known categories")
	}
	if req.Description != nil && len(*req.Description) > 200 {
		errs = append(errs, "description cannot be more than 200 characters")
	}
	var date time.Time
	if req.Date != nil {
		parsed, ok := parseDate(*req.Date)
		if !ok {
			errs = append(errs, "date must be a valid date")
		}
		date = parsed
	}
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	expense, ok := h.findOwned(c, user.ID)
	if !ok {
		return
	}

	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = models.Category(*req.Category)
	}
	if req.Description != nil {
		expense.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		expense.Date = date
	}

	if err := h.DB.Save(expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Success(c, util.Response{
		"expense": expense,
	})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	expense, ok := h.findOwned(c, user.ID)
	if !ok {
		return
	}

	if err := h.DB.Delete(expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Success(c, util.Response{
		"message": "Expense deleted successfully",
	})
}
