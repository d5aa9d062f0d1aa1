package handler

import (
	"net/http"
	"strconv"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/stats"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/util"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the reporting endpoints on top of the stats engine.
type DashboardHandler struct {
	Stats       *stats.Service
	RecentLimit int
}

func NewDashboardHandler(statsSvc *stats.Service, recentLimit int) *DashboardHandler {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &DashboardHandler{
		Stats:       statsSvc,
		RecentLimit: recentLimit,
	}
}

// GetStats assembles every dashboard aggregate in one response.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	expenses, err := h.Stats.ExpenseTotals(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	fraudSummary, err := h.Stats.FraudSummary(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	categoryBreakdown, err := h.Stats.CategoryBreakdown(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	monthlyTrends, err := h.Stats.MonthlyTrend(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	recentTransactions, err := h.Stats.RecentTransactions(user.ID, h.RecentLimit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	recentExpenses, err := h.Stats.RecentExpenses(user.ID, h.RecentLimit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.Success(c, util.Response{
		"expenses":           expenses,
		"fraud":              fraudSummary,
		"categoryBreakdown":  categoryBreakdown,
		"monthlyTrends":      monthlyTrends,
		"recentTransactions": recentTransactions,
		"recentExpenses":     recentExpenses,
	})
}

// GetRecent returns the merged transaction/expense activity feed.
func (h *DashboardHandler) GetRecent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	activities, err := h.Stats.RecentActivity(user.ID, limit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	util.SuccessData(c, activities)
}
