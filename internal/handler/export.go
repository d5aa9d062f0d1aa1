package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/models"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports a user's expenses as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Category", "Amount", "Description", "Date", "Created"}

func (h *ExportHandler) loadExpenses(c *gin.Context) ([]models.Expense, bool) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}

	var expenses []models.Expense
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return nil, false
	}
	return expenses, true
}

// ExportCSV streams the user's expenses as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, ok := h.loadExpenses(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, e := range expenses {
		writer.Write([]string{
			string(e.Category),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Description,
			e.Date.Format("2006-01-02"),
			e.CreatedAt.Format("2006-01-02"),
		})
	}
}

// ExportXLSX writes the user's expenses as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	expenses, ok := h.loadExpenses(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, e := range expenses {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), string(e.Category))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.CreatedAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 15)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error")
	}
}
