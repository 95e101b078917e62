package handler

import (
	"net/http"
	"strconv"
	"time"

	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/service"
	"leasebackend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AccountingHandler struct {
	accountingService service.AccountingService
}

func NewAccountingHandler(accountingService service.AccountingService) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

func (h *AccountingHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/api/contracts")
	contracts.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff))
	{
		contracts.GET("/:id/monthly-income", h.MonthlyIncome)
		contracts.GET("/:id/tax-diff", h.TaxDiff)
		contracts.POST("/:id/stamp-duty", h.ComputeStampDuty)
		contracts.POST("/:id/receivables", h.RegisterReceivable)
		contracts.POST("/:id/invoices", h.RegisterInvoice)
	}

	vat := router.Group("/api/vat-records")
	{
		vat.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.RecordVAT)
	}
}

func yearMonthParams(c *gin.Context) (int, int, bool) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || year < 1 || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "year and month query parameters are required (month 1-12)"))
		return 0, 0, false
	}
	return year, month, true
}

// MonthlyIncome recognizes (or returns the already recognized) income for one
// contract-month in both the accounting and tax bases.
func (h *AccountingHandler) MonthlyIncome(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	income, err := h.accountingService.MonthlyIncome(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, income))
}

// TaxDiff returns the book-vs-tax reconciliation for one contract-month,
// computing and persisting it on first access.
func (h *AccountingHandler) TaxDiff(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	diff, err := h.accountingService.TaxDiff(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, diff))
}

// ComputeStampDuty computes and caches the contract's initial stamp duty
func (h *AccountingHandler) ComputeStampDuty(c *gin.Context) {
	duty, err := h.accountingService.StampDuty(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"contract_id": c.Param("id"),
		"stamp_duty":  duty.StringFixed(2),
	}))
}

// RegisterReceivable books the VAT obligation arising from an accrued
// receivable (rent due but not yet collected).
func (h *AccountingHandler) RegisterReceivable(c *gin.Context) {
	var req service.RegisterReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.accountingService.RegisterReceivable(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{
		"vat_amount":    result.TotalVAT.StringFixed(2),
		"vat_record_id": result.RecordID.String(),
		"booked":        result.Booked(),
	}))
}

// RegisterInvoice stores an issued invoice and books its VAT obligation
func (h *AccountingHandler) RegisterInvoice(c *gin.Context) {
	var req service.RegisterInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.ContractID = c.Param("id")

	invoice, err := h.accountingService.RegisterInvoice(c.Request.Context(), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// RecordVAT books a VAT obligation directly from a trigger event. Intended
// for back-office corrections; normal flows book through payments, invoices
// and receivables.
func (h *AccountingHandler) RecordVAT(c *gin.Context) {
	var req service.RecordVATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	relateDate, err := time.Parse("2006-01-02", req.RelateDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid relate_date, expected YYYY-MM-DD"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid amount"))
		return
	}

	result, err := h.accountingService.RecordVAT(c.Request.Context(), req.ContractID, req.RelateType, relateDate, amount, req.RelateID)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{
		"vat_amount":    result.TotalVAT.StringFixed(2),
		"vat_record_id": result.RecordID.String(),
		"booked":        result.Booked(),
	}))
}
