package handler

import (
	"net/http"

	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/service"
	"leasebackend/pkg/pagination"
	"leasebackend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VATHandler struct {
	vatService service.VATService
}

func NewVATHandler(vatService service.VATService) *VATHandler {
	return &VATHandler{vatService: vatService}
}

func (h *VATHandler) RegisterRoutes(router *gin.RouterGroup) {
	vat := router.Group("/api/vat-records")
	{
		vat.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListRecords)
		vat.POST("/mark-paid", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.MarkPaid)
	}
}

// ListRecords returns VAT obligation ledger entries matching the filters
func (h *VATHandler) ListRecords(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.VATListFilter{
		ContractID: c.Query("contract_id"),
		RelateType: c.Query("relate_type"),
		Status:     c.Query("status"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Page:       params.Page,
		Limit:      params.Limit,
	}

	records, total, err := h.vatService.ListRecords(c.Request.Context(), filter)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, records, params.Page, params.Limit, total))
}

// MarkPaid settles pending VAT obligations in batch. Already-paid records in
// the batch are left untouched.
func (h *VATHandler) MarkPaid(c *gin.Context) {
	var req service.MarkVATPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.vatService.MarkPaid(c.Request.Context(), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"requested": len(req.RecordIDs),
		"updated":   updated,
	}))
}
