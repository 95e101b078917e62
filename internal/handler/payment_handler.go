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

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/api/payments")
	payments.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff))
	{
		payments.POST("", h.RecordPayment)
		payments.GET("", h.ListPayments)
	}
}

// RecordPayment books a tenant receipt. Rent receipts also book VAT on the
// collected amount, including any overpaid portion.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// ListPayments returns a contract's receipts, newest first
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	params := pagination.Parse(c)

	contractID := c.Query("contract_id")
	if contractID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "contract_id query parameter is required"))
		return
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), contractID, params.Page, params.Limit)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, payments, params.Page, params.Limit, total))
}
