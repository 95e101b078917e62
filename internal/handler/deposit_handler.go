package handler

import (
	"net/http"

	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/service"
	"leasebackend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DepositHandler struct {
	depositService service.DepositService
}

func NewDepositHandler(depositService service.DepositService) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

func (h *DepositHandler) RegisterRoutes(router *gin.RouterGroup) {
	deposits := router.Group("/api/deposits")
	deposits.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff))
	{
		deposits.POST("", h.UpsertDeposit)
		deposits.GET("/:contractID", h.GetDeposit)
	}
}

// UpsertDeposit records or updates the deposit detail for a contract
func (h *DepositHandler) UpsertDeposit(c *gin.Context) {
	var req service.UpsertDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	deposit, err := h.depositService.UpsertDeposit(c.Request.Context(), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, deposit))
}

// GetDeposit returns a contract's deposit detail
func (h *DepositHandler) GetDeposit(c *gin.Context) {
	deposit, err := h.depositService.GetDeposit(c.Request.Context(), c.Param("contractID"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, deposit))
}
