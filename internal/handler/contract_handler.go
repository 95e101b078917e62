package handler

import (
	"net/http"
	"strings"

	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/service"
	"leasebackend/pkg/pagination"
	"leasebackend/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusForError maps service-layer errors onto HTTP status codes. Services
// surface missing records as "... not found" messages.
func statusForError(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

type ContractHandler struct {
	contractService service.ContractService
}

func NewContractHandler(contractService service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

func (h *ContractHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/api/contracts")
	{
		contracts.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateContract)
		contracts.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListContracts)
		contracts.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetContract)
		contracts.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateContract)
		contracts.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteContract)
	}
}

// CreateContract registers a new lease contract with its rent periods
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req service.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, contract))
}

// ListContracts returns contracts filtered by status, paginated
func (h *ContractHandler) ListContracts(c *gin.Context) {
	params := pagination.Parse(c)
	status := c.Query("status")

	contracts, total, err := h.contractService.ListContracts(c.Request.Context(), status, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, contracts, params.Page, params.Limit, total))
}

// GetContract returns one contract with its rent and free-rent periods
func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.contractService.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, contract))
}

// UpdateContract replaces a contract's terms and periods
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	var req service.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contract, err := h.contractService.UpdateContract(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, contract))
}

// DeleteContract removes a contract and its dependent periods
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	if err := h.contractService.DeleteContract(c.Request.Context(), c.Param("id")); err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
