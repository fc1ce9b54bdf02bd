package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contractapp "github.com/poloatt/attadia-backend/internal/application/contract"
	"github.com/poloatt/attadia-backend/internal/interfaces/http/middleware"
)

// ContractHandler handles contract lifecycle HTTP requests
type ContractHandler struct {
	BaseHandler
	contractService *contractapp.Service
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *contractapp.Service) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// RegisterRoutes registers contract routes
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/current-status", h.CurrentStatus)
		contracts.POST("/preview-installments", h.PreviewInstallments)
		contracts.GET("/:id", h.GetByID)
		contracts.PUT("/:id", h.Update)
		contracts.DELETE("/:id", h.Delete)
		contracts.POST("/:id/finalize", h.Finalize)
		contracts.POST("/:id/suspend", h.Suspend)
		contracts.POST("/:id/cancel", h.Cancel)
		contracts.POST("/:id/reactivate", h.Reactivate)
		contracts.POST("/:id/renew", h.Renew)
		contracts.POST("/:id/installments/:seq/pay", h.PayInstallment)
	}
}

// Create creates a contract with its installment schedule
func (h *ContractHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contractapp.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	contract, err := h.contractService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contract)
}

// List returns a paginated, filtered list of contracts
func (h *ContractHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter contractapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	contracts, total, err := h.contractService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, contracts, total, filter.Page, filter.PageSize)
}

// CurrentStatus reports the effective status of every contract
func (h *ContractHandler) CurrentStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	statuses, err := h.contractService.CurrentStatus(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statuses)
}

// PreviewInstallments generates a schedule without persisting anything
func (h *ContractHandler) PreviewInstallments(c *gin.Context) {
	var req contractapp.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	installments, err := h.contractService.PreviewInstallments(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installments)
}

// GetByID returns a single contract
func (h *ContractHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	contract, err := h.contractService.GetByID(c.Request.Context(), tenantID, contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// Update updates contract metadata
func (h *ContractHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req contractapp.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), tenantID, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// Delete removes a contract
func (h *ContractHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), tenantID, contractID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Finalize ends a contract early
func (h *ContractHandler) Finalize(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	contract, err := h.contractService.Finalize(c.Request.Context(), tenantID, contractID, h.appliedBy(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// Suspend pauses a contract with a reason
func (h *ContractHandler) Suspend(c *gin.Context) {
	h.overrideWithReason(c, h.contractService.Suspend)
}

// Cancel cancels a contract with a reason
func (h *ContractHandler) Cancel(c *gin.Context) {
	h.overrideWithReason(c, h.contractService.Cancel)
}

// Reactivate lifts a status override
func (h *ContractHandler) Reactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	contract, err := h.contractService.Reactivate(c.Request.Context(), tenantID, contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// Renew extends a contract and appends new installments
func (h *ContractHandler) Renew(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req contractapp.RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	contract, err := h.contractService.Renew(c.Request.Context(), tenantID, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// PayInstallment settles one installment and records its transaction
func (h *ContractHandler) PayInstallment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil || seq < 1 {
		h.BadRequest(c, "Invalid installment sequence")
		return
	}

	var req contractapp.PayInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	contract, err := h.contractService.PayInstallment(c.Request.Context(), tenantID, contractID, seq, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

func (h *ContractHandler) overrideWithReason(
	c *gin.Context,
	apply func(ctx context.Context, tenantID, id uuid.UUID, reason, by string) (*contractapp.ContractResponse, error),
) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req contractapp.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	contract, err := apply(c.Request.Context(), tenantID, contractID, req.Reason, h.appliedBy(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// appliedBy identifies who triggered a status change, preferring email
func (h *ContractHandler) appliedBy(c *gin.Context) string {
	if claims := middleware.GetJWTClaims(c); claims != nil {
		if claims.Email != "" {
			return claims.Email
		}
		return claims.UserID
	}
	return ""
}
