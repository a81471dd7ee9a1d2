package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sweetshop/backend/internal/application/inventory"
	"github.com/sweetshop/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles stock and purchase HTTP requests
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventory.InventoryService
	authn            gin.HandlerFunc
	adminOnly        gin.HandlerFunc
}

// NewInventoryHandler creates a new inventory handler. All routes require
// authentication; restock additionally requires the admin role.
func NewInventoryHandler(inventoryService *inventory.InventoryService, authn, adminOnly gin.HandlerFunc) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		authn:            authn,
		adminOnly:        adminOnly,
	}
}

// PurchaseRequest is the payload for a purchase. Quantity defaults to 1
// when the body omits it.
type PurchaseRequest struct {
	Quantity int64 `json:"quantity"`
}

// RestockRequest is the payload for a restock
type RestockRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// Purchase godoc
// @Summary      Purchase a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sweet ID"
// @Param        request body PurchaseRequest false "Purchase quantity (default 1)"
// @Success      200 {object} dto.Response{data=inventory.StockResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid sweet ID")
		return
	}

	req := PurchaseRequest{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
	}

	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stock, err := h.inventoryService.Purchase(c.Request.Context(), uuid.MustParse(idReq.ID), req.Quantity, callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Restock godoc
// @Summary      Restock a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sweet ID"
// @Param        request body RestockRequest true "Restock quantity"
// @Success      200 {object} dto.Response{data=inventory.StockResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/{id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid sweet ID")
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stock, err := h.inventoryService.Restock(c.Request.Context(), uuid.MustParse(idReq.ID), req.Quantity, callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Stats godoc
// @Summary      Purchase statistics scoped by role
// @Description  Admins see total revenue across all purchases; users see their own spend.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=inventory.StatsResponse}
// @Router       /inventory/stats [get]
func (h *InventoryHandler) Stats(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.inventoryService.Stats(c.Request.Context(), callerID, isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// History godoc
// @Summary      The caller's purchase history, most recent first
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]inventory.PurchaseResponse}
// @Router       /inventory/history [get]
func (h *InventoryHandler) History(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	purchases, err := h.inventoryService.History(c.Request.Context(), callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchases)
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	inv.Use(h.authn)
	{
		inv.POST("/:id/purchase", h.Purchase)
		inv.POST("/:id/restock", h.adminOnly, h.Restock)
		inv.GET("/stats", h.Stats)
		inv.GET("/history", h.History)
	}
}
