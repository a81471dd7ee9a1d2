package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcatalog "github.com/sweetshop/backend/internal/application/catalog"
	"github.com/sweetshop/backend/internal/domain/catalog"
	"github.com/sweetshop/backend/internal/interfaces/http/dto"
)

// SweetHandler handles catalog HTTP requests
type SweetHandler struct {
	BaseHandler
	sweetService *appcatalog.SweetService
	authn        gin.HandlerFunc
	adminOnly    gin.HandlerFunc
}

// NewSweetHandler creates a new sweet handler. Reads are public;
// writes are guarded by the authn and adminOnly middleware.
func NewSweetHandler(sweetService *appcatalog.SweetService, authn, adminOnly gin.HandlerFunc) *SweetHandler {
	return &SweetHandler{
		sweetService: sweetService,
		authn:        authn,
		adminOnly:    adminOnly,
	}
}

// SweetRequest is the payload for creating or updating a sweet
type SweetRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int64           `json:"quantity"`
}

// SearchQuery holds catalog search parameters. Prices arrive as strings
// so they can be parsed into exact decimals.
type SearchQuery struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

func (q SearchQuery) toFilter() (catalog.SearchFilter, error) {
	filter := catalog.SearchFilter{
		Name:     q.Name,
		Category: q.Category,
	}
	if q.MinPrice != "" {
		min, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &min
	}
	if q.MaxPrice != "" {
		max, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &max
	}
	return filter, nil
}

// List godoc
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.SweetResponse}
// @Router       /sweets [get]
func (h *SweetHandler) List(c *gin.Context) {
	sweets, err := h.sweetService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sweets)
}

// Search godoc
// @Summary      Search sweets by name, category, or price range
// @Tags         sweets
// @Produce      json
// @Param        name query string false "Name substring"
// @Param        category query string false "Category substring"
// @Param        min_price query string false "Minimum price"
// @Param        max_price query string false "Maximum price"
// @Success      200 {object} dto.Response{data=[]catalog.SweetResponse}
// @Router       /sweets/search [get]
func (h *SweetHandler) Search(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid search parameters")
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid price value")
		return
	}

	sweets, err := h.sweetService.Search(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sweets)
}

// GetByID godoc
// @Summary      Get a sweet by ID
// @Tags         sweets
// @Produce      json
// @Param        id path string true "Sweet ID"
// @Success      200 {object} dto.Response{data=catalog.SweetResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sweets/{id} [get]
func (h *SweetHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid sweet ID")
		return
	}

	sweet, err := h.sweetService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sweet)
}

// Create godoc
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SweetRequest true "Sweet details"
// @Success      201 {object} dto.Response{data=catalog.SweetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sweets [post]
func (h *SweetHandler) Create(c *gin.Context) {
	var req SweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sweet, err := h.sweetService.Create(c.Request.Context(), appcatalog.CreateSweetRequest{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sweet)
}

// Update godoc
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sweet ID"
// @Param        request body SweetRequest true "Updated details"
// @Success      200 {object} dto.Response{data=catalog.SweetResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sweets/{id} [put]
func (h *SweetHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid sweet ID")
		return
	}

	var req SweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sweet, err := h.sweetService.Update(c.Request.Context(), uuid.MustParse(idReq.ID), appcatalog.UpdateSweetRequest{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sweet)
}

// Delete godoc
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sweet ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sweets/{id} [delete]
func (h *SweetHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid sweet ID")
		return
	}

	if err := h.sweetService.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all catalog routes
func (h *SweetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sweets := rg.Group("/sweets")
	{
		sweets.GET("", h.List)
		sweets.GET("/search", h.Search)
		sweets.GET("/:id", h.GetByID)
		sweets.POST("", h.authn, h.adminOnly, h.Create)
		sweets.PUT("/:id", h.authn, h.adminOnly, h.Update)
		sweets.DELETE("/:id", h.authn, h.adminOnly, h.Delete)
	}
}
