package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain"
	"stockpos/internal/domain/stock"
	"stockpos/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock ledger endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Intake handles POST /stock/intake - register incoming goods.
func (h *StockHandler) Intake(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IntakeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Intake(ctx, req.ProductID, req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == stock.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, dto.FromIntakeResult(result))
}

// SetMinimum handles PUT /stock/minimum - configure the low-stock threshold.
func (h *StockHandler) SetMinimum(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetMinimumRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.SetMinimum(ctx, req.ProductID, req.MinQuantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInventory(inv))
}

// List handles GET /stock - list inventory rows.
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := h.listFilter(c)
	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, inv := range result.Items {
		items[i] = dto.FromInventory(inv)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetByProduct handles GET /stock/products/:productId - single ledger row.
func (h *StockHandler) GetByProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format"))
		return
	}

	inv, err := h.service.GetByProduct(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInventory(inv))
}

// ListInputs handles GET /stock/:id/inputs - incoming movement history.
func (h *StockHandler) ListInputs(c *gin.Context) {
	ctx := c.Request.Context()

	inventoryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	result, err := h.service.ListInputs(ctx, inventoryID, h.listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, in := range result.Items {
		items[i] = dto.FromInput(in)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// ListOutputs handles GET /stock/:id/outputs - outgoing movement history.
func (h *StockHandler) ListOutputs(c *gin.Context) {
	ctx := c.Request.Context()

	inventoryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	result, err := h.service.ListOutputs(ctx, inventoryID, h.listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, out := range result.Items {
		items[i] = dto.FromOutput(out)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

func (h *StockHandler) listFilter(c *gin.Context) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	return filter
}
