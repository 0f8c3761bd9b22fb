package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain"
	"stockpos/internal/domain/billing"
	"stockpos/internal/infrastructure/http/v1/dto"
)

// BillingHandler serves checkout and bill queries.
type BillingHandler struct {
	*BaseHandler
	service *billing.Service
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(base *BaseHandler, service *billing.Service) *BillingHandler {
	return &BillingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Checkout handles POST /billing/checkout - sell a cart to a walk-in buyer.
func (h *BillingHandler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Checkout(ctx, req.ToBuyerInfo(), req.ToCart())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCheckoutResult(result))
}

// ListBills handles GET /billing/bills - list bill headers.
func (h *BillingHandler) ListBills(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListBills(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, bill := range result.Items {
		items[i] = dto.FromBill(bill)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetBill handles GET /billing/bills/:id - bill header with lines.
func (h *BillingHandler) GetBill(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	bill, details, err := h.service.GetBill(ctx, billID)
	if err != nil {
		h.Error(c, err)
		return
	}

	detailDTOs := make([]*dto.BillDetailResponse, 0, len(details))
	for _, d := range details {
		detailDTOs = append(detailDTOs, dto.FromDetail(d))
	}

	c.JSON(http.StatusOK, dto.BillWithDetailsResponse{
		Bill:    dto.FromBill(bill),
		Details: detailDTOs,
	})
}
