package public

import (
	"errors"
	"strconv"

	handlershared "github.com/pizzaorder-next/internal/http/handlers/shared"
	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	Address models.JSON `json:"address"`
}

// Checkout 把购物车结算为订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:   uid,
		Address:  req.Address,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "error.cart_empty", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "error.product_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_create_failed", err)
		}
		return
	}
	response.Success(c, order)
}

// ListOrders 用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrders(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(orderID), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, order)
}
