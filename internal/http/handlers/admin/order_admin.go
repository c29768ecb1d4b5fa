package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/i18n"
	"github.com/pizzaorder-next/internal/repository"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.invalid_params", err)
			return
		}
		filter.UserID = uint(userID)
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			locale := i18n.ResolveLocale(c)
			respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, "error.invalid_status", req.Status), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, order)
}
