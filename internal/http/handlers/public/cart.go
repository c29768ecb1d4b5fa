package public

import (
	"strconv"

	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID      string                     `json:"product_id" binding:"required"`
	ProductType    string                     `json:"product_type"`
	Size           string                     `json:"size"`
	Quantity       int                        `json:"quantity"`
	Toppings       []service.CartToppingInput `json:"toppings"`
	Customizations map[string]string          `json:"customizations"`
}

// UpdateCartItemRequest 更新购物车行请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.View(uid))
}

// AddCartItem 加入一个商品配置
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	view, err := h.CartService.AddItem(c.Request.Context(), uid, service.AddCartItemInput{
		ProductID:      req.ProductID,
		ProductType:    req.ProductType,
		Size:           req.Size,
		Quantity:       req.Quantity,
		Toppings:       req.Toppings,
		Customizations: req.Customizations,
	})
	if err != nil {
		respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "error.cart_unavailable")
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 更新指定行的数量。
// 数量不足 1 等价于删除该行；索引越界不报错，直接返回当前购物车。
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	response.Success(c, h.CartService.UpdateQuantity(uid, index, req.Quantity))
}

// DeleteCartItem 删除指定行（索引越界静默忽略）
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.RemoveItem(uid, index))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.Clear(uid))
}

func parseIndexParam(c *gin.Context) (int, bool) {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return index, true
}
