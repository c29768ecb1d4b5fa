package public

import (
	"errors"
	"strings"

	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMenu 获取菜单（上架商品与配料）
func (h *Handler) GetMenu(c *gin.Context) {
	productType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	menu, err := h.ProductService.Menu(productType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProductType):
			respondError(c, response.CodeBadRequest, "error.invalid_product_type", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, menu)
}

// GetProduct 获取单个商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, product)
}
