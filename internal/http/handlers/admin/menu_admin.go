package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Slug              string          `json:"slug" binding:"required"`
	Type              string          `json:"type" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	NameHe            string          `json:"name_he"`
	Description       string          `json:"description"`
	DescriptionHe     string          `json:"description_he"`
	Price             models.Money    `json:"price"`
	SizePrices        models.MoneyMap `json:"size_prices"`
	ImageURL          string          `json:"image_url"`
	Category          string          `json:"category"`
	Ingredients       []string        `json:"ingredients"`
	AvailableToppings []string        `json:"available_toppings"`
	IsActive          *bool           `json:"is_active"`
	SortOrder         *int            `json:"sort_order"`
}

// ToppingRequest 配料创建/更新请求
type ToppingRequest struct {
	Slug      string       `json:"slug" binding:"required"`
	Name      string       `json:"name" binding:"required"`
	NameHe    string       `json:"name_he"`
	Category  string       `json:"category" binding:"required"`
	Price     models.Money `json:"price"`
	IsActive  *bool        `json:"is_active"`
	SortOrder *int         `json:"sort_order"`
}

// AdminListProducts 管理端商品列表
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.ListAdmin(repository.ProductListFilter{
		Type:     strings.TrimSpace(c.Query("type")),
		Category: strings.TrimSpace(c.Query("category")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// AdminGetProduct 管理端商品详情
func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdmin(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminCreateProduct 创建商品
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	product, err := h.ProductService.Create(buildProductInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminUpdateProduct 更新商品
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	product, err := h.ProductService.Update(id, buildProductInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminDeleteProduct 删除商品
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AdminListToppings 管理端配料列表
func (h *Handler) AdminListToppings(c *gin.Context) {
	toppings, err := h.ToppingService.ListAdmin()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, toppings)
}

// AdminCreateTopping 创建配料
func (h *Handler) AdminCreateTopping(c *gin.Context) {
	var req ToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	topping, err := h.ToppingService.Create(buildToppingInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, topping)
}

// AdminUpdateTopping 更新配料
func (h *Handler) AdminUpdateTopping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	topping, err := h.ToppingService.Update(id, buildToppingInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, topping)
}

// AdminDeleteTopping 删除配料
func (h *Handler) AdminDeleteTopping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ToppingService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func buildProductInput(req ProductRequest) service.ProductUpsertInput {
	return service.ProductUpsertInput{
		Slug:              req.Slug,
		Type:              req.Type,
		Name:              req.Name,
		NameHe:            req.NameHe,
		Description:       req.Description,
		DescriptionHe:     req.DescriptionHe,
		Price:             req.Price,
		SizePrices:        req.SizePrices,
		ImageURL:          req.ImageURL,
		Category:          req.Category,
		Ingredients:       req.Ingredients,
		AvailableToppings: req.AvailableToppings,
		IsActive:          req.IsActive,
		SortOrder:         req.SortOrder,
	}
}

func buildToppingInput(req ToppingRequest) service.ToppingUpsertInput {
	return service.ToppingUpsertInput{
		Slug:      req.Slug,
		Name:      req.Name,
		NameHe:    req.NameHe,
		Category:  req.Category,
		Price:     req.Price,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return uint(id), true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrInvalidItem):
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
	case errors.Is(err, service.ErrInvalidProductType):
		respondError(c, response.CodeBadRequest, "error.invalid_product_type", nil)
	case errors.Is(err, service.ErrToppingNotAvailable):
		respondError(c, response.CodeBadRequest, "error.topping_unavailable", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
