package service

import (
	"strings"

	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"
)

// MenuView 公开菜单视图：上架商品与上架配料
type MenuView struct {
	Products []models.Product `json:"products"`
	Toppings []models.Topping `json:"toppings"`
}

// ProductUpsertInput 商品创建/更新输入
type ProductUpsertInput struct {
	Slug              string
	Type              string
	Name              string
	NameHe            string
	Description       string
	DescriptionHe     string
	Price             models.Money
	SizePrices        models.MoneyMap
	ImageURL          string
	Category          string
	Ingredients       []string
	AvailableToppings []string
	IsActive          *bool
	SortOrder         *int
}

// ProductService 菜单商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	toppingRepo repository.ToppingRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, toppingRepo repository.ToppingRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		toppingRepo: toppingRepo,
	}
}

// Menu 获取公开菜单
func (s *ProductService) Menu(productType string) (*MenuView, error) {
	filter := repository.ProductListFilter{
		ActiveOnly: true,
	}
	if productType != "" {
		if !constants.KnownProductTypes[productType] {
			return nil, ErrInvalidProductType
		}
		filter.Type = productType
	}
	products, _, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	toppings, err := s.toppingRepo.List(true)
	if err != nil {
		return nil, err
	}
	return &MenuView{
		Products: products,
		Toppings: toppings,
	}, nil
}

// GetBySlug 获取单个上架商品
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListAdmin 管理端商品列表（含下架商品）
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetAdmin 管理端获取商品
func (s *ProductService) GetAdmin(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductUpsertInput) (*models.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	exist, err := s.productRepo.GetBySlug(input.Slug)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrInvalidItem
	}

	product := &models.Product{
		Slug:              input.Slug,
		Type:              input.Type,
		Name:              input.Name,
		NameHe:            input.NameHe,
		Description:       input.Description,
		DescriptionHe:     input.DescriptionHe,
		PriceAmount:       input.Price,
		SizePrices:        input.SizePrices,
		ImageURL:          input.ImageURL,
		Category:          input.Category,
		Ingredients:       input.Ingredients,
		AvailableToppings: input.AvailableToppings,
		IsActive:          true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductUpsertInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	product.Slug = input.Slug
	product.Type = input.Type
	product.Name = input.Name
	product.NameHe = input.NameHe
	product.Description = input.Description
	product.DescriptionHe = input.DescriptionHe
	product.PriceAmount = input.Price
	product.SizePrices = input.SizePrices
	product.ImageURL = input.ImageURL
	product.Category = input.Category
	product.Ingredients = input.Ingredients
	product.AvailableToppings = input.AvailableToppings
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 下架并软删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateInput(input *ProductUpsertInput) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" || input.Name == "" {
		return ErrInvalidItem
	}
	if !constants.KnownProductTypes[input.Type] {
		return ErrInvalidProductType
	}
	// 配料引用必须都是已知配料
	if len(input.AvailableToppings) > 0 {
		toppings, err := s.toppingRepo.ListBySlugs(input.AvailableToppings)
		if err != nil {
			return err
		}
		if len(toppings) != len(uniqueStrings(input.AvailableToppings)) {
			return ErrToppingNotAvailable
		}
	}
	return nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
