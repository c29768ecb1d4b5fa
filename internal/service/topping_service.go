package service

import (
	"strings"

	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"
)

// ToppingUpsertInput 配料创建/更新输入
type ToppingUpsertInput struct {
	Slug      string
	Name      string
	NameHe    string
	Category  string
	Price     models.Money
	IsActive  *bool
	SortOrder *int
}

// ToppingService 配料服务
type ToppingService struct {
	toppingRepo repository.ToppingRepository
}

// NewToppingService 创建配料服务
func NewToppingService(toppingRepo repository.ToppingRepository) *ToppingService {
	return &ToppingService{toppingRepo: toppingRepo}
}

// ListAdmin 管理端配料列表（含下架配料）
func (s *ToppingService) ListAdmin() ([]models.Topping, error) {
	return s.toppingRepo.List(false)
}

// Create 创建配料
func (s *ToppingService) Create(input ToppingUpsertInput) (*models.Topping, error) {
	if err := validateToppingInput(&input); err != nil {
		return nil, err
	}
	exist, err := s.toppingRepo.GetBySlug(input.Slug)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrInvalidItem
	}

	topping := &models.Topping{
		Slug:        input.Slug,
		Name:        input.Name,
		NameHe:      input.NameHe,
		Category:    input.Category,
		PriceAmount: input.Price,
		IsActive:    true,
	}
	if input.IsActive != nil {
		topping.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		topping.SortOrder = *input.SortOrder
	}
	if err := s.toppingRepo.Create(topping); err != nil {
		return nil, err
	}
	return topping, nil
}

// Update 更新配料
func (s *ToppingService) Update(id uint, input ToppingUpsertInput) (*models.Topping, error) {
	topping, err := s.toppingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if topping == nil {
		return nil, ErrNotFound
	}
	if err := validateToppingInput(&input); err != nil {
		return nil, err
	}

	topping.Slug = input.Slug
	topping.Name = input.Name
	topping.NameHe = input.NameHe
	topping.Category = input.Category
	topping.PriceAmount = input.Price
	if input.IsActive != nil {
		topping.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		topping.SortOrder = *input.SortOrder
	}
	if err := s.toppingRepo.Update(topping); err != nil {
		return nil, err
	}
	return topping, nil
}

// Delete 下架并软删除配料
func (s *ToppingService) Delete(id uint) error {
	topping, err := s.toppingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if topping == nil {
		return ErrNotFound
	}
	return s.toppingRepo.Delete(id)
}

func validateToppingInput(input *ToppingUpsertInput) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.ToLower(strings.TrimSpace(input.Category))
	if input.Slug == "" || input.Name == "" {
		return ErrInvalidItem
	}
	switch input.Category {
	case constants.ToppingCategoryCheese,
		constants.ToppingCategoryVegetables,
		constants.ToppingCategoryMeat,
		constants.ToppingCategorySauces,
		constants.ToppingCategorySpices:
	default:
		return ErrInvalidItem
	}
	return nil
}
