package repository

import (
	"errors"

	"github.com/pizzaorder-next/internal/models"

	"gorm.io/gorm"
)

// ToppingRepository 配料数据访问接口
type ToppingRepository interface {
	GetByID(id uint) (*models.Topping, error)
	GetBySlug(slug string) (*models.Topping, error)
	ListBySlugs(slugs []string) ([]models.Topping, error)
	List(activeOnly bool) ([]models.Topping, error)
	Create(topping *models.Topping) error
	Update(topping *models.Topping) error
	Delete(id uint) error
}

// GormToppingRepository GORM 实现
type GormToppingRepository struct {
	db *gorm.DB
}

// NewToppingRepository 创建配料仓库
func NewToppingRepository(db *gorm.DB) *GormToppingRepository {
	return &GormToppingRepository{db: db}
}

// GetByID 根据 ID 获取配料
func (r *GormToppingRepository) GetByID(id uint) (*models.Topping, error) {
	var topping models.Topping
	if err := r.db.First(&topping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topping, nil
}

// GetBySlug 根据对外标识获取配料
func (r *GormToppingRepository) GetBySlug(slug string) (*models.Topping, error) {
	var topping models.Topping
	if err := r.db.Where("slug = ?", slug).First(&topping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topping, nil
}

// ListBySlugs 批量获取配料
func (r *GormToppingRepository) ListBySlugs(slugs []string) ([]models.Topping, error) {
	if len(slugs) == 0 {
		return []models.Topping{}, nil
	}
	var toppings []models.Topping
	if err := r.db.Where("slug IN ?", slugs).Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

// List 配料列表
func (r *GormToppingRepository) List(activeOnly bool) ([]models.Topping, error) {
	query := r.db.Model(&models.Topping{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var toppings []models.Topping
	if err := query.Order("sort_order ASC, id ASC").Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

// Create 创建配料
func (r *GormToppingRepository) Create(topping *models.Topping) error {
	return r.db.Create(topping).Error
}

// Update 更新配料
func (r *GormToppingRepository) Update(topping *models.Topping) error {
	return r.db.Save(topping).Error
}

// Delete 删除配料（软删除）
func (r *GormToppingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Topping{}, id).Error
}
