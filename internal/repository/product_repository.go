package repository

import (
	"errors"

	"github.com/pizzaorder-next/internal/models"

	"gorm.io/gorm"
)

// ProductListFilter 商品列表过滤条件
type ProductListFilter struct {
	Type       string
	Category   string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据对外标识获取商品
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var products []models.Product
	if err := query.Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品（软删除）
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
