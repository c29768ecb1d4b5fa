package repository

import (
	"errors"

	"github.com/pizzaorder-next/internal/models"

	"gorm.io/gorm"
)

// OrderListFilter 订单列表过滤条件
type OrderListFilter struct {
	Status   string
	OrderNo  string
	UserID   uint
	Page     int
	PageSize int
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: tx}
}

// Create 创建订单及明细
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 获取订单（含明细）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取属于指定用户的订单
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser 用户订单列表
func (r *GormOrderRepository) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := applyPagination(query, page, pageSize).
		Preload("Items").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := applyPagination(query, filter.Page, filter.PageSize).
		Preload("Items").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", status).Error
}
