package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ToppingSelection 订单项配料快照
type ToppingSelection struct {
	ToppingID string `json:"topping_id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// ToppingSelectionList 配料快照列类型
type ToppingSelectionList []ToppingSelection

// Value 实现 driver.Valuer 接口
func (l ToppingSelectionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *ToppingSelectionList) Scan(value interface{}) error {
	if value == nil {
		*l = ToppingSelectionList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// OrderItem 订单项表
type OrderItem struct {
	ID             uint                 `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID        uint                 `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductID      uint                 `gorm:"index;not null" json:"product_id"`                        // 商品ID
	ProductSlug    string               `gorm:"not null" json:"product_slug"`                            // 商品标识快照
	ProductType    string               `gorm:"type:varchar(20);not null" json:"product_type"`           // 商品类型快照
	Name           string               `gorm:"not null" json:"name"`                                    // 名称快照
	NameHe         string               `gorm:"default:''" json:"name_he"`                               // 希伯来语名称快照
	Size           string               `gorm:"type:varchar(20)" json:"size,omitempty"`                  // 尺寸（可为空）
	UnitPrice      Money                `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 加入购物车时的单价
	Toppings       ToppingSelectionList `gorm:"type:json" json:"toppings,omitempty"`                     // 配料快照
	Customizations StringMap            `gorm:"type:json" json:"customizations,omitempty"`               // 自由定制项快照
	Quantity       int                  `gorm:"not null" json:"quantity"`                                // 数量
	LineTotal      Money                `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"` // 小计
	CreatedAt      time.Time            `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt      time.Time            `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt      gorm.DeletedAt       `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
