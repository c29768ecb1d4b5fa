package models

import (
	"time"

	"gorm.io/gorm"
)

// Topping 配料表
type Topping struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 对外配料标识
	Name        string         `gorm:"not null" json:"name"`                               // 名称
	NameHe      string         `gorm:"default:''" json:"name_he"`                          // 希伯来语名称
	Category    string         `gorm:"type:varchar(30);not null;index" json:"category"`    // 分类（cheese/vegetables/meat/sauces/spices）
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                // 是否可选
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Topping) TableName() string {
	return "toppings"
}
