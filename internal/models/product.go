package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 菜单商品表（披萨、意面、饮品、配菜）
type Product struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Slug              string         `gorm:"uniqueIndex;not null" json:"slug"`                      // 对外商品标识
	Type              string         `gorm:"type:varchar(20);not null;index" json:"type"`           // 商品类型（pizza/pasta/drink/side）
	Name              string         `gorm:"not null" json:"name"`                                  // 名称
	NameHe            string         `gorm:"default:''" json:"name_he"`                             // 希伯来语名称
	Description       string         `gorm:"type:text" json:"description"`                          // 描述
	DescriptionHe     string         `gorm:"type:text" json:"description_he"`                       // 希伯来语描述
	PriceAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`    // 基础价格
	SizePrices        MoneyMap       `gorm:"type:json" json:"size_prices,omitempty"`                // 尺寸价格表（可为空）
	ImageURL          string         `gorm:"type:varchar(500)" json:"image_url"`                    // 图片地址
	Category          string         `gorm:"type:varchar(50);index" json:"category"`                // 展示分类
	Ingredients       StringArray    `gorm:"type:json" json:"ingredients"`                          // 原料列表
	AvailableToppings StringArray    `gorm:"type:json" json:"available_toppings"`                   // 可选配料 slug 列表
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`                   // 是否上架
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`                     // 排序权重
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// PriceForSize 返回指定尺寸的价格，无尺寸表时回落到基础价格。
func (p *Product) PriceForSize(size string) Money {
	if p == nil {
		return Money{}
	}
	if size != "" && p.SizePrices != nil {
		if price, ok := p.SizePrices[size]; ok {
			return price
		}
	}
	return p.PriceAmount
}
