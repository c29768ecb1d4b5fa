package cart

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// ToppingSelection 单份商品上的一种配料及其数量
type ToppingSelection struct {
	ToppingID string          `json:"topping_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// LineItem 购物车行项：一种具体配置及其数量
type LineItem struct {
	ProductID      string             `json:"product_id"`
	ProductType    string             `json:"product_type"`
	Size           string             `json:"size,omitempty"`
	UnitPrice      decimal.Decimal    `json:"unit_price"`
	Toppings       []ToppingSelection `json:"toppings,omitempty"`
	Customizations map[string]string  `json:"customizations,omitempty"`
	Quantity       int                `json:"quantity"`
}

// Candidate 待加入购物车的商品配置（不含数量）
type Candidate struct {
	ProductID      string
	ProductType    string
	Size           string
	UnitPrice      decimal.Decimal
	Toppings       []ToppingSelection
	Customizations map[string]string
}

// LineTotal 行小计：(单价 + Σ 配料价×配料数量) × 数量
func (l LineItem) LineTotal() decimal.Decimal {
	unit := l.UnitPrice
	for _, t := range l.Toppings {
		unit = unit.Add(t.Price.Mul(decimal.NewFromInt(int64(t.Quantity))))
	}
	return unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// canonicalToppings 规范化配料列表：过滤数量不足 1 的配料并按 ID 排序。
// 配置等价判断和序列化都基于规范化后的列表，对输入顺序不敏感。
func canonicalToppings(toppings []ToppingSelection) []ToppingSelection {
	if len(toppings) == 0 {
		return nil
	}
	result := make([]ToppingSelection, 0, len(toppings))
	for _, t := range toppings {
		if t.Quantity < 1 {
			continue
		}
		result = append(result, t)
	}
	if len(result) == 0 {
		return nil
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ToppingID < result[j].ToppingID
	})
	return result
}

// sameConfiguration 判断两个配置是否等价。
// 等价关系：商品、类型、尺寸相同，配料集合（ID+数量）相同，定制项键值相同。
// 结构化比较，与配料顺序无关（双方都已规范化）。
func sameConfiguration(a LineItem, b LineItem) bool {
	if a.ProductID != b.ProductID || a.ProductType != b.ProductType || a.Size != b.Size {
		return false
	}
	if len(a.Toppings) != len(b.Toppings) {
		return false
	}
	for i := range a.Toppings {
		if a.Toppings[i].ToppingID != b.Toppings[i].ToppingID ||
			a.Toppings[i].Quantity != b.Toppings[i].Quantity {
			return false
		}
	}
	if len(a.Customizations) != len(b.Customizations) {
		return false
	}
	for key, value := range a.Customizations {
		other, ok := b.Customizations[key]
		if !ok || other != value {
			return false
		}
	}
	return true
}

func copyLineItem(item LineItem) LineItem {
	copied := item
	if len(item.Toppings) > 0 {
		copied.Toppings = make([]ToppingSelection, len(item.Toppings))
		copy(copied.Toppings, item.Toppings)
	}
	if len(item.Customizations) > 0 {
		copied.Customizations = make(map[string]string, len(item.Customizations))
		for key, value := range item.Customizations {
			copied.Customizations[key] = value
		}
	}
	return copied
}

// Store 购物车持久化存储契约（键值存储，尽力而为）
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, payload string) error
	Remove(ctx context.Context, key string) error
}

// ProductInfo 目录提供方返回的商品定义
type ProductInfo struct {
	ID                string
	Type              string
	Name              string
	NameHe            string
	BasePrice         decimal.Decimal
	SizePrices        map[string]decimal.Decimal
	AvailableToppings []string
}

// UnitPriceForSize 返回指定尺寸的单价，无尺寸表时回落到基础价格。
func (p *ProductInfo) UnitPriceForSize(size string) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if size != "" && p.SizePrices != nil {
		if price, ok := p.SizePrices[size]; ok {
			return price
		}
	}
	return p.BasePrice
}

// Catalog 商品目录提供方契约（只读，仅在加入购物车时查询）
type Catalog interface {
	ProductByID(ctx context.Context, id, productType string) (*ProductInfo, error)
}
