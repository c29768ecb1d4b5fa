package service

import (
	"context"
	"strings"

	"github.com/pizzaorder-next/internal/cart"
	"github.com/pizzaorder-next/internal/repository"

	"github.com/shopspring/decimal"
)

// dbCatalog 基于菜单数据库实现购物车的商品目录契约。
// 只在商品加入购物车时查询一次，价格随后固化在行项里。
type dbCatalog struct {
	productRepo repository.ProductRepository
}

// NewCatalog 创建数据库目录提供方
func NewCatalog(productRepo repository.ProductRepository) cart.Catalog {
	return &dbCatalog{productRepo: productRepo}
}

// ProductByID 按对外标识查询上架商品
func (c *dbCatalog) ProductByID(ctx context.Context, id, productType string) (*cart.ProductInfo, error) {
	product, err := c.productRepo.GetBySlug(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if productType != "" && product.Type != productType {
		return nil, ErrProductNotAvailable
	}

	info := &cart.ProductInfo{
		ID:                product.Slug,
		Type:              product.Type,
		Name:              product.Name,
		NameHe:            product.NameHe,
		BasePrice:         product.PriceAmount.Decimal,
		AvailableToppings: product.AvailableToppings,
	}
	if len(product.SizePrices) > 0 {
		info.SizePrices = make(map[string]decimal.Decimal, len(product.SizePrices))
		for size, price := range product.SizePrices {
			info.SizePrices[size] = price.Decimal
		}
	}
	return info, nil
}
