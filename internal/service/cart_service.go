package service

import (
	"context"
	"strings"

	"github.com/pizzaorder-next/internal/cart"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"
)

// CartToppingInput 加入购物车时的配料选择
type CartToppingInput struct {
	ToppingID string `json:"topping_id"`
	Quantity  int    `json:"quantity"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	ProductID      string             `json:"product_id"`
	ProductType    string             `json:"product_type"`
	Size           string             `json:"size"`
	Quantity       int                `json:"quantity"`
	Toppings       []CartToppingInput `json:"toppings"`
	Customizations map[string]string  `json:"customizations"`
}

// CartLineView 购物车行项视图
type CartLineView struct {
	Index          int                     `json:"index"`
	ProductID      string                  `json:"product_id"`
	ProductType    string                  `json:"product_type"`
	Size           string                  `json:"size,omitempty"`
	UnitPrice      models.Money            `json:"unit_price"`
	Toppings       []cart.ToppingSelection `json:"toppings,omitempty"`
	Customizations map[string]string       `json:"customizations,omitempty"`
	Quantity       int                     `json:"quantity"`
	LineTotal      models.Money            `json:"line_total"`
}

// CartView 购物车整体视图
type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice models.Money   `json:"total_price"`
}

// CartService 购物车服务。
// 加入时解析商品与配料价格并固化快照，之后的计价完全由引擎在内存中完成。
type CartService struct {
	manager     *cart.Manager
	catalog     cart.Catalog
	toppingRepo repository.ToppingRepository
}

// NewCartService 创建购物车服务
func NewCartService(manager *cart.Manager, catalog cart.Catalog, toppingRepo repository.ToppingRepository) *CartService {
	return &CartService{
		manager:     manager,
		catalog:     catalog,
		toppingRepo: toppingRepo,
	}
}

// View 获取用户购物车视图
func (s *CartService) View(userID uint) *CartView {
	engine := s.manager.ForUser(userID)
	return buildCartView(engine)
}

// AddItem 解析并加入一个商品配置。
// 等价配置由引擎负责合并；数量不足 1 时按 1 处理。
func (s *CartService) AddItem(ctx context.Context, userID uint, input AddCartItemInput) (*CartView, error) {
	candidate, err := s.resolveCandidate(ctx, input)
	if err != nil {
		return nil, err
	}

	engine := s.manager.ForUser(userID)
	engine.AddItem(*candidate, input.Quantity)
	return buildCartView(engine), nil
}

// UpdateQuantity 更新指定行的数量（不足 1 等价于删除，索引越界静默忽略）
func (s *CartService) UpdateQuantity(userID uint, index, quantity int) *CartView {
	engine := s.manager.ForUser(userID)
	engine.UpdateQuantity(index, quantity)
	return buildCartView(engine)
}

// RemoveItem 删除指定行（索引越界静默忽略）
func (s *CartService) RemoveItem(userID uint, index int) *CartView {
	engine := s.manager.ForUser(userID)
	engine.RemoveItem(index)
	return buildCartView(engine)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) *CartView {
	engine := s.manager.ForUser(userID)
	engine.Clear()
	return buildCartView(engine)
}

// LineItems 返回行项快照（结算时使用）
func (s *CartService) LineItems(userID uint) []cart.LineItem {
	return s.manager.ForUser(userID).LineItems()
}

func (s *CartService) resolveCandidate(ctx context.Context, input AddCartItemInput) (*cart.Candidate, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, ErrInvalidItem
	}

	product, err := s.catalog.ProductByID(ctx, productID, strings.TrimSpace(input.ProductType))
	if err != nil {
		return nil, err
	}

	size := strings.TrimSpace(input.Size)
	if size != "" && len(product.SizePrices) > 0 {
		if _, ok := product.SizePrices[size]; !ok {
			return nil, ErrInvalidSize
		}
	}

	toppings, err := s.resolveToppings(product, input.Toppings)
	if err != nil {
		return nil, err
	}

	return &cart.Candidate{
		ProductID:      product.ID,
		ProductType:    product.Type,
		Size:           size,
		UnitPrice:      product.UnitPriceForSize(size),
		Toppings:       toppings,
		Customizations: normalizeCustomizations(input.Customizations),
	}, nil
}

// resolveToppings 解析配料选择并固化价格快照。
// 数量不足 1 的选择直接忽略；引用未知、下架或该商品不允许的配料时报错。
func (s *CartService) resolveToppings(product *cart.ProductInfo, inputs []CartToppingInput) ([]cart.ToppingSelection, error) {
	slugs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			continue
		}
		slug := strings.TrimSpace(in.ToppingID)
		if slug == "" {
			return nil, ErrToppingNotAvailable
		}
		slugs = append(slugs, slug)
	}
	if len(slugs) == 0 {
		return nil, nil
	}

	allowed := make(map[string]bool, len(product.AvailableToppings))
	for _, slug := range product.AvailableToppings {
		allowed[slug] = true
	}

	records, err := s.toppingRepo.ListBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]*models.Topping, len(records))
	for i := range records {
		bySlug[records[i].Slug] = &records[i]
	}

	selections := make([]cart.ToppingSelection, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			continue
		}
		slug := strings.TrimSpace(in.ToppingID)
		topping, ok := bySlug[slug]
		if !ok || !topping.IsActive {
			return nil, ErrToppingNotAvailable
		}
		if len(allowed) > 0 && !allowed[slug] {
			return nil, ErrToppingNotAvailable
		}
		selections = append(selections, cart.ToppingSelection{
			ToppingID: topping.Slug,
			Name:      topping.Name,
			Price:     topping.PriceAmount.Decimal,
			Quantity:  in.Quantity,
		})
	}
	return selections, nil
}

func normalizeCustomizations(customizations map[string]string) map[string]string {
	if len(customizations) == 0 {
		return nil
	}
	result := make(map[string]string, len(customizations))
	for key, value := range customizations {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func buildCartView(engine *cart.Engine) *CartView {
	items := engine.LineItems()
	views := make([]CartLineView, 0, len(items))
	for i, item := range items {
		views = append(views, CartLineView{
			Index:          i,
			ProductID:      item.ProductID,
			ProductType:    item.ProductType,
			Size:           item.Size,
			UnitPrice:      models.Money{Decimal: item.UnitPrice},
			Toppings:       item.Toppings,
			Customizations: item.Customizations,
			Quantity:       item.Quantity,
			LineTotal:      models.Money{Decimal: item.LineTotal()},
		})
	}
	return &CartView{
		Items:      views,
		TotalItems: engine.TotalItems(),
		TotalPrice: models.Money{Decimal: engine.TotalPrice()},
	}
}
