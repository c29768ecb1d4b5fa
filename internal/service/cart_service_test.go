package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pizzaorder-next/internal/cart"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openMenuTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Topping{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedMenu(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	margherita := models.Product{
		Slug:        "margherita",
		Type:        "pizza",
		Name:        "Margherita",
		NameHe:      "מרגריטה",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
		SizePrices: models.MoneyMap{
			"small":  models.NewMoneyFromDecimal(decimal.NewFromInt(35)),
			"medium": models.NewMoneyFromDecimal(decimal.NewFromInt(45)),
			"large":  models.NewMoneyFromDecimal(decimal.NewFromInt(55)),
		},
		AvailableToppings: models.StringArray{"mozzarella", "mushrooms", "olives"},
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := db.Create(&margherita).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	cola := models.Product{
		Slug:        "cola",
		Type:        "drink",
		Name:        "Cola",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&cola).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	inactive := models.Product{
		Slug:        "retired-pizza",
		Type:        "pizza",
		Name:        "Retired",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		IsActive:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	toppings := []models.Topping{
		{Slug: "mozzarella", Name: "Mozzarella", Category: "cheese", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5)), IsActive: true},
		{Slug: "mushrooms", Name: "Mushrooms", Category: "vegetables", PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("4.50")), IsActive: true},
		{Slug: "olives", Name: "Olives", Category: "vegetables", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(3)), IsActive: false},
		{Slug: "bacon", Name: "Bacon", Category: "meat", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(8)), IsActive: true},
	}
	for i := range toppings {
		if err := db.Create(&toppings[i]).Error; err != nil {
			t.Fatalf("create topping failed: %v", err)
		}
	}
}

func newCartServiceForTest(t *testing.T, name string) (*CartService, *gorm.DB) {
	t.Helper()
	db := openMenuTestDB(t, name)
	seedMenu(t, db)
	productRepo := repository.NewProductRepository(db)
	toppingRepo := repository.NewToppingRepository(db)
	manager := cart.NewManager(nil, time.Hour)
	t.Cleanup(manager.Close)
	svc := NewCartService(manager, NewCatalog(productRepo), toppingRepo)
	return svc, db
}

func TestCartServiceAddItemSnapshotsPrices(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_snapshot")

	view, err := svc.AddItem(context.Background(), 1, AddCartItemInput{
		ProductID:   "margherita",
		ProductType: "pizza",
		Size:        "medium",
		Quantity:    1,
		Toppings: []CartToppingInput{
			{ToppingID: "mozzarella", Quantity: 1},
			{ToppingID: "mushrooms", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Items))
	}
	line := view.Items[0]
	if line.UnitPrice.String() != "45.00" {
		t.Fatalf("expected unit price 45.00, got %s", line.UnitPrice.String())
	}
	// 45 + 5 + 4.50*2 = 59
	if line.LineTotal.String() != "59.00" {
		t.Fatalf("expected line total 59.00, got %s", line.LineTotal.String())
	}
	if view.TotalPrice.String() != "59.00" {
		t.Fatalf("expected total 59.00, got %s", view.TotalPrice.String())
	}
}

func TestCartServiceMergesEquivalentConfigurations(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_merge")

	input := AddCartItemInput{
		ProductID:   "margherita",
		ProductType: "pizza",
		Size:        "large",
		Quantity:    1,
		Toppings: []CartToppingInput{
			{ToppingID: "mozzarella", Quantity: 1},
			{ToppingID: "mushrooms", Quantity: 1},
		},
	}
	if _, err := svc.AddItem(context.Background(), 7, input); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	// 配料顺序不同仍是等价配置
	input.Toppings = []CartToppingInput{
		{ToppingID: "mushrooms", Quantity: 1},
		{ToppingID: "mozzarella", Quantity: 1},
	}
	view, err := svc.AddItem(context.Background(), 7, input)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected merge into 1 line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Items[0].Quantity)
	}
}

func TestCartServiceRejectsUnknownProduct(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_unknown_product")

	_, err := svc.AddItem(context.Background(), 1, AddCartItemInput{ProductID: "nope", Quantity: 1})
	if err != ErrProductNotAvailable {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), 1, AddCartItemInput{ProductID: "retired-pizza", Quantity: 1})
	if err != ErrProductNotAvailable {
		t.Fatalf("expected ErrProductNotAvailable for inactive product, got %v", err)
	}
}

func TestCartServiceRejectsUnknownSize(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_unknown_size")

	_, err := svc.AddItem(context.Background(), 1, AddCartItemInput{
		ProductID: "margherita",
		Size:      "giant",
		Quantity:  1,
	})
	if err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestCartServiceSizeIgnoredWithoutSizeTable(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_no_size_table")

	// 饮品没有尺寸价格表，任意尺寸回落到基础价格
	view, err := svc.AddItem(context.Background(), 1, AddCartItemInput{
		ProductID: "cola",
		Size:      "large",
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if view.Items[0].UnitPrice.String() != "10.00" {
		t.Fatalf("expected base price 10.00, got %s", view.Items[0].UnitPrice.String())
	}
}

func TestCartServiceRejectsForbiddenTopping(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_forbidden_topping")

	// bacon 上架但不在该商品的可选配料里
	_, err := svc.AddItem(context.Background(), 1, AddCartItemInput{
		ProductID: "margherita",
		Size:      "small",
		Quantity:  1,
		Toppings:  []CartToppingInput{{ToppingID: "bacon", Quantity: 1}},
	})
	if err != ErrToppingNotAvailable {
		t.Fatalf("expected ErrToppingNotAvailable, got %v", err)
	}

	// olives 在可选列表里但已下架
	_, err = svc.AddItem(context.Background(), 1, AddCartItemInput{
		ProductID: "margherita",
		Size:      "small",
		Quantity:  1,
		Toppings:  []CartToppingInput{{ToppingID: "olives", Quantity: 1}},
	})
	if err != ErrToppingNotAvailable {
		t.Fatalf("expected ErrToppingNotAvailable for inactive topping, got %v", err)
	}
}

func TestCartServiceZeroQuantityToppingDropped(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_zero_topping")

	view, err := svc.AddItem(context.Background(), 1, AddCartItemInput{
		ProductID: "margherita",
		Size:      "small",
		Quantity:  1,
		Toppings:  []CartToppingInput{{ToppingID: "mozzarella", Quantity: 0}},
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if len(view.Items[0].Toppings) != 0 {
		t.Fatalf("expected zero-quantity topping to be dropped, got %+v", view.Items[0].Toppings)
	}
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	svc, _ := newCartServiceForTest(t, "cart_service_update_remove")

	if _, err := svc.AddItem(context.Background(), 3, AddCartItemInput{ProductID: "cola", Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), 3, AddCartItemInput{ProductID: "margherita", Size: "small", Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	view := svc.UpdateQuantity(3, 0, 5)
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", view.Items[0].Quantity)
	}

	// 数量归零等价于删除
	view = svc.UpdateQuantity(3, 0, 0)
	if len(view.Items) != 1 || view.Items[0].ProductID != "margherita" {
		t.Fatalf("expected only margherita left, got %+v", view.Items)
	}

	// 越界索引静默忽略
	view = svc.RemoveItem(3, 9)
	if len(view.Items) != 1 {
		t.Fatalf("expected out-of-range remove to be a no-op, got %+v", view.Items)
	}

	view = svc.Clear(3)
	if len(view.Items) != 0 || view.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}
