package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pizzaorder-next/internal/cart"
	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"
)

func newOrderServiceForTest(t *testing.T, name string) (*OrderService, *CartService) {
	t.Helper()
	db := openMenuTestDB(t, name)
	seedMenu(t, db)
	models.DB = db

	productRepo := repository.NewProductRepository(db)
	toppingRepo := repository.NewToppingRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	manager := cart.NewManager(nil, time.Hour)
	t.Cleanup(manager.Close)
	cartSvc := NewCartService(manager, NewCatalog(productRepo), toppingRepo)
	orderSvc := NewOrderService(orderRepo, productRepo, cartSvc, nil)
	return orderSvc, cartSvc
}

func TestCheckoutCreatesOrderFromCart(t *testing.T) {
	orderSvc, cartSvc := newOrderServiceForTest(t, "order_checkout")

	if _, err := cartSvc.AddItem(context.Background(), 5, AddCartItemInput{
		ProductID: "margherita",
		Size:      "large",
		Quantity:  2,
		Toppings:  []CartToppingInput{{ToppingID: "mozzarella", Quantity: 1}},
	}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := cartSvc.AddItem(context.Background(), 5, AddCartItemInput{
		ProductID: "cola",
		Quantity:  3,
	}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	order, err := orderSvc.Checkout(CheckoutInput{
		UserID:   5,
		Address:  models.JSON{"street": "Herzl 12", "city": "Tel Aviv"},
		ClientIP: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "PO") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	// (55+5)*2 + 10*3 = 150
	if order.TotalAmount.String() != "150.00" {
		t.Fatalf("expected total 150.00, got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if order.Items[0].LineTotal.String() != "120.00" {
		t.Fatalf("expected line total 120.00, got %s", order.Items[0].LineTotal.String())
	}

	// 结算成功后购物车被清空
	if view := cartSvc.View(5); len(view.Items) != 0 {
		t.Fatalf("expected cart to be cleared, got %+v", view.Items)
	}

	fetched, err := orderSvc.GetOrder(order.ID, 5)
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if fetched.OrderNo != order.OrderNo {
		t.Fatalf("expected order no %s, got %s", order.OrderNo, fetched.OrderNo)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderSvc, _ := newOrderServiceForTest(t, "order_checkout_empty")

	_, err := orderSvc.Checkout(CheckoutInput{UserID: 11})
	if err != ErrCartEmpty {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	orderSvc, cartSvc := newOrderServiceForTest(t, "order_ownership")

	if _, err := cartSvc.AddItem(context.Background(), 2, AddCartItemInput{ProductID: "cola", Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.Checkout(CheckoutInput{UserID: 2})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	if _, err := orderSvc.GetOrder(order.ID, 99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
}

func TestUpdateStatusAllowsAnyKnownTransition(t *testing.T) {
	orderSvc, cartSvc := newOrderServiceForTest(t, "order_status")

	if _, err := cartSvc.AddItem(context.Background(), 8, AddCartItemInput{ProductID: "cola", Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.Checkout(CheckoutInput{UserID: 8})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	// 店面流程允许任意已知状态切换，包括“回退”
	sequence := []string{
		constants.OrderStatusDelivered,
		constants.OrderStatusPreparing,
		constants.OrderStatusCancelled,
		constants.OrderStatusConfirmed,
	}
	for _, status := range sequence {
		updated, err := orderSvc.UpdateStatus(order.ID, status)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) error: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected status %s, got %s", status, updated.Status)
		}
	}

	if _, err := orderSvc.UpdateStatus(order.ID, "teleported"); err != ErrInvalidOrderStatus {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if _, err := orderSvc.UpdateStatus(9999, constants.OrderStatusReady); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
