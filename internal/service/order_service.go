package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pizzaorder-next/internal/cart"
	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/logger"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/queue"
	"github.com/pizzaorder-next/internal/repository"

	"gorm.io/gorm"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID   uint
	Address  models.JSON
	ClientIP string
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartService *CartService
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartService *CartService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartService: cartService,
		queueClient: queueClient,
	}
}

// Checkout 把当前购物车结算为订单。
// 行项价格沿用加入购物车时固化的快照；订单创建成功后清空购物车。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidItem
	}
	lineItems := s.cartService.LineItems(input.UserID)
	if len(lineItems) == 0 {
		return nil, ErrCartEmpty
	}

	items, err := s.buildOrderItems(lineItems)
	if err != nil {
		return nil, err
	}

	total := models.Money{}
	for _, item := range items {
		total = models.NewMoneyFromDecimal(total.Decimal.Add(item.LineTotal.Decimal))
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:     generateOrderNo(),
		UserID:      input.UserID,
		Status:      constants.OrderStatusPending,
		Currency:    constants.DefaultCurrency,
		TotalAmount: total,
		AddressJSON: input.Address,
		ClientIP:    strings.TrimSpace(input.ClientIP),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	s.cartService.Clear(input.UserID)
	s.notifyStatusChange(order.ID, order.Status)

	return order, nil
}

// GetOrder 获取订单详情（校验归属）
func (s *OrderService) GetOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrders 用户订单列表
func (s *OrderService) ListOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(userID, page, pageSize)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin 管理端订单详情
func (s *OrderService) GetAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus 管理端更新订单状态。
// 店面流程灵活多变，已知状态之间允许任意切换，不做状态机约束。
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !constants.KnownOrderStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status != status {
		if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
			return nil, err
		}
		order.Status = status
		s.notifyStatusChange(orderID, status)
	}
	return order, nil
}

// buildOrderItems 把购物车行项转换为订单项快照
func (s *OrderService) buildOrderItems(lineItems []cart.LineItem) ([]models.OrderItem, error) {
	now := time.Now()
	items := make([]models.OrderItem, 0, len(lineItems))
	for _, line := range lineItems {
		product, err := s.productRepo.GetBySlug(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotAvailable
		}

		toppings := make(models.ToppingSelectionList, 0, len(line.Toppings))
		for _, t := range line.Toppings {
			toppings = append(toppings, models.ToppingSelection{
				ToppingID: t.ToppingID,
				Name:      t.Name,
				Price:     models.NewMoneyFromDecimal(t.Price),
				Quantity:  t.Quantity,
			})
		}

		items = append(items, models.OrderItem{
			ProductID:      product.ID,
			ProductSlug:    line.ProductID,
			ProductType:    line.ProductType,
			Name:           product.Name,
			NameHe:         product.NameHe,
			Size:           line.Size,
			UnitPrice:      models.NewMoneyFromDecimal(line.UnitPrice),
			Toppings:       toppings,
			Customizations: line.Customizations,
			Quantity:       line.Quantity,
			LineTotal:      models.NewMoneyFromDecimal(line.LineTotal()),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return items, nil
}

// notifyStatusChange 推送状态邮件任务，失败只记日志不影响主流程
func (s *OrderService) notifyStatusChange(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("order_status_email_enqueue_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PO%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
