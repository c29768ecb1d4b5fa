package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// KnownOrderStatuses 已知订单状态集合
// 后台可以在这些状态之间任意切换，状态机不做更严格的约束。
var KnownOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusPreparing: true,
	OrderStatusReady:     true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

// 商品类型常量
const (
	ProductTypePizza = "pizza"
	ProductTypePasta = "pasta"
	ProductTypeDrink = "drink"
	ProductTypeSide  = "side"
)

// KnownProductTypes 已知商品类型集合
var KnownProductTypes = map[string]bool{
	ProductTypePizza: true,
	ProductTypePasta: true,
	ProductTypeDrink: true,
	ProductTypeSide:  true,
}

// 披萨尺寸常量
const (
	PizzaSizeSmall  = "small"
	PizzaSizeMedium = "medium"
	PizzaSizeLarge  = "large"
	PizzaSizeFamily = "family"
)

// 配料分类常量
const (
	ToppingCategoryCheese     = "cheese"
	ToppingCategoryVegetables = "vegetables"
	ToppingCategoryMeat       = "meat"
	ToppingCategorySauces     = "sauces"
	ToppingCategorySpices     = "spices"
)

// 用户角色常量
const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// DefaultCurrency 默认币种（新谢克尔）
const DefaultCurrency = "ILS"

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskOrderStatusEmail = "order:status_email"
)
