package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 支付状态常量（支付本身由外部处理，这里只记录状态）
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 排序方式常量
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
)

// 队列与任务常量
const (
	QueueDefault        = "default"
	TaskOrderEmail      = "order:email"
	EmailAudienceClient = "client"
	EmailAudienceAdmin  = "admin"
)

// 货币常量：店铺固定使用中非法郎，金额不带小数展示
const (
	Currency = "XAF"
)

// DefaultMaxPrice 商品目录为空时价格区间上限的兜底值
const DefaultMaxPrice = 50000
