package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/boutique-next/internal/cart"
	"github.com/boutique-next/internal/constants"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/models"
	"github.com/boutique-next/internal/queue"
	"github.com/boutique-next/internal/repository"

	"gorm.io/gorm"
)

// CheckoutInput 下单输入
type CheckoutInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ClientIP      string
	Items         []cart.Item
}

// CheckoutService 下单服务。
// 扣库存、创建订单在同一事务内完成，任一商品库存不足则整单回滚。
type CheckoutService struct {
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	productService *ProductService
	queueClient    *queue.Client
	shippingFee    models.Money
	operatorEmail  string
}

// NewCheckoutService 创建下单服务
func NewCheckoutService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	productService *ProductService,
	queueClient *queue.Client,
	shippingFee int64,
	operatorEmail string,
) *CheckoutService {
	return &CheckoutService{
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		productService: productService,
		queueClient:    queueClient,
		shippingFee:    models.NewMoneyFromInt(shippingFee),
		operatorEmail:  strings.TrimSpace(operatorEmail),
	}
}

// ShippingFee 当前固定运费
func (s *CheckoutService) ShippingFee() models.Money {
	return s.shippingFee
}

// Checkout 创建订单
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		Status:         constants.OrderStatusPending,
		Currency:       constants.Currency,
		ShippingAmount: s.shippingFee,
		TaxAmount:      models.NewMoneyFromInt(0),
		PaymentStatus:  constants.PaymentStatusPending,
		PaymentMethod:  "pending",
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		ClientIP:       strings.TrimSpace(input.ClientIP),
	}

	total := s.shippingFee
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		unitPrice := line.EffectiveUnitPrice()
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: productNameSnapshot(line),
			Size:        line.Size,
			Color:       line.Color,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
		})
		total = total.Add(unitPrice.MulInt(line.Quantity))
	}
	order.TotalAmount = total
	order.Items = items

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		txProducts := s.productRepo.WithTx(tx)
		for _, line := range input.Items {
			affected, err := txProducts.DecrementStock(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				product, err := txProducts.GetByID(line.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return ErrProductNotFound
				}
				return ErrInsufficientStock
			}
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}

	if s.productService != nil {
		s.productService.InvalidateCatalogCache(ctx)
	}
	s.enqueueOrderEmails(order)

	logger.Infow("checkout_order_created",
		"order_id", order.ID,
		"customer_email", order.CustomerEmail,
		"total_amount", order.TotalAmount.String(),
		"item_count", len(order.Items),
	)
	return order, nil
}

// GetOrder 订单详情
func (s *CheckoutService) GetOrder(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// 邮件通知在事务提交后入队，失败只记录日志，不影响下单结果
func (s *CheckoutService) enqueueOrderEmails(order *models.Order) {
	if !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderEmail(queue.OrderEmailPayload{
		OrderID:  order.ID,
		Audience: constants.EmailAudienceClient,
	}); err != nil {
		logger.Warnw("checkout_enqueue_client_email_failed", "order_id", order.ID, "error", err)
	}
	if s.operatorEmail == "" {
		return
	}
	if err := s.queueClient.EnqueueOrderEmail(queue.OrderEmailPayload{
		OrderID:  order.ID,
		Audience: constants.EmailAudienceAdmin,
	}); err != nil {
		logger.Warnw("checkout_enqueue_admin_email_failed", "order_id", order.ID, "error", err)
	}
}

func validateCheckoutInput(input CheckoutInput) error {
	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerEmail) == "" ||
		strings.TrimSpace(input.CustomerPhone) == "" {
		return ErrInvalidCustomerInfo
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.CustomerEmail)); err != nil {
		return ErrInvalidEmail
	}
	if len(input.Items) == 0 {
		return ErrCartEmpty
	}
	for _, line := range input.Items {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity <= 0 {
			return ErrInvalidOrderItem
		}
	}
	return nil
}

func productNameSnapshot(line cart.Item) string {
	if line.Product != nil {
		return line.Product.Name
	}
	return ""
}
