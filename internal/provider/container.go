package provider

import (
	"time"

	"github.com/boutique-next/internal/cache"
	"github.com/boutique-next/internal/cart"
	"github.com/boutique-next/internal/config"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/models"
	"github.com/boutique-next/internal/queue"
	"github.com/boutique-next/internal/repository"
	"github.com/boutique-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository

	// Services
	ProductService  *service.ProductService
	CheckoutService *service.CheckoutService
	EmailService    *service.EmailService

	// 购物车按会话管理，Redis 可用时跨请求持久化
	CartManager *cart.Manager
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.ProductService = service.NewProductService(c.ProductRepo, c.Config.Catalog.CacheTTLSeconds)
	c.CheckoutService = service.NewCheckoutService(
		c.ProductRepo,
		c.OrderRepo,
		c.ProductService,
		c.QueueClient,
		c.Config.Order.ShippingFee,
		c.Config.Order.OperatorEmail,
	)

	cartCfg := c.Config.Cart
	ttl := time.Duration(cartCfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	keyPrefix := cartCfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "cart"
	}
	var factory cart.PersisterFactory
	if cache.Enabled() {
		factory = func(sessionID string) cart.Persister {
			return cart.NewRedisPersister(keyPrefix, sessionID, ttl)
		}
	}
	c.CartManager = cart.NewManager(factory)
}
