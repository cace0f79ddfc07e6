package router

import (
	"github.com/boutique-next/internal/config"
	publichandlers "github.com/boutique-next/internal/http/handlers/public"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/featured", publicHandler.ListFeaturedProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
		}

		// 会话购物车接口
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PATCH("/items/:id", publicHandler.UpdateCartItem)
			cartGroup.DELETE("/items/:id", publicHandler.RemoveCartItem)
			cartGroup.DELETE("", publicHandler.ClearCart)
			cartGroup.POST("/drawer", publicHandler.CartDrawer)
		}

		// 下单与订单查询
		apiV1.POST("/checkout", publicHandler.Checkout)
		apiV1.GET("/orders/:id", publicHandler.GetOrder)
	}

	return r
}
