package router

import (
	"fmt"
	"strings"

	"github.com/kitlane/internal/cache"
	"github.com/kitlane/internal/config"
	adminhandlers "github.com/kitlane/internal/http/handlers/admin"
	publichandlers "github.com/kitlane/internal/http/handlers/public"
	"github.com/kitlane/internal/logger"
	"github.com/kitlane/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "kl"
	}
	redisClient := cache.Client()
	validateRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:discount_validate", redisPrefix),
		WindowSeconds: cfg.Security.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}
	footballRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:football", redisPrefix),
		WindowSeconds: cfg.Security.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/posts", publicHandler.ListPosts)
			public.GET("/posts/:slug", publicHandler.GetPost)
			public.POST("/discounts/validate", RateLimitMiddleware(redisClient, validateRule, KeyByIP), publicHandler.ValidateDiscount)

			football := public.Group("/football", RateLimitMiddleware(redisClient, footballRule, KeyByIP))
			{
				football.GET("/competitions/:code/standings", publicHandler.FootballStandings)
				football.GET("/competitions/:code/matches", publicHandler.FootballMatches)
				football.GET("/teams/:id", publicHandler.FootballTeam)
			}
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders/preview", publicHandler.PreviewOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(AdminJWTAuthMiddleware(cfg.AdminJWT))
		{
			// 分类管理
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 商品管理
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/products/:id", adminHandler.GetAdminProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 文章管理
			admin.GET("/posts", adminHandler.GetAdminPosts)
			admin.POST("/posts", adminHandler.CreatePost)
			admin.PUT("/posts/:id", adminHandler.UpdatePost)
			admin.DELETE("/posts/:id", adminHandler.DeletePost)

			// 折扣规则管理
			admin.GET("/discount-rules", adminHandler.GetAdminDiscountRules)
			admin.GET("/discount-rules/:id", adminHandler.GetAdminDiscountRule)
			admin.POST("/discount-rules", adminHandler.CreateDiscountRule)
			admin.PUT("/discount-rules/:id", adminHandler.UpdateDiscountRule)
			admin.DELETE("/discount-rules/:id", adminHandler.DeleteDiscountRule)

			// 订单管理
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.POST("/orders/:id/refund", adminHandler.RefundOrder)
		}
	}

	return r
}
