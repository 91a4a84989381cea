package provider

import (
	"github.com/kitlane/internal/cache"
	"github.com/kitlane/internal/config"
	"github.com/kitlane/internal/logger"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/queue"
	"github.com/kitlane/internal/repository"
	"github.com/kitlane/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CategoryRepo  repository.CategoryRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	RuleRepo      repository.DiscountRuleRepository
	RuleUsageRepo repository.RuleUsageRepository
	PostRepo      repository.PostRepository

	// Services
	CategoryService      *service.CategoryService
	ProductService       *service.ProductService
	CartService          *service.CartService
	OrderService         *service.OrderService
	DiscountService      *service.DiscountService
	DiscountAdminService *service.DiscountAdminService
	PostService          *service.PostService
	FootballService      *service.FootballService
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.RuleRepo = repository.NewDiscountRuleRepository(db)
	c.RuleUsageRepo = repository.NewRuleUsageRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
}

func (c *Container) initServices() {
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.DiscountService = service.NewDiscountService(c.RuleRepo, c.ProductRepo)
	c.DiscountAdminService = service.NewDiscountAdminService(c.RuleRepo, c.RuleUsageRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.DiscountService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.RuleRepo, c.RuleUsageRepo, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.PostService = service.NewPostService(c.PostRepo)
	c.FootballService = service.NewFootballService(c.Config.Football)
}
