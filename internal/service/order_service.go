package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/logger"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/queue"
	"github.com/kitlane/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	ruleRepo      repository.DiscountRuleRepository
	usageRepo     repository.RuleUsageRepository
	queueClient   *queue.Client
	expireMinutes int
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	ruleRepo repository.DiscountRuleRepository,
	usageRepo repository.RuleUsageRepository,
	queueClient *queue.Client,
	expireMinutes int,
) *OrderService {
	if expireMinutes <= 0 {
		expireMinutes = 15
	}
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		ruleRepo:      ruleRepo,
		usageRepo:     usageRepo,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID   uint
	Shipping models.JSON
	ClientIP string
}

// Checkout 从购物车创建订单。逐行评估折扣，命中规则的使用次数
// 在同一事务内条件自增，名额已被并发请求抢完时整单回滚。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	rules, err := s.ruleRepo.ListActive(now)
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(time.Duration(s.expireMinutes) * time.Minute)
	order := &models.Order{
		OrderNo:      generateOrderNo(),
		UserID:       input.UserID,
		Status:       constants.OrderStatusPending,
		Currency:     constants.SiteCurrencyDefault,
		ShippingJSON: input.Shipping,
		ClientIP:     input.ClientIP,
		ExpiresAt:    &expiresAt,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		items := make([]models.OrderItem, 0, len(cartItems))
		usages := make([]models.RuleUsage, 0, len(cartItems))
		original := decimal.Zero
		discount := decimal.Zero

		for i := range cartItems {
			cartItem := &cartItems[i]
			item, applied, err := s.buildOrderItem(tx, cartItem, rules, now)
			if err != nil {
				return err
			}
			items = append(items, *item)
			original = original.Add(item.TotalPrice.Decimal)
			if applied != nil {
				discount = discount.Add(item.DiscountAmount.Decimal)
				usages = append(usages, models.RuleUsage{
					RuleID:         applied.Rule.ID,
					UserID:         input.UserID,
					ProductID:      item.ProductID,
					DiscountAmount: item.DiscountAmount,
				})
			}
		}

		order.OriginalAmount = models.NewMoneyFromDecimal(original)
		order.DiscountAmount = models.NewMoneyFromDecimal(discount)
		order.TotalAmount = models.NewMoneyFromDecimal(original.Sub(discount))

		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		order.Items = items

		for i := range usages {
			usages[i].OrderID = order.ID
			if err := s.usageRepo.WithTx(tx).Create(&usages[i]); err != nil {
				return err
			}
		}

		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{OrderID: order.ID}, time.Until(expiresAt)); err != nil {
		logger.Warnw("order_timeout_enqueue_failed", "order_id", order.ID, "error", err)
	}

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total", order.TotalAmount.String(),
		"discount", order.DiscountAmount.String(),
	)
	return order, nil
}

// buildOrderItem 校验单条购物车行并生成订单项快照
func (s *OrderService) buildOrderItem(tx *gorm.DB, cartItem *models.CartItem, rules []models.DiscountRule, now time.Time) (*models.OrderItem, *AppliedDiscount, error) {
	product, err := s.productRepo.WithTx(tx).GetByID(cartItem.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, nil, ErrProductUnavailable
	}
	if !product.HasSize(cartItem.Size) {
		return nil, nil, ErrSizeInvalid
	}
	if cartItem.Quantity <= 0 {
		return nil, nil, ErrQuantityInvalid
	}
	if cartItem.Customized() && !product.Customizable {
		return nil, nil, ErrCustomizationInvalid
	}

	ok, err := s.productRepo.WithTx(tx).AdjustStock(product.ID, -cartItem.Quantity)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrProductOutOfStock
	}

	unitPrice := product.PriceAmount.Decimal
	customizationFee := models.Money{}
	if cartItem.Customized() {
		customizationFee = product.CustomizationFee
		unitPrice = unitPrice.Add(customizationFee.Decimal)
	}
	unit := models.NewMoneyFromDecimal(unitPrice)
	total := unit.MulInt(cartItem.Quantity)

	ctx := RuleContext{
		ProductID: product.ID,
		Category:  product.Category.Slug,
		Quantity:  cartItem.Quantity,
		UnitPrice: unit,
		Now:       now,
	}
	applied := SelectBestRule(rules, ctx)
	item := &models.OrderItem{
		ProductID:        product.ID,
		TitleJSON:        product.TitleJSON,
		Team:             product.Team,
		Season:           product.Season,
		Size:             cartItem.Size,
		PlayerName:       cartItem.PlayerName,
		PlayerNumber:     cartItem.PlayerNumber,
		PatchRefs:        cartItem.PatchRefs,
		CustomizationFee: customizationFee,
		UnitPrice:        unit,
		Quantity:         cartItem.Quantity,
		TotalPrice:       total,
	}

	if applied != nil {
		consumed, err := s.ruleRepo.WithTx(tx).ConsumeUsage(applied.Rule.ID)
		if err != nil {
			return nil, nil, err
		}
		if !consumed {
			return nil, nil, ErrRuleUnavailable
		}
		ruleID := applied.Rule.ID
		item.AppliedRuleID = &ruleID
		item.DiscountAmount = applied.Amount
	}
	return item, applied, nil
}

// UpdateStatus 后台推进订单状态，非法迁移直接拒绝
func (s *OrderService) UpdateStatus(id uint, target string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if !CanTransition(order.Status, target) {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	if target == constants.OrderStatusCancelled {
		if err := s.cancel(order, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.orderRepo.UpdateStatus(order.ID, target, statusTimestamps(target, now)); err != nil {
			return nil, err
		}
	}

	logger.Infow("order_status_changed",
		"order_no", order.OrderNo,
		"from", order.Status,
		"to", target,
	)
	order.Status = target
	return order, nil
}

// CancelByUser 用户取消自己的待处理订单
func (s *OrderService) CancelByUser(id, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderTransitionInvalid
	}
	if err := s.cancel(order, time.Now()); err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusCancelled
	return order, nil
}

// cancel 取消订单：归还折扣名额、回补库存、落状态，单事务完成
func (s *OrderService) cancel(order *models.Order, now time.Time) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		usages, err := s.usageRepo.WithTx(tx).ListByOrder(order.ID)
		if err != nil {
			return err
		}
		for _, usage := range usages {
			if err := s.ruleRepo.WithTx(tx).ReleaseUsage(usage.RuleID); err != nil {
				return err
			}
		}
		if err := s.usageRepo.WithTx(tx).DeleteByOrder(order.ID); err != nil {
			return err
		}
		for _, item := range order.Items {
			if _, err := s.productRepo.WithTx(tx).AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusCancelled, statusTimestamps(constants.OrderStatusCancelled, now))
	})
}

// Refund 标记已取消订单为已退款，退款是取消态上的标记位而非独立状态
func (s *OrderService) Refund(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusCancelled || order.Refunded {
		return nil, ErrRefundNotAllowed
	}

	now := time.Now()
	updates := map[string]interface{}{
		"refunded":    true,
		"refunded_at": now,
		"updated_at":  now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, updates); err != nil {
		return nil, err
	}
	logger.Infow("order_refunded", "order_no", order.OrderNo, "total", order.TotalAmount.String())
	order.Refunded = true
	order.RefundedAt = &now
	return order, nil
}

// CancelTimeout 取消已超时的待处理订单，幂等：非待处理状态直接跳过
func (s *OrderService) CancelTimeout(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPending {
		return nil
	}
	if order.ExpiresAt == nil || order.ExpiresAt.After(time.Now()) {
		return nil
	}
	if err := s.cancel(order, time.Now()); err != nil {
		return err
	}
	logger.Infow("order_timeout_cancelled", "order_no", order.OrderNo)
	return nil
}

// GetByIDAndUser 获取用户订单详情
func (s *OrderService) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// GetAdmin 后台获取订单详情
func (s *OrderService) GetAdmin(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 后台获取订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("KL%s%s", now, randNumeric(6))
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
