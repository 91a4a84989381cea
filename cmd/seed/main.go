package main

import (
	"time"

	"github.com/kitlane/internal/config"
	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/logger"
	"github.com/kitlane/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "俱乐部球衣",
				"en-US": "Club Jerseys",
			}),
			Slug: "club",
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "国家队球衣",
				"en-US": "National Team Jerseys",
			}),
			Slug: "national",
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "复古球衣",
				"en-US": "Retro Jerseys",
			}),
			Slug: "retro",
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"club", "national", "retro"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	standardSizes := []string{"S", "M", "L", "XL", "XXL"}

	// 添加球衣商品
	products := []models.Product{
		{
			CategoryID: categoryIDs["club"],
			Slug:       "arsenal-home-2025-26",
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "阿森纳 2025-26 主场球衣",
				"en-US": "Arsenal 2025-26 Home Jersey",
			}),
			Team:             "Arsenal",
			Season:           "2025-26",
			KitType:          models.KitTypeHome,
			PriceAmount:      models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			Sizes:            models.StringArray(standardSizes),
			Tags:             models.StringArray([]string{"premier-league", "new-season"}),
			Customizable:     true,
			CustomizationFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(15)),
			Patches:          models.StringArray([]string{"premier-league", "champions-league"}),
			Stock:            200,
			IsActive:         true,
			SortOrder:        10,
		},
		{
			CategoryID: categoryIDs["club"],
			Slug:       "real-madrid-away-2025-26",
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "皇家马德里 2025-26 客场球衣",
				"en-US": "Real Madrid 2025-26 Away Jersey",
			}),
			Team:             "Real Madrid",
			Season:           "2025-26",
			KitType:          models.KitTypeAway,
			PriceAmount:      models.NewMoneyFromDecimal(decimal.NewFromFloat(94.99)),
			Sizes:            models.StringArray(standardSizes),
			Tags:             models.StringArray([]string{"la-liga"}),
			Customizable:     true,
			CustomizationFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(18)),
			Patches:          models.StringArray([]string{"la-liga", "champions-league"}),
			Stock:            150,
			IsActive:         true,
			SortOrder:        9,
		},
		{
			CategoryID: categoryIDs["national"],
			Slug:       "brazil-home-2026",
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "巴西国家队 2026 主场球衣",
				"en-US": "Brazil 2026 Home Jersey",
			}),
			Team:             "Brazil",
			Season:           "2026",
			KitType:          models.KitTypeHome,
			PriceAmount:      models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Sizes:            models.StringArray(standardSizes),
			Tags:             models.StringArray([]string{"world-cup"}),
			Customizable:     true,
			CustomizationFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(15)),
			Patches:          models.StringArray([]string{"world-cup"}),
			Stock:            300,
			IsActive:         true,
			SortOrder:        8,
		},
		{
			CategoryID: categoryIDs["retro"],
			Slug:       "milan-home-1994",
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "AC 米兰 1994 复古主场球衣",
				"en-US": "AC Milan 1994 Retro Home Jersey",
			}),
			Team:        "AC Milan",
			Season:      "1993-94",
			KitType:     models.KitTypeHome,
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(69.99)),
			Sizes:       models.StringArray([]string{"M", "L", "XL"}),
			Tags:        models.StringArray([]string{"retro", "serie-a"}),
			// 复古球衣不支持印制
			Customizable: false,
			Stock:        50,
			IsActive:     true,
			SortOrder:    5,
		},
	}

	productIDs := map[string]uint{}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
				continue
			}
			stdLog.Printf("Created product: %s", product.Slug)
			productIDs[product.Slug] = product.ID
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
			productIDs[product.Slug] = existing.ID
		}
	}

	// 添加折扣规则（四种类型各一条）
	now := time.Now()
	seasonEnd := now.AddDate(0, 3, 0)
	rules := []models.DiscountRule{
		{
			Name:        "新赛季俱乐部球衣 9 折",
			Description: "俱乐部分类全场 10% 折扣",
			Type:        constants.RuleTypePercentageOff,
			Priority:    10,
			IsActive:    true,
			EndsAt:      &seasonEnd,
			Categories:  models.StringArray([]string{"club"}),
			Percent:     models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		},
		{
			Name:        "复古球衣立减 10 元",
			Description: "复古分类每行立减固定金额",
			Type:        constants.RuleTypeFixedAmountOff,
			Priority:    5,
			IsActive:    true,
			Categories:  models.StringArray([]string{"retro"}),
			Amount:      models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		},
		{
			Name:        "团购满 3 件 85 折",
			Description: "单行购买 3 件及以上享 15% 折扣",
			Type:        constants.RuleTypeQuantityBased,
			Priority:    8,
			IsActive:    true,
			MinQuantity: 3,
			Percent:     models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		},
		{
			Name:         "国家队球衣买二送一",
			Description:  "世界杯促销，限量 100 次",
			Type:         constants.RuleTypeBuyXGetY,
			Priority:     12,
			IsActive:     true,
			MaxUses:      100,
			Categories:   models.StringArray([]string{"national"}),
			BuyQuantity:  2,
			FreeQuantity: 1,
		},
	}

	for _, rule := range rules {
		var existing models.DiscountRule
		if err := models.DB.Where("name = ?", rule.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&rule).Error; err != nil {
				stdLog.Printf("Failed to create discount rule %s: %v", rule.Name, err)
			} else {
				stdLog.Printf("Created discount rule: %s", rule.Name)
			}
		} else {
			stdLog.Printf("Discount rule already exists: %s", rule.Name)
		}
	}

	// 添加文章
	publishedAt := now
	posts := []models.Post{
		{
			Slug: "welcome-to-kitlane",
			Type: constants.PostTypeBlog,
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "欢迎来到 Kitlane",
				"en-US": "Welcome to Kitlane",
			}),
			SummaryJSON: models.JSON(map[string]interface{}{
				"zh-CN": "正品球衣，支持印字印号。",
				"en-US": "Authentic jerseys with name and number printing.",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "Kitlane 提供俱乐部、国家队与复古球衣，全部支持个性化定制。",
				"en-US": "Kitlane carries club, national team and retro jerseys, all customizable.",
			}),
			IsPublished: true,
			PublishedAt: &publishedAt,
		},
		{
			Slug: "world-cup-promo",
			Type: constants.PostTypeNotice,
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "世界杯促销：国家队球衣买二送一",
				"en-US": "World Cup promo: buy 2 get 1 on national jerseys",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "活动限量 100 次，先到先得。",
				"en-US": "Limited to the first 100 redemptions.",
			}),
			IsPublished: true,
			PublishedAt: &publishedAt,
		},
	}

	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	stdLog.Printf("Seed finished: %d categories, %d products, %d discount rules, %d posts",
		len(categories), len(products), len(rules), len(posts))
}
