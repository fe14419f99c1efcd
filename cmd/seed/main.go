package main

import (
	"fmt"
	"time"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/models"

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

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Brass Idols", SortOrder: 400, IsActive: true},
		{Name: "Diyas & Lamps", SortOrder: 300, IsActive: true},
		{Name: "Home Decor", SortOrder: 200, IsActive: true},
		{Name: "Pooja Essentials", SortOrder: 100, IsActive: true},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
	}
	idolsID := categoryIDs["Brass Idols"]
	lampsID := categoryIDs["Diyas & Lamps"]
	decorID := categoryIDs["Home Decor"]
	poojaID := categoryIDs["Pooja Essentials"]

	// 添加商品
	products := []models.Product{
		{
			Name:        "Brass Ganesha Idol",
			Description: "Hand-cast brass Ganesha idol with antique finish, made by traditional artisans of Moradabad.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2499)),
			CategoryID:  idolsID,
			Images: models.StringArray([]string{
				"/uploads/products/brass-ganesha-idol.jpg",
			}),
			IsPreorder: true,
			IsActive:   true,
			SortOrder:  500,
		},
		{
			Name:        "Nataraja Statue",
			Description: "Lost-wax cast Nataraja statue, polished by hand. Larger sizes are made to order.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5999)),
			CategoryID:  idolsID,
			Images: models.StringArray([]string{
				"/uploads/products/nataraja-statue.jpg",
			}),
			IsPreorder: true,
			IsActive:   true,
			SortOrder:  480,
		},
		{
			Name:        "Peacock Diya Set",
			Description: "Set of two peacock-shaped brass diyas for festive decoration.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(899)),
			CategoryID:  lampsID,
			Images: models.StringArray([]string{
				"/uploads/products/peacock-diya-set.jpg",
			}),
			IsActive:  true,
			SortOrder: 460,
		},
		{
			Name:        "Hanging Brass Lamp",
			Description: "Traditional temple-style hanging lamp with chain, suitable for home shrines.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(3499)),
			CategoryID:  lampsID,
			Images: models.StringArray([]string{
				"/uploads/products/hanging-brass-lamp.jpg",
			}),
			IsPreorder: true,
			IsActive:   true,
			SortOrder:  440,
		},
		{
			Name:        "Engraved Brass Vase",
			Description: "Flower vase with hand-engraved floral pattern and lacquered finish.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1799)),
			CategoryID:  decorID,
			Images: models.StringArray([]string{
				"/uploads/products/engraved-brass-vase.jpg",
			}),
			IsActive:  true,
			SortOrder: 420,
		},
		{
			Name:        "Brass Urli Bowl",
			Description: "Decorative urli bowl for floating flowers and candles.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2199)),
			CategoryID:  decorID,
			Images: models.StringArray([]string{
				"/uploads/products/brass-urli-bowl.jpg",
			}),
			IsActive:  true,
			SortOrder: 400,
		},
		{
			Name:        "Pooja Thali Set",
			Description: "Complete pooja thali set with bell, diya, incense holder and kumkum bowls.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1299)),
			CategoryID:  poojaID,
			Images: models.StringArray([]string{
				"/uploads/products/pooja-thali-set.jpg",
			}),
			IsActive:  true,
			SortOrder: 380,
		},
		{
			Name:        "Brass Temple Bell",
			Description: "Hand-tuned brass bell with carved handle.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(749)),
			CategoryID:  poojaID,
			Images: models.StringArray([]string{
				"/uploads/products/brass-temple-bell.jpg",
			}),
			IsActive:  true,
			SortOrder: 360,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Name)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.Description = prod.Description
			existing.PriceAmount = prod.PriceAmount
			existing.CategoryID = prod.CategoryID
			existing.Images = prod.Images
			existing.IsPreorder = prod.IsPreorder
			existing.IsActive = prod.IsActive
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// 为定制商品准备规格
	variantPlans := map[string][]models.ProductVariant{
		"Brass Ganesha Idol": {
			{Name: "Small (6 inch)", PriceMultiplier: decimal.NewFromInt(1), SortOrder: 300, IsActive: true},
			{Name: "Medium (9 inch)", PriceMultiplier: decimal.NewFromFloat(1.6), SortOrder: 200, IsActive: true},
			{Name: "Large (12 inch)", PriceMultiplier: decimal.NewFromFloat(2.4), SortOrder: 100, IsActive: true},
		},
		"Nataraja Statue": {
			{Name: "Standard Finish", PriceMultiplier: decimal.NewFromInt(1), SortOrder: 200, IsActive: true},
			{
				Name:            "Antique Finish",
				PriceMultiplier: decimal.NewFromInt(1),
				AdditionalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(800)),
				SortOrder:       100,
				IsActive:        true,
			},
		},
		"Hanging Brass Lamp": {
			{Name: "Single Chain", PriceMultiplier: decimal.NewFromInt(1), SortOrder: 200, IsActive: true},
			{Name: "Five Chain", PriceMultiplier: decimal.NewFromFloat(1.8), SortOrder: 100, IsActive: true},
		},
	}

	for productName, variants := range variantPlans {
		var product models.Product
		if err := models.DB.Where("name = ?", productName).First(&product).Error; err != nil {
			stdLog.Printf("Skip variants for %s: product not found", productName)
			continue
		}
		for _, variant := range variants {
			variant.ProductID = product.ID
			var existing models.ProductVariant
			if err := models.DB.Where("product_id = ? AND name = ?", product.ID, variant.Name).First(&existing).Error; err != nil {
				if err := models.DB.Create(&variant).Error; err != nil {
					stdLog.Printf("Failed to create variant %s/%s: %v", productName, variant.Name, err)
				} else {
					stdLog.Printf("Created variant: %s/%s", productName, variant.Name)
				}
			} else {
				existing.PriceMultiplier = variant.PriceMultiplier
				existing.AdditionalPrice = variant.AdditionalPrice
				existing.IsActive = variant.IsActive
				existing.SortOrder = variant.SortOrder
				if err := models.DB.Save(&existing).Error; err != nil {
					stdLog.Printf("Failed to update variant %s/%s: %v", productName, variant.Name, err)
				}
			}
		}
	}

	// 添加优惠券
	festiveExpiry := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:           "SAVE500",
			Description:    "Flat 500 off on orders above 3000",
			Type:           constants.CouponTypeFixed,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(3000)),
			PerUserLimit:   1,
			IsActive:       true,
		},
		{
			Code:           "FESTIVE10",
			Description:    "10% off festive collection, up to 1000",
			Type:           constants.CouponTypePercentage,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MaxDiscount:    models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
			UsageLimit:     200,
			PerUserLimit:   2,
			ExpiryDate:     &festiveExpiry,
			IsActive:       true,
		},
	}

	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	// 添加工坊展示照片
	photos := []models.Photo{
		{
			Title:     "Casting the Ganesha mould",
			Filename:  "casting-ganesha-mould.jpg",
			Path:      "/uploads/photos/casting-ganesha-mould.jpg",
			IsActive:  true,
			SortOrder: 300,
		},
		{
			Title:     "Hand engraving in progress",
			Filename:  "hand-engraving.jpg",
			Path:      "/uploads/photos/hand-engraving.jpg",
			IsActive:  true,
			SortOrder: 200,
		},
		{
			Title:     "Finished lamps before polishing",
			Filename:  "finished-lamps.jpg",
			Path:      "/uploads/photos/finished-lamps.jpg",
			IsActive:  true,
			SortOrder: 100,
		},
	}

	for _, photo := range photos {
		var existing models.Photo
		if err := models.DB.Where("filename = ?", photo.Filename).First(&existing).Error; err != nil {
			if err := models.DB.Create(&photo).Error; err != nil {
				stdLog.Printf("Failed to create photo %s: %v", photo.Filename, err)
			} else {
				stdLog.Printf("Created photo: %s", photo.Filename)
			}
		} else {
			stdLog.Printf("Photo already exists: %s", photo.Filename)
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories")
	fmt.Println("- 8 Products (3 with made-to-order variants)")
	fmt.Println("- 2 Coupons (SAVE500, FESTIVE10)")
	fmt.Println("- 3 Workshop photos")
}
