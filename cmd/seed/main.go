package main

import (
	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/logger"
	"github.com/pizzaorder-next/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		log.Fatalw("数据库连接失败", "error", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		log.Fatalw("数据库迁移失败", "error", err)
	}

	seedToppings(log)
	seedProducts(log)

	log.Infow("seed_done")
}

func money(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}

func seedToppings(log *zap.SugaredLogger) {
	toppings := []models.Topping{
		{Slug: "extra-mozzarella", Name: "Extra Mozzarella", NameHe: "מוצרלה נוספת", Category: constants.ToppingCategoryCheese, PriceAmount: money(5), IsActive: true, SortOrder: 1},
		{Slug: "bulgarian-cheese", Name: "Bulgarian Cheese", NameHe: "גבינה בולגרית", Category: constants.ToppingCategoryCheese, PriceAmount: money(6), IsActive: true, SortOrder: 2},
		{Slug: "mushrooms", Name: "Mushrooms", NameHe: "פטריות", Category: constants.ToppingCategoryVegetables, PriceAmount: money(4.5), IsActive: true, SortOrder: 3},
		{Slug: "onions", Name: "Onions", NameHe: "בצל", Category: constants.ToppingCategoryVegetables, PriceAmount: money(3), IsActive: true, SortOrder: 4},
		{Slug: "green-olives", Name: "Green Olives", NameHe: "זיתים ירוקים", Category: constants.ToppingCategoryVegetables, PriceAmount: money(3.5), IsActive: true, SortOrder: 5},
		{Slug: "cherry-tomatoes", Name: "Cherry Tomatoes", NameHe: "עגבניות שרי", Category: constants.ToppingCategoryVegetables, PriceAmount: money(4), IsActive: true, SortOrder: 6},
		{Slug: "pepperoni", Name: "Pepperoni", NameHe: "פפרוני", Category: constants.ToppingCategoryMeat, PriceAmount: money(7), IsActive: true, SortOrder: 7},
		{Slug: "pesto", Name: "Pesto", NameHe: "פסטו", Category: constants.ToppingCategorySauces, PriceAmount: money(4), IsActive: true, SortOrder: 8},
		{Slug: "hot-chili", Name: "Hot Chili", NameHe: "צ'ילי חריף", Category: constants.ToppingCategorySpices, PriceAmount: money(2.5), IsActive: true, SortOrder: 9},
		{Slug: "oregano", Name: "Oregano", NameHe: "אורגנו", Category: constants.ToppingCategorySpices, PriceAmount: money(0), IsActive: true, SortOrder: 10},
	}

	for _, topping := range toppings {
		var existing models.Topping
		if err := models.DB.Where("slug = ?", topping.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&topping).Error; err != nil {
				log.Infow("seed_topping_failed", "slug", topping.Slug, "error", err)
			} else {
				log.Infow("seed_topping_created", "slug", topping.Slug)
			}
		} else {
			log.Infow("seed_topping_exists", "slug", topping.Slug)
		}
	}
}

func seedProducts(log *zap.SugaredLogger) {
	pizzaToppings := models.StringArray{
		"extra-mozzarella", "bulgarian-cheese", "mushrooms", "onions",
		"green-olives", "cherry-tomatoes", "pepperoni", "pesto", "hot-chili", "oregano",
	}
	pizzaSizes := models.MoneyMap{
		constants.PizzaSizeSmall:  money(39),
		constants.PizzaSizeMedium: money(49),
		constants.PizzaSizeLarge:  money(59),
		constants.PizzaSizeFamily: money(72),
	}

	products := []models.Product{
		{
			Slug:              "margherita",
			Type:              constants.ProductTypePizza,
			Name:              "Margherita",
			NameHe:            "מרגריטה",
			Description:       "Classic tomato sauce, mozzarella and fresh basil",
			DescriptionHe:     "רוטב עגבניות קלאסי, מוצרלה ובזיליקום טרי",
			PriceAmount:       money(49),
			SizePrices:        pizzaSizes,
			Category:          "classic",
			Ingredients:       models.StringArray{"tomato sauce", "mozzarella", "basil"},
			AvailableToppings: pizzaToppings,
			IsActive:          true,
			SortOrder:         1,
		},
		{
			Slug:              "veggie-supreme",
			Type:              constants.ProductTypePizza,
			Name:              "Veggie Supreme",
			NameHe:            "ירקות סופרים",
			Description:       "Mushrooms, onions, olives and cherry tomatoes",
			DescriptionHe:     "פטריות, בצל, זיתים ועגבניות שרי",
			PriceAmount:       money(56),
			SizePrices:        pizzaSizes,
			Category:          "vegetarian",
			Ingredients:       models.StringArray{"tomato sauce", "mozzarella", "mushrooms", "onions", "olives", "cherry tomatoes"},
			AvailableToppings: pizzaToppings,
			IsActive:          true,
			SortOrder:         2,
		},
		{
			Slug:          "penne-arrabbiata",
			Type:          constants.ProductTypePasta,
			Name:          "Penne Arrabbiata",
			NameHe:        "פנה ארביאטה",
			Description:   "Penne in spicy tomato sauce",
			DescriptionHe: "פנה ברוטב עגבניות פיקנטי",
			PriceAmount:   money(44),
			Category:      "pasta",
			Ingredients:   models.StringArray{"penne", "tomato sauce", "chili", "garlic"},
			IsActive:      true,
			SortOrder:     10,
		},
		{
			Slug:          "garlic-bread",
			Type:          constants.ProductTypeSide,
			Name:          "Garlic Bread",
			NameHe:        "לחם שום",
			Description:   "Fresh baked bread with garlic butter",
			DescriptionHe: "לחם אפוי טרי עם חמאת שום",
			PriceAmount:   money(18),
			Category:      "sides",
			Ingredients:   models.StringArray{"bread", "garlic", "butter", "parsley"},
			IsActive:      true,
			SortOrder:     20,
		},
		{
			Slug:          "cola",
			Type:          constants.ProductTypeDrink,
			Name:          "Cola 330ml",
			NameHe:        "קולה 330 מ\"ל",
			Description:   "Chilled soft drink",
			DescriptionHe: "משקה קל צונן",
			PriceAmount:   money(10),
			Category:      "drinks",
			IsActive:      true,
			SortOrder:     30,
		},
		{
			Slug:          "mineral-water",
			Type:          constants.ProductTypeDrink,
			Name:          "Mineral Water 500ml",
			NameHe:        "מים מינרליים 500 מ\"ל",
			Description:   "Still mineral water",
			DescriptionHe: "מים מינרליים ללא גז",
			PriceAmount:   money(8),
			Category:      "drinks",
			IsActive:      true,
			SortOrder:     31,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				log.Infow("seed_product_failed", "slug", product.Slug, "error", err)
			} else {
				log.Infow("seed_product_created", "slug", product.Slug)
			}
		} else {
			log.Infow("seed_product_exists", "slug", product.Slug)
		}
	}
}
