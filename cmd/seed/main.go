package main

import (
	"github.com/boutique-next/internal/config"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/models"

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

	for _, product := range demoProducts() {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", product.Name)
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Name)
	}

	stdLog.Println("Seed completed")
}

func price(value string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}

func salePrice(value string) *models.Money {
	p := price(value)
	return &p
}

// demoProducts 演示目录：polos 与 t-shirts 两个分类
func demoProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Polo Classic Premium Blanc",
			Description: "Polo en coton piqué premium avec finitions de qualité supérieure. Coupe ajustée et confortable.",
			Price:       price("8999"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1586790170083-2f9ceadc732d?w=500"},
			Category:    "polos",
			Sizes:       models.StringArray{"S", "M", "L", "XL"},
			Colors:      models.StringArray{"Blanc", "Marine", "Noir"},
			Stock:       50,
			Featured:    true,
		},
		{
			Name:        "T-Shirt Coton Bio Marine",
			Description: "T-shirt en coton biologique certifié, doux et respectueux de l'environnement.",
			Price:       price("4599"),
			OnSale:      true,
			SalePrice:   salePrice("3599"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500"},
			Category:    "tshirts",
			Sizes:       models.StringArray{"XS", "S", "M", "L", "XL", "XXL"},
			Colors:      models.StringArray{"Marine", "Blanc", "Gris"},
			Stock:       75,
		},
		{
			Name:        "Polo Sport Performance Noir",
			Description: "Polo technique en polyester recyclé avec technologie anti-transpiration.",
			Price:       price("7999"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1618354691373-d851c5c3a990?w=500"},
			Category:    "polos",
			Sizes:       models.StringArray{"S", "M", "L", "XL"},
			Colors:      models.StringArray{"Noir", "Bleu", "Rouge"},
			Stock:       30,
			Featured:    true,
		},
		{
			Name:        "T-Shirt Graphique Vintage",
			Description: "T-shirt avec imprimé vintage unique, coton 100% et coupe décontractée.",
			Price:       price("3999"),
			OnSale:      true,
			SalePrice:   salePrice("2999"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=500"},
			Category:    "tshirts",
			Sizes:       models.StringArray{"S", "M", "L", "XL"},
			Colors:      models.StringArray{"Gris", "Noir", "Blanc"},
			Stock:       40,
		},
		{
			Name:        "Polo Luxe Collection Bleu",
			Description: "Polo de luxe en coton égyptien avec broderies artisanales et boutons nacre.",
			Price:       price("14999"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1594938328870-28965dc8f165?w=500"},
			Category:    "polos",
			Sizes:       models.StringArray{"M", "L", "XL"},
			Colors:      models.StringArray{"Bleu", "Blanc", "Marine"},
			Stock:       15,
			Featured:    true,
		},
		{
			Name:        "T-Shirt Basic Essential Blanc",
			Description: "T-shirt basique indispensable, coupe parfaite et qualité durable.",
			Price:       price("2499"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1571945153237-4929e783af4a?w=500"},
			Category:    "tshirts",
			Sizes:       models.StringArray{"XS", "S", "M", "L", "XL", "XXL"},
			Colors:      models.StringArray{"Blanc", "Noir", "Gris", "Marine"},
			Stock:       100,
		},
		{
			Name:        "Polo Rayé Casual Rouge",
			Description: "Polo à rayures classiques pour un look décontracté et élégant.",
			Price:       price("6599"),
			OnSale:      true,
			SalePrice:   salePrice("5299"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=500"},
			Category:    "polos",
			Sizes:       models.StringArray{"S", "M", "L", "XL"},
			Colors:      models.StringArray{"Rouge", "Bleu", "Vert"},
			Stock:       25,
		},
		{
			Name:        "T-Shirt Oversize Tendance",
			Description: "T-shirt oversize dans l'air du temps, parfait pour un style streetwear.",
			Price:       price("4999"),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1503341338985-a4cf1bd6ecad?w=500"},
			Category:    "tshirts",
			Sizes:       models.StringArray{"M", "L", "XL", "XXL"},
			Colors:      models.StringArray{"Noir", "Gris", "Blanc"},
			Stock:       35,
			Featured:    true,
		},
	}
}
