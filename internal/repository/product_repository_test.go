package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/boutique-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createProduct(t *testing.T, repo *GormProductRepository, name string, price int64, stock int, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: name,
		Price:       models.NewMoneyFromInt(price),
		Category:    "vestes",
		Sizes:       models.StringArray{"M"},
		Colors:      models.StringArray{"Noir"},
		Stock:       stock,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductCreateAssignsUUID(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTest(t))
	product := createProduct(t, repo, "Veste en jean", 15000, 5, nil)
	if product.ID == "" {
		t.Fatalf("expected generated id")
	}

	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got == nil || got.Name != "Veste en jean" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductGetByIDMissingReturnsNil(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTest(t))
	got, err := repo.GetByID("does-not-exist")
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing product, got %+v", got)
	}
}

func TestProductListFilters(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTest(t))
	createProduct(t, repo, "Veste en jean", 15000, 5, nil)
	createProduct(t, repo, "Robe d'été", 12000, 3, func(p *models.Product) {
		p.Category = "robes"
		sale := models.NewMoneyFromInt(8000)
		p.OnSale = true
		p.SalePrice = &sale
		p.Featured = true
	})
	createProduct(t, repo, "Chemise blanche", 9000, 0, func(p *models.Product) {
		p.Category = "chemises"
	})

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, Category: "ROBES"})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Name != "Robe d'été" {
		t.Fatalf("category filter mismatch: total=%d products=%+v", total, products)
	}

	onSale := true
	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, OnSale: &onSale})
	if err != nil {
		t.Fatalf("list on sale failed: %v", err)
	}
	if total != 1 || products[0].Name != "Robe d'été" {
		t.Fatalf("on sale filter mismatch: total=%d", total)
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, InStockOnly: true})
	if err != nil {
		t.Fatalf("list in stock failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("in stock filter want 2 got %d", total)
	}
	for _, p := range products {
		if p.Stock <= 0 {
			t.Fatalf("out of stock product leaked: %+v", p)
		}
	}

	products, _, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "chemise"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Chemise blanche" {
		t.Fatalf("search filter mismatch: %+v", products)
	}
}

func TestProductListFeatured(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTest(t))
	createProduct(t, repo, "Veste en jean", 15000, 5, nil)
	createProduct(t, repo, "Robe d'été", 12000, 3, func(p *models.Product) { p.Featured = true })
	createProduct(t, repo, "Chemise blanche", 9000, 2, func(p *models.Product) { p.Featured = true })

	products, err := repo.ListFeatured(1)
	if err != nil {
		t.Fatalf("list featured failed: %v", err)
	}
	if len(products) != 1 || !products[0].Featured {
		t.Fatalf("featured limit mismatch: %+v", products)
	}

	products, err = repo.ListFeatured(0)
	if err != nil {
		t.Fatalf("list featured unlimited failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("featured want 2 got %d", len(products))
	}
}

func TestDecrementStockGuardsAgainstOversell(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)
	product := createProduct(t, repo, "Pantalon chino", 11000, 3, nil)

	affected, err := repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement over available failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("oversell decrement affected want 0 got %d", affected)
	}

	var got models.Product
	if err := db.Where("id = ?", product.ID).First(&got).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 1 {
		t.Fatalf("stock want 1 got %d", got.Stock)
	}

	if _, err := repo.DecrementStock(product.ID, 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
	if _, err := repo.DecrementStock("", 1); err == nil {
		t.Fatalf("expected error for empty product id")
	}
}

func TestOrderCreateAndGetWithItems(t *testing.T) {
	db := setupRepositoryTest(t)
	productRepo := NewProductRepository(db)
	orderRepo := NewOrderRepository(db)
	product := createProduct(t, productRepo, "Veste en jean", 15000, 5, nil)

	order := &models.Order{
		Status:         "pending",
		Currency:       "XAF",
		TotalAmount:    models.NewMoneyFromInt(31000),
		ShippingAmount: models.NewMoneyFromInt(1000),
		PaymentStatus:  "pending",
		CustomerName:   "Awa Ndiaye",
		CustomerEmail:  "awa@example.com",
		Items: []models.OrderItem{
			{
				ProductID:   product.ID,
				ProductName: product.Name,
				Size:        "M",
				Color:       "Noir",
				UnitPrice:   product.Price,
				Quantity:    2,
			},
		},
	}
	if err := orderRepo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ID == "" {
		t.Fatalf("expected generated order id")
	}

	got, err := orderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got == nil || len(got.Items) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	item := got.Items[0]
	if item.ProductName != "Veste en jean" || item.Quantity != 2 {
		t.Fatalf("unexpected order item: %+v", item)
	}
	if item.Product == nil || item.Product.ID != product.ID {
		t.Fatalf("expected preloaded product on order item")
	}
	if !item.TotalPrice().Equal(models.NewMoneyFromInt(30000).Decimal) {
		t.Fatalf("item total want 30000 got %s", item.TotalPrice())
	}
}

func TestOrderListFiltersByEmailAndStatus(t *testing.T) {
	db := setupRepositoryTest(t)
	orderRepo := NewOrderRepository(db)

	for i, email := range []string{"awa@example.com", "awa@example.com", "marc@example.com"} {
		order := &models.Order{
			Status:        "pending",
			Currency:      "XAF",
			TotalAmount:   models.NewMoneyFromInt(int64(1000 * (i + 1))),
			PaymentStatus: "pending",
			CustomerName:  "Client",
			CustomerEmail: email,
		}
		if err := orderRepo.Create(order); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		if i == 0 {
			if err := orderRepo.UpdateStatus(order.ID, "confirmed"); err != nil {
				t.Fatalf("update status failed: %v", err)
			}
		}
	}

	_, total, err := orderRepo.List(OrderListFilter{Page: 1, PageSize: 10, CustomerEmail: "AWA@example.com"})
	if err != nil {
		t.Fatalf("list by email failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("email filter want 2 got %d", total)
	}

	orders, total, err := orderRepo.List(OrderListFilter{Page: 1, PageSize: 10, Status: "confirmed"})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || orders[0].Status != "confirmed" {
		t.Fatalf("status filter mismatch: total=%d", total)
	}
}
