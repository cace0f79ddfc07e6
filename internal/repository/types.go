package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	Category     string
	Search       string
	OnSale       *bool
	FeaturedOnly bool
	InStockOnly  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	Status        string
	CustomerEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}
