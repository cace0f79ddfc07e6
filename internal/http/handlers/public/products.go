package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/boutique-next/internal/catalog"
	"github.com/boutique-next/internal/constants"
	"github.com/boutique-next/internal/http/response"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/models"
	"github.com/boutique-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListProducts 商品目录。
// 过滤与排序参数全部来自查询串，未给出的维度不限制。
func (h *Handler) ListProducts(c *gin.Context) {
	filters := catalog.FilterOptions{
		Categories: splitQueryList(c.Query("categories")),
		Sizes:      splitQueryList(c.Query("sizes")),
		Colors:     splitQueryList(c.Query("colors")),
		Brands:     splitQueryList(c.Query("brands")),
		OnSale:     parseBoolQuery(c.Query("on_sale")),
	}
	var ok bool
	if filters.PriceMin, ok = parseMoneyQuery(c.Query("price_min")); !ok {
		response.BadRequest(c, "price_min invalide")
		return
	}
	if filters.PriceMax, ok = parseMoneyQuery(c.Query("price_max")); !ok {
		response.BadRequest(c, "price_max invalide")
		return
	}

	sortKey := strings.TrimSpace(c.Query("sort"))
	if sortKey == "" {
		sortKey = constants.SortNewest
	}

	products, maxPrice, err := h.ProductService.CatalogView(c.Request.Context(), c.Query("search"), filters, sortKey)
	if err != nil {
		logger.Errorw("public_list_products_failed", "error", err)
		response.Internal(c, "échec du chargement du catalogue")
		return
	}

	response.Success(c, gin.H{
		"products":  products,
		"total":     len(products),
		"max_price": maxPrice,
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "produit introuvable")
			return
		}
		logger.Errorw("public_get_product_failed", "product_id", c.Param("id"), "error", err)
		response.Internal(c, "échec du chargement du produit")
		return
	}
	response.Success(c, product)
}

// ListFeaturedProducts 首页精选商品
func (h *Handler) ListFeaturedProducts(c *gin.Context) {
	limit := 8
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	products, err := h.ProductService.ListFeatured(limit)
	if err != nil {
		logger.Errorw("public_list_featured_failed", "error", err)
		response.Internal(c, "échec du chargement des produits")
		return
	}
	response.Success(c, gin.H{"products": products})
}

func splitQueryList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func parseBoolQuery(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}

func parseMoneyQuery(raw string) (models.Money, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Money{}, true
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return models.Money{}, false
	}
	return models.NewMoneyFromDecimal(amount), true
}
