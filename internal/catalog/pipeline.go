package catalog

import (
	"sort"
	"strings"

	"github.com/boutique-next/internal/constants"
	"github.com/boutique-next/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterOptions 目录过滤条件。
// 空集合/零值维度不限制；PriceMax 为零视为未设置价格上限。
type FilterOptions struct {
	Categories []string     `json:"categories"`
	Sizes      []string     `json:"sizes"`
	Colors     []string     `json:"colors"`
	Brands     []string     `json:"brands"` // 商品暂无品牌属性，保留字段兼容前端
	PriceMin   models.Money `json:"price_min"`
	PriceMax   models.Money `json:"price_max"`
	OnSale     bool         `json:"on_sale"` // true 时只保留打折商品
}

// View 对商品集合执行过滤 + 稳定排序，返回新的切片。
// 所有谓词按 AND 组合；空目录返回空结果而不是错误。
func View(products []models.Product, search string, filters FilterOptions, sortKey string) []models.Product {
	result := make([]models.Product, 0, len(products))
	search = strings.ToLower(strings.TrimSpace(search))
	categories := lowerSet(filters.Categories)

	for idx := range products {
		p := &products[idx]
		if !matchesSearch(p, search) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[strings.ToLower(p.Category)]; !ok {
				continue
			}
		}
		if len(filters.Sizes) > 0 && !anyOverlap(filters.Sizes, p.Sizes) {
			continue
		}
		if len(filters.Colors) > 0 && !anyOverlap(filters.Colors, p.Colors) {
			continue
		}
		if !matchesPriceRange(p, filters) {
			continue
		}
		if filters.OnSale && !p.OnSale {
			continue
		}
		result = append(result, *p)
	}

	sortProducts(result, sortKey)
	return result
}

// MaxPrice 目录内最大生效价格向上取整；空目录返回兜底值
func MaxPrice(products []models.Product) models.Money {
	if len(products) == 0 {
		return models.NewMoneyFromInt(constants.DefaultMaxPrice)
	}
	max := products[0].EffectivePrice()
	for idx := range products[1:] {
		price := products[idx+1].EffectivePrice()
		if price.GreaterThan(max.Decimal) {
			max = price
		}
	}
	return models.NewMoneyFromDecimal(max.Ceil())
}

func matchesSearch(p *models.Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func matchesPriceRange(p *models.Product, filters FilterOptions) bool {
	price := p.EffectivePrice()
	if price.LessThan(filters.PriceMin.Decimal) {
		return false
	}
	if !filters.PriceMax.IsZero() && price.GreaterThan(filters.PriceMax.Decimal) {
		return false
	}
	return true
}

// sortProducts 稳定排序，等键商品保持过滤前的相对顺序
func sortProducts(products []models.Product, sortKey string) {
	switch sortKey {
	case constants.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().LessThan(products[j].EffectivePrice().Decimal)
		})
	case constants.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().GreaterThan(products[j].EffectivePrice().Decimal)
		})
	case constants.SortName:
		// 店面是法语界面，按法语排序规则比较名称
		collator := collate.New(language.French)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	case constants.SortNewest:
		fallthrough
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}

func anyOverlap(wanted []string, available models.StringArray) bool {
	for _, value := range wanted {
		if available.Contains(value) {
			return true
		}
	}
	return false
}
