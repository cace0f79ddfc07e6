package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`                // 主键（UUID）
	Name        string         `gorm:"type:varchar(200);not null;index" json:"name"`         // 商品名称
	Description string         `gorm:"type:text" json:"description"`                         // 商品描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`   // 原价
	OnSale      bool           `gorm:"default:false;index" json:"on_sale"`                   // 是否打折
	SalePrice   *Money         `gorm:"type:decimal(20,2)" json:"sale_price,omitempty"`       // 促销价（可空）
	Images      StringArray    `gorm:"type:json" json:"images"`                              // 图片数组
	Category    string         `gorm:"type:varchar(100);index" json:"category"`              // 分类标签
	Sizes       StringArray    `gorm:"type:json" json:"sizes"`                               // 尺码数组
	Colors      StringArray    `gorm:"type:json" json:"colors"`                              // 颜色数组
	Stock       int            `gorm:"not null;default:0" json:"stock"`                      // 库存
	Featured    bool           `gorm:"default:false;index" json:"featured"`                  // 是否推荐
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 创建前补齐 UUID 主键
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EffectivePrice 生效单价：打折且促销价存在（非零）时取促销价，否则取原价。
// 促销价为 0 视为未设置，与前端展示口径一致。
func (p *Product) EffectivePrice() Money {
	if p == nil {
		return Money{}
	}
	if p.OnSale && p.SalePrice != nil && !p.SalePrice.IsZero() {
		return *p.SalePrice
	}
	return p.Price
}
