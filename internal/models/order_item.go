package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`                     // 主键（UUID）
	OrderID     string         `gorm:"type:varchar(36);index;not null" json:"order_id"`           // 订单ID
	ProductID   string         `gorm:"type:varchar(36);index;not null" json:"product_id"`         // 商品ID
	ProductName string         `gorm:"type:varchar(200);not null" json:"product_name"`            // 商品名称快照
	Size        string         `gorm:"type:varchar(50);not null" json:"size"`                     // 尺码
	Color       string         `gorm:"type:varchar(50);not null" json:"color"`                    // 颜色
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 成交单价
	Quantity    int            `gorm:"not null" json:"quantity"`                                  // 数量
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate 创建前补齐 UUID 主键
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TotalPrice 订单项小计
func (i OrderItem) TotalPrice() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}
