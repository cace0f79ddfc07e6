package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             string         `gorm:"type:varchar(36);primarykey" json:"id"`                      // 主键（UUID）
	Status         string         `gorm:"type:varchar(20);index;not null" json:"status"`              // 订单状态
	Currency       string         `gorm:"type:varchar(10);not null" json:"currency"`                  // 币种
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 实付金额（含运费）
	ShippingAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"` // 运费
	TaxAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`    // 税费
	PaymentStatus  string         `gorm:"type:varchar(20);not null" json:"payment_status"`            // 支付状态
	PaymentMethod  string         `gorm:"type:varchar(50)" json:"payment_method"`                     // 支付方式
	CustomerName   string         `gorm:"type:varchar(200);not null" json:"customer_name"`            // 客户姓名
	CustomerEmail  string         `gorm:"type:varchar(200);not null;index" json:"customer_email"`     // 客户邮箱
	CustomerPhone  string         `gorm:"type:varchar(50);not null" json:"customer_phone"`            // 客户电话
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                // 下单客户端IP
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 创建前补齐 UUID 主键
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
