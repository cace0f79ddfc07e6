package service

import "errors"

// 业务哨兵错误，handler 通过 errors.Is 映射为响应码
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInvalidOrderItem    = errors.New("invalid order item")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidCustomerInfo = errors.New("invalid customer info")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
