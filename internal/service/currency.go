package service

import (
	"github.com/boutique-next/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frenchPrinter = message.NewPrinter(language.French)

// FormatXAF 按法语千位分组格式化中非法郎金额，如 "15 000 FCFA"。
// XAF 没有辅币单位，金额四舍五入到整数。
func FormatXAF(amount models.Money) string {
	return frenchPrinter.Sprintf("%d FCFA", amount.Round(0).IntPart())
}
