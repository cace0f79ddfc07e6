package public

import (
	"strings"

	"github.com/boutique-next/internal/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultCartCookieName = "bq_session"

// sessionID 读取会话 Cookie，缺失时签发一个新的匿名会话。
// 购物车按会话隔离，游客无需登录。
func (h *Handler) sessionID(c *gin.Context) string {
	name := strings.TrimSpace(h.Config.Cart.CookieName)
	if name == "" {
		name = defaultCartCookieName
	}
	if value, err := c.Cookie(name); err == nil {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	id := uuid.NewString()
	maxAge := h.Config.Cart.TTLHours * 3600
	if maxAge <= 0 {
		maxAge = 30 * 24 * 3600
	}
	c.SetCookie(name, id, maxAge, "/", "", false, true)
	return id
}

// sessionCart 获取当前会话的购物车
func (h *Handler) sessionCart(c *gin.Context) *cart.Store {
	return h.CartManager.Get(h.sessionID(c))
}
