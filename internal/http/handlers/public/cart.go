package public

import (
	"errors"
	"strings"

	"github.com/boutique-next/internal/cart"
	"github.com/boutique-next/internal/http/response"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest 修改行数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartDrawerRequest 抽屉操作请求
type CartDrawerRequest struct {
	Action string `json:"action" binding:"required"` // toggle / open / close
}

// GetCart 获取当前会话的购物车
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, h.sessionCart(c).State())
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "requête invalide")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.ProductService.GetByID(strings.TrimSpace(req.ProductID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "produit introuvable")
			return
		}
		logger.Errorw("public_add_cart_item_failed", "product_id", req.ProductID, "error", err)
		response.Internal(c, "échec de l'ajout au panier")
		return
	}

	store := h.sessionCart(c)
	item, err := store.Add(product, req.Size, req.Color, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrVariantRequired):
			response.BadRequest(c, "taille et couleur obligatoires")
		case errors.Is(err, cart.ErrInvalidQuantity):
			response.BadRequest(c, "quantité invalide")
		default:
			response.BadRequest(c, "requête invalide")
		}
		return
	}

	response.Success(c, gin.H{
		"item":  item,
		"state": store.State(),
	})
}

// UpdateCartItem 修改行数量；数量小于等于 0 时等价于删除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "requête invalide")
		return
	}
	store := h.sessionCart(c)
	store.UpdateQuantity(c.Param("id"), req.Quantity)
	response.Success(c, store.State())
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	store := h.sessionCart(c)
	store.Remove(c.Param("id"))
	response.Success(c, store.State())
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	store := h.sessionCart(c)
	store.Clear()
	response.Success(c, store.State())
}

// CartDrawer 操作购物车抽屉显示状态
func (h *Handler) CartDrawer(c *gin.Context) {
	var req CartDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "requête invalide")
		return
	}
	store := h.sessionCart(c)
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "toggle":
		store.Toggle()
	case "open":
		store.Open()
	case "close":
		store.Close()
	default:
		response.BadRequest(c, "action inconnue")
		return
	}
	response.Success(c, store.State())
}
