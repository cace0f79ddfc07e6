package public

import (
	"errors"

	"github.com/boutique-next/internal/http/response"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// Checkout 提交订单。
// 订单行取自当前会话购物车；下单成功后购物车才会被清空。
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "veuillez remplir tous les champs")
		return
	}

	store := h.sessionCart(c)
	state := store.State()

	order, err := h.CheckoutService.Checkout(c.Request.Context(), service.CheckoutInput{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		ClientIP:      c.ClientIP(),
		Items:         state.Items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			response.BadRequest(c, "votre panier est vide")
		case errors.Is(err, service.ErrInvalidCustomerInfo):
			response.BadRequest(c, "veuillez remplir tous les champs")
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, "adresse email invalide")
		case errors.Is(err, service.ErrInvalidOrderItem):
			response.BadRequest(c, "article du panier invalide")
		case errors.Is(err, service.ErrProductNotFound):
			response.NotFound(c, "produit introuvable")
		case errors.Is(err, service.ErrInsufficientStock):
			response.Error(c, response.CodeConflict, "stock insuffisant")
		default:
			logger.Errorw("public_checkout_failed", "error", err)
			response.Internal(c, "une erreur s'est produite, veuillez réessayer")
		}
		return
	}

	store.Clear()
	response.SuccessWithMsg(c, "commande confirmée", order)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.CheckoutService.GetOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "commande introuvable")
			return
		}
		logger.Errorw("public_get_order_failed", "order_id", c.Param("id"), "error", err)
		response.Internal(c, "échec du chargement de la commande")
		return
	}
	response.Success(c, order)
}
