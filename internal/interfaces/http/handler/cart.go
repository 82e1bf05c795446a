package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/application/cart"
	"github.com/monaco/tienda/internal/domain/shared"
	domain "github.com/monaco/tienda/internal/domain/trade"
	"github.com/monaco/tienda/internal/infrastructure/config"
)

// cartCookieMaxAge keeps the session cookie for 30 days; the slot itself
// expires on the storage TTL.
const cartCookieMaxAge = 30 * 24 * 60 * 60

// CartHandler serves the server-side cart keyed by a session cookie
type CartHandler struct {
	BaseHandler
	cartService *cart.CartService
	cookieName  string
	cookie      config.CookieConfig
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cart.CartService, cookieName string, cookie config.CookieConfig) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		cookieName:  cookieName,
		cookie:      cookie,
	}
}

// Get handles GET /carrito
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.cartService.Get(c.Request.Context(), h.session(c))
	h.respond(c, resp, err)
}

// AddItem handles POST /carrito/items with {producto_id}
func (h *CartHandler) AddItem(c *gin.Context) {
	productID, err := uuid.Parse(body(c).String("producto_id"))
	if err != nil {
		h.HandleError(c, shared.NewValidationError(MsgInvalidID))
		return
	}

	resp, err := h.cartService.AddProduct(c.Request.Context(), h.session(c), productID)
	h.respond(c, resp, err)
}

// SetQuantity handles PUT /carrito/items/:id with {cantidad}
func (h *CartHandler) SetQuantity(c *gin.Context) {
	qty := body(c).Int("cantidad", 1)
	resp, err := h.cartService.SetQuantity(c.Request.Context(), h.session(c), c.Param("id"), qty)
	h.respond(c, resp, err)
}

// RemoveItem handles DELETE /carrito/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	resp, err := h.cartService.Remove(c.Request.Context(), h.session(c), c.Param("id"))
	h.respond(c, resp, err)
}

// Clear handles DELETE /carrito
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.cartService.Clear(c.Request.Context(), h.session(c))
	h.respond(c, resp, err)
}

// Checkout handles POST /carrito/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	b := body(c)
	req := cart.CheckoutRequest{
		CustomerName:  b.String("nombre_cliente"),
		Phone:         b.String("telefono"),
		Address:       b.String("direccion"),
		PaymentMethod: b.StringOr("metodo_pago", string(domain.DefaultPaymentMethod)),
	}

	result, err := h.cartService.Checkout(c.Request.Context(), h.session(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *CartHandler) respond(c *gin.Context, resp *cart.CartResponse, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// session returns the cart id from the cookie, issuing a new one when the
// cookie is missing or malformed
func (h *CartHandler) session(c *gin.Context) string {
	if value, err := c.Cookie(h.cookieName); err == nil {
		if _, err := uuid.Parse(value); err == nil {
			return value
		}
	}

	id := uuid.NewString()
	setCookie(c, h.cookie, h.cookieName, id, cartCookieMaxAge)
	return id
}
