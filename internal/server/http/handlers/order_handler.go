package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Place handles POST /api/place-order.
func (h *OrderHandler) Place(c *gin.Context) {
	screenshot, release, err := formUpload(c, "screenshot")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer release()

	form := model.OrderForm{
		FullName:      c.PostForm("fullName"),
		Email:         c.PostForm("email"),
		Phone:         c.PostForm("phone"),
		Address:       c.PostForm("address"),
		Landmark:      c.PostForm("landmark"),
		City:          c.PostForm("city"),
		Pincode:       c.PostForm("pincode"),
		PaymentMethod: c.PostForm("paymentMethod"),
		Cart:          c.PostForm("cart"),
		Total:         c.PostForm("total"),
		Screenshot:    screenshot,
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), form)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		Success: true,
		Message: "Order placed successfully",
		OrderID: order.ID,
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.NewOrderResponse(o))
	}

	c.JSON(http.StatusOK, dto.OrdersEnvelope{Success: true, Orders: response})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: dto.NewOrderResponse(*order)})
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: dto.NewOrderResponse(*order)})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Order deleted"))
}
