package transport

import (
	"errors"
	"net/http"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/middleware"
	"bakehouse/internal/notify"
	"bakehouse/internal/repository"
	"bakehouse/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout payload. DeliveryAt is RFC 3339.
type CheckoutRequest struct {
	Name       string    `json:"name" validate:"required"`
	Phone      string    `json:"phone" validate:"required"`
	Address    string    `json:"address" validate:"required"`
	DeliveryAt time.Time `json:"delivery_at" validate:"required"`
}

// UpdateStatusRequest represents the admin status change payload
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse represents a placed order together with the payment
// hand-off links
type OrderResponse struct {
	Order        *domain.Order `json:"order"`
	WhatsAppLink string        `json:"whatsapp_link,omitempty"`
	PaymentQRURL string        `json:"payment_qr_url,omitempty"`
}

// OrderHandler handles HTTP requests for checkout and order management
type OrderHandler struct {
	orderService service.OrderService
	handoff      *notify.Builder
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, handoff *notify.Builder, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		handoff:      handoff,
		logger:       logger,
	}
}

// RegisterRoutes registers order routes. Checkout and own-order views sit
// behind the auth guard; order management behind the admin guard.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Checkout)
		r.Get("/", h.ListOwnOrders)
		r.Get("/latest", h.LatestOrder)
		r.Get("/{id}", h.GetOrder)
	})

	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.ListAllOrders)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
}

func (h *OrderHandler) respondWithOrder(w http.ResponseWriter, statusCode int, order *domain.Order) {
	middleware.RespondWithJSON(w, statusCode, OrderResponse{
		Order:        order,
		WhatsAppLink: h.handoff.WhatsAppLink(order),
		PaymentQRURL: h.handoff.PaymentQRURL(order),
	})
}

// Checkout places an order from the current user's cart
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer := domain.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}

	order, err := h.orderService.Checkout(r.Context(), userID, customer, req.DeliveryAt)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) ||
			errors.Is(err, service.ErrDeliveryTooSoon) ||
			errors.Is(err, service.ErrMissingCustomerInfo) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Float64("total", order.Total),
	)
	h.respondWithOrder(w, http.StatusCreated, order)
}

// ListOwnOrders returns the current user's orders
func (h *OrderHandler) ListOwnOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.orderService.ListUserOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// LatestOrder returns the user's most recent order; the confirmation view
// falls back to it when no id is supplied
func (h *OrderHandler) LatestOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.orderService.LatestOrder(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "no orders yet")
			return
		}
		h.logger.Error("Failed to get latest order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get latest order")
		return
	}

	h.respondWithOrder(w, http.StatusOK, order)
}

// GetOrder returns one order; customers see only their own, admins any
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	role, _ := middleware.GetUserRole(r.Context())
	if order.UserID != userID && role != domain.RoleAdmin {
		middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		return
	}

	h.respondWithOrder(w, http.StatusOK, order)
}

// ListAllOrders returns every order for the admin panel
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllOrders(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateStatus replaces an order's status subject to the transition policy
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID := chi.URLParam(r, "id")
	if err := h.orderService.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) || errors.Is(err, service.ErrIllegalTransition) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to update order status", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order status")
		return
	}

	h.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", req.Status),
	)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}
