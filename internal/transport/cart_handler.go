package transport

import (
	"errors"
	"net/http"

	"bakehouse/internal/domain"
	"bakehouse/internal/middleware"
	"bakehouse/internal/repository"
	"bakehouse/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload. Selections maps an
// option-group name to the chosen option name.
type AddItemRequest struct {
	ProductID  int64             `json:"product_id" validate:"required"`
	Selections map[string]string `json:"selections"`
	Quantity   int               `json:"quantity"`
}

// UpdateQuantityRequest represents the quantity change payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse represents one cart line
type CartItemResponse struct {
	ID         string            `json:"id"`
	ProductID  int64             `json:"product_id"`
	Name       string            `json:"name"`
	Selections map[string]string `json:"selections,omitempty"`
	Quantity   int               `json:"quantity"`
	UnitPrice  float64           `json:"unit_price"`
	LineTotal  float64           `json:"line_total"`
}

// CartResponse represents the whole cart with its running subtotal
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal float64            `json:"subtotal"`
}

func cartResponseOf(cart *domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		line := &cart.Items[i]
		items = append(items, CartItemResponse{
			ID:         line.ID,
			ProductID:  line.Product.ID,
			Name:       line.Product.Name,
			Selections: line.Selections,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			LineTotal:  line.LineTotal(),
		})
	}
	return CartResponse{Items: items, Subtotal: cart.Subtotal()}
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers cart routes, all behind the auth guard
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{itemID}", h.UpdateQuantity)
		r.Delete("/items/{itemID}", h.RemoveItem)
	})
}

// GetCart returns the current user's cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cartResponseOf(cart))
}

// AddItem adds a product with finalized selections to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cartService.AddItem(r.Context(), userID, req.ProductID, req.Selections, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		if errors.Is(err, service.ErrUnknownOptionGroup) ||
			errors.Is(err, service.ErrUnknownOption) ||
			errors.Is(err, service.ErrMissingSelection) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to add cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add cart item")
		return
	}

	h.logger.Info("Cart item added",
		zap.Int64("user_id", userID),
		zap.String("item_id", item.ID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CartItemResponse{
		ID:         item.ID,
		ProductID:  item.Product.ID,
		Name:       item.Product.Name,
		Selections: item.Selections,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		LineTotal:  item.LineTotal(),
	})
}

// UpdateQuantity changes a line's quantity; requests below 1 are floored
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := h.cartService.UpdateQuantity(r.Context(), userID, itemID, req.Quantity); err != nil {
		h.logger.Error("Failed to update quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update quantity")
		return
	}

	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cartResponseOf(cart))
}

// RemoveItem drops a cart line; unknown ids succeed unchanged
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := h.cartService.RemoveItem(r.Context(), userID, itemID); err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cartResponseOf(cart))
}

// ClearCart empties the cart unconditionally
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{Items: []CartItemResponse{}})
}
