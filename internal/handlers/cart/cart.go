package carthandler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"koistore/internal/consignment"
	"koistore/internal/handlers/response"
	"koistore/internal/models"
	cartservice "koistore/internal/service/cart"
	"koistore/pkg/lib/urlparser"
)

type CartService interface {
	Summary(ctx context.Context, sessionId string) (cartservice.View, error)
	AddToCart(ctx context.Context, sessionId string, fish models.KoiFish) (models.Cart, error)
	RemoveFromCart(ctx context.Context, sessionId string, fishId int) (models.Cart, error)
	UpdateCartItemQuantity(ctx context.Context, sessionId string, fishId, quantity int) (models.Cart, error)
	UpdateCartItemConsignment(ctx context.Context, sessionId string, fishId int, consign bool, cfg *models.ConsignmentConfig) (models.Cart, error)
	PatchConsignment(ctx context.Context, sessionId string, fishId int, p consignment.Patch) (models.Cart, error)
	ClearCart(ctx context.Context, sessionId string) error
	Checkout(ctx context.Context, sessionId, shippingAddress, note string) (models.Order, error)
}

type FishCatalog interface {
	GetFish(ctx context.Context, id int) (models.KoiFish, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, sessionId string) (context.Context, error)
}

type AddItemRequest struct {
	FishId int `json:"fishId" validate:"required,gt=0"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type ConsignmentRequest struct {
	Consign *bool                     `json:"consign" validate:"required"`
	Config  *models.ConsignmentConfig `json:"config,omitempty"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"required,max=500"`
	Note            string `json:"note" validate:"max=1000"`
}

type Handler struct {
	log     *slog.Logger
	service CartService
	catalog FishCatalog
	auth    Authorizer
}

func New(log *slog.Logger, service CartService, catalog FishCatalog, auth Authorizer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		catalog: catalog,
		auth:    auth,
	}
}

// GET /sessions/{sid}/cart
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ViewCart"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	view, err := h.service.Summary(r.Context(), sid)
	if err != nil {
		response.Error(w, log, err, "Failed to load cart")
		return
	}
	response.OK(w, log, view)
}

// POST /sessions/{sid}/cart/items
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddToCart"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var req AddItemRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	fish, err := h.catalog.GetFish(r.Context(), req.FishId)
	if err != nil {
		response.Error(w, log, fmt.Errorf("%s: %w", op, err), "Failed to load fish")
		return
	}

	cart, err := h.service.AddToCart(r.Context(), sid, fish)
	if err != nil {
		response.Error(w, log, err, "Failed to add to cart")
		return
	}
	response.JSON(w, log, http.StatusCreated, cart)
}

// DELETE /sessions/{sid}/cart/items/{fishId}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.RemoveFromCart"
	log := h.log.With("op", op)

	sid, fishId, err := itemParams(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	cart, err := h.service.RemoveFromCart(r.Context(), sid, fishId)
	if err != nil {
		response.Error(w, log, err, "Failed to remove from cart")
		return
	}
	response.OK(w, log, cart)
}

// PUT /sessions/{sid}/cart/items/{fishId}/quantity
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.UpdateQuantity"
	log := h.log.With("op", op)

	sid, fishId, err := itemParams(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var req QuantityRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	cart, err := h.service.UpdateCartItemQuantity(r.Context(), sid, fishId, req.Quantity)
	if err != nil {
		response.Error(w, log, err, "Failed to update quantity")
		return
	}
	response.OK(w, log, cart)
}

// PUT /sessions/{sid}/cart/items/{fishId}/consignment
func (h *Handler) SetConsignment(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.SetConsignment"
	log := h.log.With("op", op)

	sid, fishId, err := itemParams(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var req ConsignmentRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	cart, err := h.service.UpdateCartItemConsignment(r.Context(), sid, fishId, *req.Consign, req.Config)
	if err != nil {
		response.Error(w, log, err, "Failed to update consignment")
		return
	}
	response.OK(w, log, cart)
}

// PATCH /sessions/{sid}/cart/items/{fishId}/consignment
func (h *Handler) PatchConsignment(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.PatchConsignment"
	log := h.log.With("op", op)

	sid, fishId, err := itemParams(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var patch consignment.Patch
	if err := response.Decode(r, &patch); err != nil {
		response.Error(w, log, err, "")
		return
	}
	if patch.Empty() {
		response.Error(w, log, fmt.Errorf("%w: nothing to change", response.ErrBadRequest), "")
		return
	}

	cart, err := h.service.PatchConsignment(r.Context(), sid, fishId, patch)
	if err != nil {
		response.Error(w, log, err, "Failed to update consignment")
		return
	}
	response.OK(w, log, cart)
}

// DELETE /sessions/{sid}/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ClearCart"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	if err := h.service.ClearCart(r.Context(), sid); err != nil {
		response.Error(w, log, err, "Failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{sid}/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.Checkout"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var req CheckoutRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, err := h.auth.Authorize(r.Context(), sid)
	if err != nil {
		response.Error(w, log, err, "Failed to authorize")
		return
	}

	order, err := h.service.Checkout(ctx, sid, req.ShippingAddress, req.Note)
	if err != nil {
		response.Error(w, log, err, "Failed to place order")
		return
	}
	response.JSON(w, log, http.StatusCreated, order)
}

func itemParams(r *http.Request) (string, int, error) {
	sid, err := urlparser.SessionID(r)
	if err != nil {
		return "", 0, err
	}
	fishId, err := urlparser.Int(r, "fishId")
	if err != nil {
		return "", 0, err
	}
	return sid, fishId, nil
}
