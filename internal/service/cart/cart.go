package cartservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/checkout"
	"koistore/internal/consignment"
	databaseerrors "koistore/internal/database"
	"koistore/internal/models"
	"koistore/internal/pricing"
	serviceerrors "koistore/internal/service"
	"koistore/pkg/lib/logger/sl"

	"github.com/sethvargo/go-retry"
)

type SessionStorage interface {
	GetEntry(ctx context.Context, sessionId, key string) (models.SessionEntry, error)
	PutEntry(ctx context.Context, sessionId, key string, value []byte, expectedRevision int64) (int64, error)
}

type DietSource interface {
	ListDiets(ctx context.Context, q *odata.Query) (backend.Page[models.Diet], error)
}

type OrderSubmitter interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (models.Order, error)
}

type ChangeNotifier interface {
	CartChanged(ctx context.Context, cart models.Cart) error
	OrderSubmitted(ctx context.Context, sessionId string, order models.Order, fishCount int) error
}

// RetryPolicy bounds how often a cart write is retried after losing a race
// with another writer of the same session.
type RetryPolicy struct {
	Attempts uint64
	Backoff  time.Duration
}

var ErrInvalidQuantity = fmt.Errorf("quantity must be at least 1: %w", serviceerrors.ErrInvalidArgument)

// View is a cart together with its price breakdown and the items that
// would currently block checkout.
type View struct {
	Cart    models.Cart            `json:"cart"`
	Summary pricing.Summary        `json:"summary"`
	Invalid []checkout.InvalidItem `json:"invalid,omitempty"`
}

type CartApiService struct {
	log      *slog.Logger
	storage  SessionStorage
	diets    DietSource
	orders   OrderSubmitter
	notifier ChangeNotifier
	retry    RetryPolicy
}

func New(log *slog.Logger, storage SessionStorage, diets DietSource, orders OrderSubmitter, notifier ChangeNotifier, policy RetryPolicy) *CartApiService {
	return &CartApiService{
		log:      log,
		storage:  storage,
		diets:    diets,
		orders:   orders,
		notifier: notifier,
		retry:    policy,
	}
}

// read decodes the stored cart. A missing or unreadable value is an empty
// cart; the revision is kept so the next write replaces it.
func (c *CartApiService) read(ctx context.Context, log *slog.Logger, sessionId string) (models.Cart, error) {
	entry, err := c.storage.GetEntry(ctx, sessionId, models.KeyCart)
	if err != nil {
		return models.Cart{}, err
	}

	cart := models.Cart{SessionId: sessionId, Items: []models.CartItem{}, Revision: entry.Revision}
	if len(entry.Value) == 0 {
		return cart, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal(entry.Value, &items); err != nil {
		log.Warn("stored cart is malformed, treating as empty", sl.Err(err))
		return cart, nil
	}
	if items != nil {
		cart.Items = items
	}
	return cart, nil
}

// mutate runs a read-modify-write of the cart and retries it when another
// writer bumped the revision in between.
func (c *CartApiService) mutate(ctx context.Context, log *slog.Logger, sessionId string, fn func(*models.Cart) error) (models.Cart, error) {
	var out models.Cart

	backoff := retry.WithMaxRetries(c.retry.Attempts, retry.NewConstant(c.retry.Backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		cart, err := c.read(ctx, log, sessionId)
		if err != nil {
			return err
		}
		if err := fn(&cart); err != nil {
			return err
		}

		body, err := json.Marshal(cart.Items)
		if err != nil {
			return err
		}

		rev, err := c.storage.PutEntry(ctx, sessionId, models.KeyCart, body, cart.Revision)
		if err != nil {
			if errors.Is(err, databaseerrors.ErrConflict) {
				log.Debug("cart changed concurrently, retrying")
				return retry.RetryableError(err)
			}
			return err
		}

		cart.Revision = rev
		out = cart
		return nil
	})
	if err != nil {
		return models.Cart{}, err
	}

	if err := c.notifier.CartChanged(ctx, out); err != nil {
		log.Warn("failed to publish cart change", sl.Err(err))
	}
	return out, nil
}

func (c *CartApiService) fail(log *slog.Logger, op string, err error, msg string) error {
	wrapped := serviceerrors.Wrap(op, err)
	switch {
	case errors.Is(wrapped, serviceerrors.ErrContextCanceled):
		log.Warn("context canceled", sl.Err(err))
	case errors.Is(wrapped, serviceerrors.ErrDeadlineExceeded):
		log.Warn("deadline exceeded", sl.Err(err))
	case errors.Is(wrapped, serviceerrors.ErrNotFound),
		errors.Is(wrapped, serviceerrors.ErrInvalidArgument),
		errors.Is(wrapped, serviceerrors.ErrConflict):
		log.Warn(msg, sl.Err(err))
	default:
		log.Error(msg, sl.Err(err))
	}
	return wrapped
}

func itemNotFound(fishId int) error {
	return fmt.Errorf("fish %d is not in the cart: %w", fishId, serviceerrors.ErrNotFound)
}

func (c *CartApiService) GetCart(ctx context.Context, sessionId string) (models.Cart, error) {
	const op = "service.cart.GetCart"
	log := c.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Cart{}, err
	}

	cart, err := c.read(ctx, log, sessionId)
	if err != nil {
		return models.Cart{}, c.fail(log, op, err, "failed to read cart")
	}
	return cart, nil
}

// AddToCart puts fish in the cart, or bumps its quantity if already there.
func (c *CartApiService) AddToCart(ctx context.Context, sessionId string, fish models.KoiFish) (models.Cart, error) {
	const op = "service.cart.AddToCart"
	log := c.log.With("op", op, "session", sessionId, "fish", fish.Id)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Cart{}, err
	}

	cart, err := c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		if i := cart.Find(fish.Id); i >= 0 {
			cart.Items[i].Quantity++
			return nil
		}
		cart.Items = append(cart.Items, models.CartItem{KoiFish: fish, Quantity: 1})
		return nil
	})
	if err != nil {
		return models.Cart{}, c.fail(log, op, err, "failed to add fish to cart")
	}
	return cart, nil
}

func (c *CartApiService) RemoveFromCart(ctx context.Context, sessionId string, fishId int) (models.Cart, error) {
	const op = "service.cart.RemoveFromCart"
	log := c.log.With("op", op, "session", sessionId, "fish", fishId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Cart{}, err
	}

	cart, err := c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		i := cart.Find(fishId)
		if i < 0 {
			return itemNotFound(fishId)
		}
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		return nil
	})
	if err != nil {
		return models.Cart{}, c.fail(log, op, err, "failed to remove fish from cart")
	}
	return cart, nil
}

func (c *CartApiService) UpdateCartItemQuantity(ctx context.Context, sessionId string, fishId, quantity int) (models.Cart, error) {
	const op = "service.cart.UpdateCartItemQuantity"
	log := c.log.With("op", op, "session", sessionId, "fish", fishId)

	if quantity < 1 {
		return models.Cart{}, c.fail(log, op, ErrInvalidQuantity, "rejected quantity")
	}
	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Cart{}, err
	}

	cart, err := c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		i := cart.Find(fishId)
		if i < 0 {
			return itemNotFound(fishId)
		}
		cart.Items[i].Quantity = quantity
		return nil
	})
	if err != nil {
		return models.Cart{}, c.fail(log, op, err, "failed to update quantity")
	}
	return cart, nil
}

// UpdateCartItemConsignment sets the consignment flag and, when cfg is not
// nil, replaces the whole configuration.
func (c *CartApiService) UpdateCartItemConsignment(ctx context.Context, sessionId string, fishId int, consign bool, cfg *models.ConsignmentConfig) (models.Cart, error) {
	const op = "service.cart.UpdateCartItemConsignment"
	log := c.log.With("op", op, "session", sessionId, "fish", fishId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Cart{}, err
	}

	cart, err := c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		i := cart.Find(fishId)
		if i < 0 {
			return itemNotFound(fishId)
		}
		consignment.Set(&cart.Items[i], consign, cfg)
		return nil
	})
	if err != nil {
		return models.Cart{}, c.fail(log, op, err, "failed to update consignment")
	}
	return cart, nil
}

// PatchConsignment changes only the configuration fields present in p.
func (c *CartApiService) PatchConsignment(ctx context.Context, sessionId string, fishId int, p consignment.Patch) (models.Cart, error) {
	const op = "service.cart.PatchConsignment"
	log := c.log.With("op", op, "session", sessionId, "fish", fishId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Cart{}, err
	}

	cart, err := c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		i := cart.Find(fishId)
		if i < 0 {
			return itemNotFound(fishId)
		}
		consignment.Apply(&cart.Items[i], p)
		return nil
	})
	if err != nil {
		return models.Cart{}, c.fail(log, op, err, "failed to patch consignment")
	}
	return cart, nil
}

func (c *CartApiService) ClearCart(ctx context.Context, sessionId string) error {
	const op = "service.cart.ClearCart"
	log := c.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return err
	}

	_, err := c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		cart.Items = []models.CartItem{}
		return nil
	})
	if err != nil {
		return c.fail(log, op, err, "failed to clear cart")
	}
	return nil
}

// dietBook loads only the diets the consigned items reference, in a single
// page sized to fit them all.
func (c *CartApiService) dietBook(ctx context.Context, items []models.CartItem) (pricing.DietBook, error) {
	ids := dietIds(items)
	if len(ids) == 0 {
		return pricing.DietBook{}, nil
	}

	page, err := c.diets.ListDiets(ctx, odata.New().AnyOf("Id", ids...).Top(len(ids)))
	if err != nil {
		return nil, err
	}
	return pricing.NewDietBook(page.Items), nil
}

func dietIds(items []models.CartItem) []any {
	seen := make(map[int]bool)
	var ids []any
	for _, it := range items {
		if !it.Consign || it.ConsignmentConfig == nil || it.ConsignmentConfig.DietId == 0 {
			continue
		}
		if id := it.ConsignmentConfig.DietId; !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Summary prices the cart against the current diet catalog.
func (c *CartApiService) Summary(ctx context.Context, sessionId string) (View, error) {
	const op = "service.cart.Summary"
	log := c.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return View{}, err
	}

	cart, err := c.read(ctx, log, sessionId)
	if err != nil {
		return View{}, c.fail(log, op, err, "failed to read cart")
	}

	book, err := c.dietBook(ctx, cart.Items)
	if err != nil {
		return View{}, c.fail(log, op, err, "failed to load diets")
	}

	return View{
		Cart:    cart,
		Summary: pricing.Summarize(cart.Items, book),
		Invalid: checkout.ValidateItems(cart.Items),
	}, nil
}

// Checkout validates the cart, submits it as one order and empties the
// cart. Nothing is sent when validation fails. ctx must carry the buyer's
// backend token.
func (c *CartApiService) Checkout(ctx context.Context, sessionId, shippingAddress, note string) (models.Order, error) {
	const op = "service.cart.Checkout"
	log := c.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.Order{}, err
	}

	cart, err := c.read(ctx, log, sessionId)
	if err != nil {
		return models.Order{}, c.fail(log, op, err, "failed to read cart")
	}

	if err := checkout.Validate(cart.Items, shippingAddress); err != nil {
		log.Info("cart rejected at checkout", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w: %w", op, serviceerrors.ErrInvalidArgument, err)
	}

	order, err := c.orders.CreateOrder(ctx, checkout.CreateOrderDataFromCart(cart.Items, shippingAddress, note))
	if err != nil {
		return models.Order{}, c.fail(log, op, err, "failed to create order")
	}
	log.Info("order created", slog.Int("order", order.Id), slog.Int("items", len(cart.Items)))

	ordered := make(map[int]struct{}, len(cart.Items))
	for _, it := range cart.Items {
		ordered[it.Id] = struct{}{}
	}
	// Only the submitted fish are dropped; anything added meanwhile stays.
	_, err = c.mutate(ctx, log, sessionId, func(cart *models.Cart) error {
		kept := cart.Items[:0]
		for _, it := range cart.Items {
			if _, ok := ordered[it.Id]; !ok {
				kept = append(kept, it)
			}
		}
		cart.Items = kept
		return nil
	})
	if err != nil {
		log.Error("order created but cart was not cleared", sl.Err(err))
	}

	if err := c.notifier.OrderSubmitted(ctx, sessionId, order, len(cart.Items)); err != nil {
		log.Warn("failed to publish order", sl.Err(err))
	}
	return order, nil
}
