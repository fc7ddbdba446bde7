// Package checkout turns a session cart into the backend's order-creation
// request and decides whether the cart may be submitted at all.
package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"koistore/internal/models"
	"koistore/internal/pricing"
)

// TimestampLayout is the ISO-8601 form the backend expects for consignment
// dates.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	ReasonMissingConfig = "consignment is not configured"
	ReasonMissingDiet   = "no diet selected"
	ReasonMissingRange  = "no consignment dates selected"
	ReasonBadRange      = "consignment must last at least one day"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingShipping = errors.New("shipping address is required")
)

type InvalidItem struct {
	FishId int    `json:"fishId"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// InvalidCartError lists the consigned items whose configuration is not
// complete.
type InvalidCartError struct {
	Items []InvalidItem
}

func (e *InvalidCartError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		names = append(names, fmt.Sprintf("%s (%s)", it.Name, it.Reason))
	}
	return "invalid consignment for: " + strings.Join(names, ", ")
}

// Consignment is a consignment configuration that passed validation.
type Consignment struct {
	DietId int
	From   time.Time
	To     time.Time
	Note   string
}

// Complete promotes a draft configuration to a Consignment, or returns the
// reason it cannot be.
func Complete(cfg *models.ConsignmentConfig) (Consignment, string, bool) {
	switch {
	case cfg == nil:
		return Consignment{}, ReasonMissingConfig, false
	case cfg.DietId == 0:
		return Consignment{}, ReasonMissingDiet, false
	case cfg.DateRange == nil || cfg.DateRange.From == nil || cfg.DateRange.To == nil:
		return Consignment{}, ReasonMissingRange, false
	case pricing.Duration(cfg.DateRange) <= 0:
		return Consignment{}, ReasonBadRange, false
	}
	return Consignment{
		DietId: cfg.DietId,
		From:   cfg.DateRange.From.Time,
		To:     cfg.DateRange.To.Time,
		Note:   cfg.Note,
	}, "", true
}

// ValidateItems reports every consigned item with an incomplete
// configuration. Items that are not consigned are always valid.
func ValidateItems(items []models.CartItem) []InvalidItem {
	var invalid []InvalidItem
	for _, it := range items {
		if !it.Consign {
			continue
		}
		if _, reason, ok := Complete(it.ConsignmentConfig); !ok {
			invalid = append(invalid, InvalidItem{FishId: it.Id, Name: it.Name, Reason: reason})
		}
	}
	return invalid
}

// Validate checks everything that must hold before an order is sent.
func Validate(items []models.CartItem, shippingAddress string) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return ErrMissingShipping
	}
	if invalid := ValidateItems(items); len(invalid) > 0 {
		return &InvalidCartError{Items: invalid}
	}
	return nil
}

func formatTimestamp(t time.Time) *string {
	s := t.UTC().Format(TimestampLayout)
	return &s
}

// CreateOrderDataFromCart maps cart items to purchase lines. Consignment
// fields are only set on consigned items, and only the parts that exist.
func CreateOrderDataFromCart(items []models.CartItem, shippingAddress, note string) models.OrderRequest {
	req := models.OrderRequest{
		PurchaseFishes:  make([]models.PurchaseFish, 0, len(items)),
		ShippingAddress: shippingAddress,
		Note:            note,
	}

	for _, it := range items {
		pf := models.PurchaseFish{
			FishId:   it.Id,
			IsNuture: it.Consign,
		}

		if cfg := it.ConsignmentConfig; it.Consign && cfg != nil {
			if cfg.DietId != 0 {
				dietId := cfg.DietId
				pf.DietId = &dietId
			}
			if r := cfg.DateRange; r != nil {
				if r.From != nil {
					pf.StartDate = formatTimestamp(r.From.Time)
				}
				if r.To != nil {
					pf.EndDate = formatTimestamp(r.To.Time)
				}
			}
			if cfg.Note != "" {
				n := cfg.Note
				pf.Note = &n
			}
		}

		req.PurchaseFishes = append(req.PurchaseFishes, pf)
	}

	return req
}
