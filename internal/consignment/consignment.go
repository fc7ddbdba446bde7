// Package consignment edits the per-item consignment configuration of cart
// items. Nothing here validates; incomplete configurations are legal until
// checkout.
package consignment

import "koistore/internal/models"

// Patch replaces only the fields that are set.
type Patch struct {
	DietId    *int              `json:"dietId,omitempty"`
	DateRange *models.DateRange `json:"dateRange,omitempty"`
	Note      *string           `json:"note,omitempty"`
}

func (p Patch) Empty() bool {
	return p.DietId == nil && p.DateRange == nil && p.Note == nil
}

// Toggle turns consignment on or off. Turning it on gives the item a blank
// configuration unless it already has one; turning it off keeps the stored
// configuration so re-enabling restores it.
func Toggle(item *models.CartItem, on bool) {
	item.Consign = on
	if on && item.ConsignmentConfig == nil {
		item.ConsignmentConfig = &models.ConsignmentConfig{}
	}
}

// Set replaces the consignment flag and configuration wholesale.
func Set(item *models.CartItem, on bool, cfg *models.ConsignmentConfig) {
	if cfg != nil {
		c := *cfg
		item.ConsignmentConfig = &c
	}
	Toggle(item, on)
}

// Apply merges p into the item's configuration, creating one if needed.
func Apply(item *models.CartItem, p Patch) {
	if item.ConsignmentConfig == nil {
		item.ConsignmentConfig = &models.ConsignmentConfig{}
	}
	cfg := item.ConsignmentConfig

	if p.DietId != nil {
		cfg.DietId = *p.DietId
	}
	if p.DateRange != nil {
		r := *p.DateRange
		cfg.DateRange = &r
	}
	if p.Note != nil {
		cfg.Note = *p.Note
	}
}
