package models

type DateRange struct {
	From *Date `json:"from,omitempty"`
	To   *Date `json:"to,omitempty"`
}

// ConsignmentConfig is the nurture setup chosen for a consigned cart item.
// Incomplete configs are allowed to exist; completeness is checked at checkout.
type ConsignmentConfig struct {
	DietId    int        `json:"dietId"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	Note      string     `json:"note,omitempty"`
}

type CartItem struct {
	KoiFish
	Quantity          int                `json:"quantity"`
	Consign           bool               `json:"consign"`
	ConsignmentConfig *ConsignmentConfig `json:"consignmentConfig,omitempty"`
}

type Cart struct {
	SessionId string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	Revision  int64      `json:"revision"`
}

// Find returns the index of the item with the given fish id, or -1.
func (c Cart) Find(fishId int) int {
	for i, it := range c.Items {
		if it.Id == fishId {
			return i
		}
	}
	return -1
}
