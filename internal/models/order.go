package models

import "encoding/json"

type PurchaseFish struct {
	FishId    int     `json:"fishId"`
	IsNuture  bool    `json:"isNuture"`
	DietId    *int    `json:"dietId,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Note      *string `json:"note,omitempty"`
}

type OrderRequest struct {
	PurchaseFishes  []PurchaseFish `json:"purchaseFishes"`
	ShippingAddress string         `json:"shippingAddress"`
	Note            string         `json:"note"`
}

type OrderDetail struct {
	Id        int               `json:"id"`
	OrderId   int               `json:"orderId"`
	KoiFishId int               `json:"koiFishId"`
	Price     int64             `json:"price"`
	IsNuture  bool              `json:"isNuture"`
	StaffId   *int              `json:"staffId,omitempty"`
	Status    OrderDetailStatus `json:"status"`

	// Reviewable is true while staff can still act on the line.
	Reviewable bool `json:"reviewable"`
}

func (d *OrderDetail) UnmarshalJSON(b []byte) error {
	type plain OrderDetail
	if err := json.Unmarshal(b, (*plain)(d)); err != nil {
		return err
	}
	d.Reviewable = d.Status.IsPending()
	return nil
}

type Order struct {
	Id              int           `json:"id"`
	UserId          int           `json:"userId"`
	TotalAmount     int64         `json:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress"`
	Note            string        `json:"note,omitempty"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       Timestamp     `json:"createdAt"`
	Details         []OrderDetail `json:"orderDetails,omitempty"`
	Reviewable      bool          `json:"reviewable"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	if err := json.Unmarshal(b, (*plain)(o)); err != nil {
		return err
	}
	o.Reviewable = o.Status.IsPending()
	return nil
}

// Consignment is a nurture consignment tracked by the backend.
type Consignment struct {
	Id         int               `json:"id"`
	UserId     int               `json:"userId"`
	KoiFishId  int               `json:"koiFishId"`
	DietId     int               `json:"dietId"`
	StartDate  Date              `json:"startDate"`
	EndDate    Date              `json:"endDate"`
	TotalPrice int64             `json:"totalPrice"`
	Note       string            `json:"note,omitempty"`
	Status     ConsignmentStatus `json:"status"`
	Reviewable bool              `json:"reviewable"`
}

func (c *Consignment) UnmarshalJSON(b []byte) error {
	type plain Consignment
	if err := json.Unmarshal(b, (*plain)(c)); err != nil {
		return err
	}
	c.Reviewable = c.Status.IsPending()
	return nil
}

type RequestForSale struct {
	Id          int               `json:"id"`
	UserId      int               `json:"userId"`
	KoiFishId   int               `json:"koiFishId"`
	Fish        *KoiFish          `json:"koiFish,omitempty"`
	PriceDealed int64             `json:"priceDealed"`
	Method      string            `json:"method"`
	Note        string            `json:"note,omitempty"`
	Status      SaleRequestStatus `json:"status"`
	CreatedAt   Timestamp         `json:"createdAt"`
	Reviewable  bool              `json:"reviewable"`
}

func (r *RequestForSale) UnmarshalJSON(b []byte) error {
	type plain RequestForSale
	if err := json.Unmarshal(b, (*plain)(r)); err != nil {
		return err
	}
	r.Reviewable = r.Status.IsPending()
	return nil
}
