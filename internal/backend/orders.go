package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"koistore/internal/backend/odata"
	"koistore/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	const op = "backend.CreateOrder"
	return call[models.Order](ctx, c, op, http.MethodPost, "orders", req)
}

func (c *Client) GetOrder(ctx context.Context, id int) (models.Order, error) {
	const op = "backend.GetOrder"
	return call[models.Order](ctx, c, op, http.MethodGet, "orders/"+strconv.Itoa(id), nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "backend.ListOrders"
	return call[[]models.Order](ctx, c, op, http.MethodGet, "orders", nil)
}

func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	const op = "backend.ListMyOrders"
	return call[[]models.Order](ctx, c, op, http.MethodGet, "users/me/orders", nil)
}

// OrderDetailAction is one of the staff actions on an order line.
type OrderDetailAction string

const (
	ActionAssign   OrderDetailAction = "assign"
	ActionApprove  OrderDetailAction = "approve"
	ActionReject   OrderDetailAction = "reject"
	ActionComplete OrderDetailAction = "complete"
	ActionShip     OrderDetailAction = "ship"
)

func ParseOrderDetailAction(s string) (OrderDetailAction, error) {
	switch a := OrderDetailAction(s); a {
	case ActionAssign, ActionApprove, ActionReject, ActionComplete, ActionShip:
		return a, nil
	}
	return "", fmt.Errorf("unknown order detail action %q", s)
}

type AssignRequest struct {
	StaffId int `json:"staffId"`
}

// OrderDetailAction runs action on an order line. body is only sent for
// assign, which needs the staff id.
func (c *Client) OrderDetailAction(ctx context.Context, id int, action OrderDetailAction, staffId int) (models.OrderDetail, error) {
	const op = "backend.OrderDetailAction"

	var body any
	if action == ActionAssign {
		body = AssignRequest{StaffId: staffId}
	}
	return call[models.OrderDetail](ctx, c, op, http.MethodPost, "order-details/"+strconv.Itoa(id)+"/"+string(action), body)
}

func (c *Client) ListMyConsignments(ctx context.Context) ([]models.Consignment, error) {
	const op = "backend.ListMyConsignments"
	return call[[]models.Consignment](ctx, c, op, http.MethodGet, "nurture-consignments", nil)
}

func (c *Client) GetConsignment(ctx context.Context, id int) (models.Consignment, error) {
	const op = "backend.GetConsignment"
	return call[models.Consignment](ctx, c, op, http.MethodGet, "nurture-consignments/"+strconv.Itoa(id), nil)
}

// saleRequestRow is the PascalCase shape of odata/my-request-for-sales with
// KoiFish expanded.
type saleRequestRow struct {
	Id          int                      `json:"Id"`
	UserId      int                      `json:"UserId"`
	KoiFishId   int                      `json:"KoiFishId"`
	PriceDealed int64                    `json:"PriceDealed"`
	Method      string                   `json:"Method"`
	Note        string                   `json:"Note"`
	Status      models.SaleRequestStatus `json:"Status"`
	CreatedAt   models.Timestamp         `json:"CreatedAt"`
	KoiFish     *fishRow                 `json:"KoiFish"`
}

type fishRow struct {
	Id     int    `json:"Id"`
	Name   string `json:"Name"`
	Price  int64  `json:"Price"`
	Gender string `json:"Gender"`
	Origin string `json:"Origin"`
	Images []struct {
		URL string `json:"Url"`
	} `json:"KoiFishImages"`
}

func (r fishRow) toModel() models.KoiFish {
	f := models.KoiFish{Id: r.Id, Name: r.Name, Price: r.Price, Gender: r.Gender, Origin: r.Origin}
	for _, img := range r.Images {
		f.Images = append(f.Images, img.URL)
	}
	return f
}

func (r saleRequestRow) toModel() models.RequestForSale {
	m := models.RequestForSale{
		Id:          r.Id,
		UserId:      r.UserId,
		KoiFishId:   r.KoiFishId,
		PriceDealed: r.PriceDealed,
		Method:      r.Method,
		Note:        r.Note,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		Reviewable:  r.Status.IsPending(),
	}
	if r.KoiFish != nil {
		f := r.KoiFish.toModel()
		m.Fish = &f
	}
	return m
}

func (c *Client) ListMySaleRequests(ctx context.Context, q *odata.Query) (Page[models.RequestForSale], error) {
	const op = "backend.ListMySaleRequests"
	if q == nil {
		q = odata.New()
	}
	page, err := query[saleRequestRow](ctx, c, op, "odata/my-request-for-sales", q.Expand("KoiFish($expand=KoiFishImages)"))
	if err != nil {
		return Page[models.RequestForSale]{}, err
	}
	return mapPage(page, saleRequestRow.toModel), nil
}

type SaleRequestCreate struct {
	KoiFishId   int    `json:"koiFishId" validate:"required"`
	PriceDealed int64  `json:"priceDealed" validate:"gt=0"`
	Method      string `json:"method" validate:"required,oneof=ONLINE OFFLINE"`
	Note        string `json:"note,omitempty"`
}

func (c *Client) CreateSaleRequest(ctx context.Context, req SaleRequestCreate) (models.RequestForSale, error) {
	const op = "backend.CreateSaleRequest"
	return call[models.RequestForSale](ctx, c, op, http.MethodPost, "RequestForSale/create", req)
}

func (c *Client) CancelSaleRequest(ctx context.Context, id int) error {
	const op = "backend.CancelSaleRequest"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodPost, "RequestForSale/cancel/"+strconv.Itoa(id), nil)
	return err
}
