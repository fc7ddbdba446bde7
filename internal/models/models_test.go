package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"koistore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalAcceptsDateAndTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "plain date", raw: `"2024-01-05"`, want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{name: "iso timestamp", raw: `"2024-01-05T00:00:00.000Z"`, want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{name: "zone-less timestamp", raw: `"2024-01-05T10:30:00"`, want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d models.Date
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.True(t, tt.want.Equal(d.Day()), "got %s", d.Day())
		})
	}
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d models.Date
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
}

func TestDate_Marshal(t *testing.T) {
	b, err := json.Marshal(models.NewDate(2024, time.March, 9))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(b))
}

func TestCartItem_FlattensFish(t *testing.T) {
	item := models.CartItem{
		KoiFish:  models.KoiFish{Id: 7, Name: "Kohaku", Price: 5_000_000},
		Quantity: 1,
	}
	b, err := json.Marshal(item)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.EqualValues(t, 7, raw["id"])
	assert.EqualValues(t, 1, raw["quantity"])
	assert.NotContains(t, raw, "consignmentConfig")
}

func TestStatus_DecodeRejectsUnknown(t *testing.T) {
	var order models.Order
	err := json.Unmarshal([]byte(`{"id":1,"status":"TELEPORTED"}`), &order)
	assert.ErrorIs(t, err, models.ErrUnknownStatus)
}

func TestStatus_DecodeIsCaseInsensitive(t *testing.T) {
	var req models.WithdrawnRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"status":"pending"}`), &req))
	assert.Equal(t, models.WithdrawalPending, req.Status)
	assert.True(t, req.Status.IsPending())
}

func TestStatus_IsPending(t *testing.T) {
	assert.True(t, models.SaleRequestPending.IsPending())
	assert.False(t, models.SaleRequestApproved.IsPending())
	assert.True(t, models.ConsignmentPending.IsPending())
	assert.False(t, models.OrderDetailShipping.IsPending())
	assert.False(t, models.OrderCompleted.IsPending())
}

func TestReviewable(t *testing.T) {
	var order models.Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"status":"PENDING","orderDetails":[
		{"id":2,"status":"PENDING"},{"id":3,"status":"SHIPPING"}]}`), &order))
	assert.True(t, order.Reviewable)
	assert.True(t, order.Details[0].Reviewable)
	assert.False(t, order.Details[1].Reviewable)

	tests := []struct {
		name string
		raw  string
		into func([]byte) (bool, error)
		want bool
	}{
		{
			name: "pending consignment",
			raw:  `{"id":1,"status":"PENDING"}`,
			into: func(b []byte) (bool, error) { var v models.Consignment; err := json.Unmarshal(b, &v); return v.Reviewable, err },
			want: true,
		},
		{
			name: "approved sale request",
			raw:  `{"id":1,"status":"APPROVED"}`,
			into: func(b []byte) (bool, error) { var v models.RequestForSale; err := json.Unmarshal(b, &v); return v.Reviewable, err },
			want: false,
		},
		{
			name: "incoming flag is recomputed",
			raw:  `{"id":1,"status":"APPROVED","reviewable":true}`,
			into: func(b []byte) (bool, error) { var v models.WithdrawnRequest; err := json.Unmarshal(b, &v); return v.Reviewable, err },
			want: false,
		},
		{
			name: "completed order",
			raw:  `{"id":1,"status":"COMPLETED"}`,
			into: func(b []byte) (bool, error) { var v models.Order; err := json.Unmarshal(b, &v); return v.Reviewable, err },
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.into([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := models.ParseConsignmentStatus(" nurturing ")
	require.NoError(t, err)
	assert.Equal(t, models.ConsignmentNurturing, s)

	_, err = models.ParseSaleRequestStatus("")
	assert.ErrorIs(t, err, models.ErrUnknownStatus)

	_, err = models.ParseOrderDetailStatus("assigned")
	assert.NoError(t, err)
}

func TestCart_Find(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{{KoiFish: models.KoiFish{Id: 3}}, {KoiFish: models.KoiFish{Id: 9}}}}
	assert.Equal(t, 1, c.Find(9))
	assert.Equal(t, -1, c.Find(4))
}
