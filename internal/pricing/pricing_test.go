package pricing_test

import (
	"testing"
	"time"

	"koistore/internal/models"
	"koistore/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *models.Date {
	v := models.NewDate(y, m, d)
	return &v
}

func fish(id int, price int64) models.KoiFish {
	return models.KoiFish{Id: id, Name: "koi", Price: price}
}

var diets = pricing.NewDietBook([]models.Diet{
	{Id: 1, Name: "Standard", DietCost: 20_000},
	{Id: 2, Name: "Premium", DietCost: 50_000},
})

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		r    *models.DateRange
		want int
	}{
		{name: "nil range", r: nil, want: 0},
		{name: "missing from", r: &models.DateRange{To: date(2024, 1, 5)}, want: 0},
		{name: "missing to", r: &models.DateRange{From: date(2024, 1, 5)}, want: 0},
		{name: "same day", r: &models.DateRange{From: date(2024, 1, 5), To: date(2024, 1, 5)}, want: 1},
		{name: "five days inclusive", r: &models.DateRange{From: date(2024, 1, 1), To: date(2024, 1, 5)}, want: 5},
		{name: "across month end", r: &models.DateRange{From: date(2024, 2, 28), To: date(2024, 3, 1)}, want: 3},
		{name: "reversed", r: &models.DateRange{From: date(2024, 1, 5), To: date(2024, 1, 1)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.Duration(tt.r))
		})
	}
}

func TestDuration_MatchesDayDifference(t *testing.T) {
	start := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 400; offset += 7 {
		from := models.Date{Time: start}
		to := models.Date{Time: start.AddDate(0, 0, offset)}
		assert.Equal(t, offset+1, pricing.Duration(&models.DateRange{From: &from, To: &to}))
	}
}

func TestDaysBetween_IgnoresClock(t *testing.T) {
	from := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, pricing.DaysBetween(from, to))
}

func TestDuration_Centuries(t *testing.T) {
	r := &models.DateRange{From: date(1700, 1, 1), To: date(2100, 1, 1)}
	assert.Equal(t, 146098, pricing.Duration(r))
	assert.Equal(t, 146097, pricing.DaysBetween(r.From.Time, r.To.Time))
}

func TestConsignmentPrice(t *testing.T) {
	rangeJan := &models.DateRange{From: date(2024, 1, 1), To: date(2024, 1, 5)}

	tests := []struct {
		name string
		item models.CartItem
		want int64
	}{
		{name: "no config", item: models.CartItem{KoiFish: fish(1, 100), Consign: true}, want: 0},
		{name: "no diet", item: models.CartItem{KoiFish: fish(1, 100), Consign: true, ConsignmentConfig: &models.ConsignmentConfig{DateRange: rangeJan}}, want: 0},
		{name: "unknown diet", item: models.CartItem{KoiFish: fish(1, 100), Consign: true, ConsignmentConfig: &models.ConsignmentConfig{DietId: 99, DateRange: rangeJan}}, want: 0},
		{name: "no range", item: models.CartItem{KoiFish: fish(1, 100), Consign: true, ConsignmentConfig: &models.ConsignmentConfig{DietId: 1}}, want: 0},
		{name: "complete", item: models.CartItem{KoiFish: fish(1, 100), Consign: true, ConsignmentConfig: &models.ConsignmentConfig{DietId: 1, DateRange: rangeJan}}, want: 100_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.ConsignmentPrice(tt.item, diets))
		})
	}
}

func TestSubtotal_Scenarios(t *testing.T) {
	plain := models.CartItem{KoiFish: fish(7, 5_000_000), Quantity: 1}
	assert.EqualValues(t, 5_000_000, pricing.Subtotal([]models.CartItem{plain}, diets))

	consigned := plain
	consigned.Consign = true
	consigned.ConsignmentConfig = &models.ConsignmentConfig{
		DietId:    1,
		DateRange: &models.DateRange{From: date(2024, 1, 1), To: date(2024, 1, 5)},
	}
	assert.EqualValues(t, 5_100_000, pricing.Subtotal([]models.CartItem{consigned}, diets))
}

func TestSubtotal_IgnoresConfigWhenNotConsigned(t *testing.T) {
	item := models.CartItem{
		KoiFish: fish(7, 1_000),
		ConsignmentConfig: &models.ConsignmentConfig{
			DietId:    2,
			DateRange: &models.DateRange{From: date(2024, 1, 1), To: date(2024, 1, 2)},
		},
	}
	assert.EqualValues(t, 1_000, pricing.Subtotal([]models.CartItem{item}, diets))
}

func TestSubtotal_RemovingItemNeverIncreases(t *testing.T) {
	items := []models.CartItem{
		{KoiFish: fish(1, 300)},
		{KoiFish: fish(2, 0)},
		{KoiFish: fish(3, 700), Consign: true, ConsignmentConfig: &models.ConsignmentConfig{
			DietId: 2, DateRange: &models.DateRange{From: date(2024, 5, 1), To: date(2024, 5, 3)},
		}},
	}
	full := pricing.Subtotal(items, diets)

	for i := range items {
		rest := append(append([]models.CartItem{}, items[:i]...), items[i+1:]...)
		got := pricing.Subtotal(rest, diets)
		assert.LessOrEqual(t, got, full)
		if items[i].Price > 0 {
			assert.Less(t, got, full)
		}
	}
}

func TestSummarize(t *testing.T) {
	items := []models.CartItem{
		{KoiFish: models.KoiFish{Id: 1, Name: "Kohaku", Price: 1_000_000}},
		{KoiFish: models.KoiFish{Id: 2, Name: "Showa", Price: 2_000_000}, Consign: true, ConsignmentConfig: &models.ConsignmentConfig{
			DietId: 2, DateRange: &models.DateRange{From: date(2024, 1, 1), To: date(2024, 1, 10)},
		}},
	}

	s := pricing.Summarize(items, diets)

	assert.Len(t, s.Lines, 2)
	assert.EqualValues(t, 3_000_000, s.FishTotal)
	assert.EqualValues(t, 500_000, s.ConsignmentTotal)
	assert.EqualValues(t, 3_500_000, s.Subtotal)
	assert.Equal(t, pricing.Subtotal(items, diets), s.Subtotal)
	assert.Equal(t, 10, s.Lines[1].ConsignmentDays)
	assert.Equal(t, "Premium", s.Lines[1].DietName)
	assert.EqualValues(t, 2_500_000, s.Lines[1].LineTotal)
}
