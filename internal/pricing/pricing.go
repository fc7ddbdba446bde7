// Package pricing derives display and checkout amounts for a cart. All
// amounts are whole Vietnamese đồng.
package pricing

import (
	"time"

	"koistore/internal/models"
)

// DietBook indexes diets by id.
type DietBook map[int]models.Diet

func NewDietBook(diets []models.Diet) DietBook {
	book := make(DietBook, len(diets))
	for _, d := range diets {
		book[d.Id] = d
	}
	return book
}

// DaysBetween counts calendar days from from to to, ignoring the clock.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - f.Unix()) / 86400)
}

// Duration is the inclusive number of days in r, or 0 when either end is
// missing or the range is reversed.
func Duration(r *models.DateRange) int {
	if r == nil || r.From == nil || r.To == nil {
		return 0
	}
	days := DaysBetween(r.From.Time, r.To.Time)
	if days < 0 {
		return 0
	}
	return days + 1
}

func ConsignmentPrice(item models.CartItem, diets DietBook) int64 {
	cfg := item.ConsignmentConfig
	if cfg == nil || cfg.DietId == 0 {
		return 0
	}
	diet, ok := diets[cfg.DietId]
	if !ok {
		return 0
	}
	return diet.DietCost * int64(Duration(cfg.DateRange))
}

func Subtotal(items []models.CartItem, diets DietBook) int64 {
	var total int64
	for _, it := range items {
		total += it.Price
		if it.Consign {
			total += ConsignmentPrice(it, diets)
		}
	}
	return total
}

type Line struct {
	FishId          int    `json:"fishId"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	Consign         bool   `json:"consign"`
	DietName        string `json:"dietName,omitempty"`
	ConsignmentDays int    `json:"consignmentDays"`
	ConsignmentCost int64  `json:"consignmentCost"`
	LineTotal       int64  `json:"lineTotal"`
}

type Summary struct {
	Lines            []Line `json:"lines"`
	FishTotal        int64  `json:"fishTotal"`
	ConsignmentTotal int64  `json:"consignmentTotal"`
	Subtotal         int64  `json:"subtotal"`
}

// Summarize breaks the subtotal down per cart line. Its Subtotal always
// equals Subtotal(items, diets).
func Summarize(items []models.CartItem, diets DietBook) Summary {
	s := Summary{Lines: make([]Line, 0, len(items))}
	for _, it := range items {
		line := Line{
			FishId:  it.Id,
			Name:    it.Name,
			Price:   it.Price,
			Consign: it.Consign,
		}
		if it.Consign && it.ConsignmentConfig != nil {
			line.ConsignmentDays = Duration(it.ConsignmentConfig.DateRange)
			line.ConsignmentCost = ConsignmentPrice(it, diets)
			if d, ok := diets[it.ConsignmentConfig.DietId]; ok {
				line.DietName = d.Name
			}
		}
		line.LineTotal = line.Price + line.ConsignmentCost

		s.FishTotal += line.Price
		s.ConsignmentTotal += line.ConsignmentCost
		s.Lines = append(s.Lines, line)
	}
	s.Subtotal = s.FishTotal + s.ConsignmentTotal
	return s
}
