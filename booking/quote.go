package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/linesmerrill/car-rental-api/models"
)

// Quote is the price of renting a car over a period. Days counts both the
// first and the last day.
type Quote struct {
	CarID         string          `json:"carId"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	Days          int64           `json:"days"`
	PricePerDay   decimal.Decimal `json:"pricePerDay"`
	Total         decimal.Decimal `json:"total"`
	OriginalTotal decimal.Decimal `json:"originalTotal"`
	Savings       decimal.Decimal `json:"savings"`
}

// RentalDays counts the calendar days from start to end inclusive
func RentalDays(p Period) int64 {
	sy, sm, sd := p.Start.Date()
	ey, em, ed := p.End.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int64(end.Sub(start)/(24*time.Hour)) + 1
}

// NewQuote prices car over p. The original total falls back to the daily price
// when the car has no original price, so savings are never negative.
func NewQuote(car models.Car, p Period) Quote {
	days := decimal.NewFromInt(RentalDays(p))
	price := decimal.NewFromFloat(car.PricePerDay).Round(2)
	original := decimal.NewFromFloat(car.OriginalPrice).Round(2)
	if original.LessThan(price) {
		original = price
	}
	total := price.Mul(days)
	originalTotal := original.Mul(days)
	return Quote{
		CarID:         car.ID,
		StartDate:     p.Start.Format(dateLayout),
		EndDate:       p.End.Format(dateLayout),
		Days:          days.IntPart(),
		PricePerDay:   price,
		Total:         total,
		OriginalTotal: originalTotal,
		Savings:       originalTotal.Sub(total),
	}
}
