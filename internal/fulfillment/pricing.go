// Package fulfillment derives local-delivery pricing and validates honor
// stand pickup schedules attached to cart metadata. Everything here is a pure
// function of its inputs; schedule state lives in the cart record, not in
// process memory.
package fulfillment

import "time"

// Delivery option identifiers.
const (
	OptionStandard = "local-delivery-standard"
	OptionExpress  = "local-delivery-express"
	OptionSameDay  = "local-delivery-same-day"
)

// Option is a computed fulfillment option, never persisted.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tariff maps delivery options to prices and day offsets. Injected so pricing
// can change without touching the calculation logic.
type Tariff struct {
	BasePrices            map[string]int64
	DefaultPrice          int64
	FreeDeliveryThreshold int64
	DeliveryDays          map[string]int
	DefaultDeliveryDays   int
}

// DefaultTariff returns the stand's current price table in minor units.
func DefaultTariff() Tariff {
	return Tariff{
		BasePrices: map[string]int64{
			OptionStandard: 599,
			OptionExpress:  1299,
			OptionSameDay:  1999,
		},
		DefaultPrice:          599,
		FreeDeliveryThreshold: 5000,
		DeliveryDays: map[string]int{
			OptionStandard: 5,
			OptionExpress:  2,
			OptionSameDay:  0,
		},
		DefaultDeliveryDays: 3,
	}
}

// Calculator computes delivery prices and estimates without backend calls.
type Calculator struct {
	tariff Tariff
}

func NewCalculator(tariff Tariff) *Calculator {
	return &Calculator{tariff: tariff}
}

// Price returns the delivery price in minor units for the option given the
// cart subtotal. Unknown options fall back to the default price; orders at or
// above the free-delivery threshold ship free regardless of option.
func (c *Calculator) Price(optionID string, subtotal int64) int64 {
	if subtotal >= c.tariff.FreeDeliveryThreshold {
		return 0
	}
	if price, ok := c.tariff.BasePrices[optionID]; ok {
		return price
	}
	return c.tariff.DefaultPrice
}

// EstimatedDelivery returns now plus the option's day offset. The result is
// only valid relative to invocation time; callers must re-derive across day
// boundaries.
func (c *Calculator) EstimatedDelivery(optionID string) time.Time {
	days, ok := c.tariff.DeliveryDays[optionID]
	if !ok {
		days = c.tariff.DefaultDeliveryDays
	}
	return now().AddDate(0, 0, days)
}

// Options lists the offered delivery options for display.
func (c *Calculator) Options() []Option {
	return []Option{
		{
			ID:          OptionStandard,
			Name:        "Local Delivery - Standard",
			Description: "Delivery within 3-5 business days",
		},
		{
			ID:          OptionExpress,
			Name:        "Local Delivery - Express",
			Description: "Delivery within 1-2 business days",
		},
		{
			ID:          OptionSameDay,
			Name:        "Local Delivery - Same Day",
			Description: "Delivery same day if ordered before 2 PM",
		},
	}
}
