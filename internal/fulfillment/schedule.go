package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sme-storefront/internal/domain"
	"sme-storefront/internal/medusa"
)

// now is swapped out in tests to pin the calendar.
var now = time.Now

// metadataKey is the cart metadata field holding the schedule.
const metadataKey = "fulfillment"

// dateLayout is the wire format for pickup dates (calendar date, no time).
const dateLayout = "2006-01-02"

type Method string

const (
	MethodPickup   Method = "pickup"
	MethodDelivery Method = "delivery"
)

type TimeSlot string

const (
	SlotAnytime   TimeSlot = "anytime"
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// Schedule is the pickup/delivery preference stored in cart metadata. It has
// no identity of its own and lives and dies with the cart record.
type Schedule struct {
	Method     Method   `json:"method"`
	PickupDate string   `json:"pickupDate,omitempty"`
	TimeSlot   TimeSlot `json:"timeSlot,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// SlotInfo describes a pickup time slot for display.
type SlotInfo struct {
	Label       string
	Hours       string
	Description string
}

// TimeSlots is the stand's slot table, consulted for display only.
var TimeSlots = map[TimeSlot]SlotInfo{
	SlotAnytime: {
		Label:       "Anytime (24/7)",
		Hours:       "Honor stand is always accessible",
		Description: "Pick up whenever convenient - our honor stand is open 24/7",
	},
	SlotMorning: {
		Label:       "Morning",
		Hours:       "8:00 AM - 12:00 PM",
		Description: "Best for fresh eggs and dairy products",
	},
	SlotAfternoon: {
		Label:       "Afternoon",
		Hours:       "12:00 PM - 5:00 PM",
		Description: "Typically less crowded, great for browsing",
	},
	SlotEvening: {
		Label:       "Evening",
		Hours:       "5:00 PM - 7:00 PM",
		Description: "After-work pickup, products restocked",
	},
}

// AvailablePickupDates returns the next 14 calendar days starting tomorrow,
// allowing 24 hours of prep time.
func AvailablePickupDates() []time.Time {
	today := midnight(now())
	dates := make([]time.Time, 0, 14)
	for i := 1; i <= 14; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// FormatPickupDate renders a stored date for display, e.g. "Wed, Feb 12".
func FormatPickupDate(dateString string) string {
	date, err := time.ParseInLocation(dateLayout, dateString, time.Local)
	if err != nil {
		return dateString
	}
	return date.Format("Mon, Jan 2")
}

// FormatDateForInput renders a date in the wire format (YYYY-MM-DD).
func FormatDateForInput(date time.Time) string {
	return date.Format(dateLayout)
}

// IsValidPickupDate reports whether the date is strictly after today and no
// more than 14 days out, comparing local calendar days.
func IsValidPickupDate(dateString string) bool {
	date, err := time.ParseInLocation(dateLayout, dateString, time.Local)
	if err != nil {
		return false
	}
	today := midnight(now())
	earliest := today.AddDate(0, 0, 1)
	latest := today.AddDate(0, 0, 14)
	return !date.Before(earliest) && !date.After(latest)
}

// FromCart extracts the schedule from cart metadata, or nil when none is set.
func FromCart(cart *domain.Cart) *Schedule {
	if cart == nil || cart.Metadata == nil {
		return nil
	}
	raw, ok := cart.Metadata[metadataKey]
	if !ok || raw == nil {
		return nil
	}
	// Metadata arrives as generic JSON; round-trip into the typed schedule.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var schedule Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil
	}
	if schedule.Method == "" {
		return nil
	}
	return &schedule
}

// IsComplete reports whether the schedule is actionable: delivery always is,
// pickup needs a valid date and a time slot.
func IsComplete(schedule *Schedule) bool {
	if schedule == nil {
		return false
	}
	if schedule.Method == MethodDelivery {
		return true
	}
	return schedule.PickupDate != "" &&
		IsValidPickupDate(schedule.PickupDate) &&
		schedule.TimeSlot != ""
}

// Summary produces the human-readable fulfillment line for order review.
func Summary(schedule *Schedule) string {
	if schedule == nil {
		return "Not selected"
	}

	if schedule.Method == MethodDelivery {
		return "Local Delivery ($40 base + $1.25/mile after 20 miles)"
	}

	if schedule.PickupDate == "" || schedule.TimeSlot == "" {
		return "Pickup at Honor Stand (time not selected)"
	}

	dateStr := FormatPickupDate(schedule.PickupDate)
	if schedule.TimeSlot == SlotAnytime {
		return fmt.Sprintf("Pickup %s - Anytime (24/7 access)", dateStr)
	}

	slot := TimeSlots[schedule.TimeSlot]
	return fmt.Sprintf("Pickup %s - %s (%s)", dateStr, slot.Label, slot.Hours)
}

// cartUpdater is the slice of the commerce client used for metadata writes.
type cartUpdater interface {
	UpdateCart(ctx context.Context, cartID string, in medusa.CartUpdate) (*domain.Cart, error)
}

// UpdateSchedule merges the schedule into the cart's metadata.
func UpdateSchedule(ctx context.Context, api cartUpdater, cartID string, schedule *Schedule) (*domain.Cart, error) {
	return api.UpdateCart(ctx, cartID, medusa.CartUpdate{
		Metadata: map[string]interface{}{metadataKey: schedule},
	})
}

// ClearSchedule removes the schedule by nulling the metadata field.
func ClearSchedule(ctx context.Context, api cartUpdater, cartID string) (*domain.Cart, error) {
	return api.UpdateCart(ctx, cartID, medusa.CartUpdate{
		Metadata: map[string]interface{}{metadataKey: nil},
	})
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
