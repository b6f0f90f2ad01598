package fulfillment

import (
	"context"
	"strings"
	"testing"
	"time"

	"sme-storefront/internal/domain"
	"sme-storefront/internal/medusa"
)

func pinClock(t *testing.T, value time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return value }
	t.Cleanup(func() { now = prev })
}

func TestPriceTable(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		optionID string
		subtotal int64
		want     int64
	}{
		{OptionStandard, 1000, 599},
		{OptionExpress, 1000, 1299},
		{OptionSameDay, 1000, 1999},
		{"bogus-option", 1000, 599},
		{OptionStandard, 5000, 0},
		{OptionExpress, 5000, 0},
		{OptionSameDay, 9999, 0},
		{"bogus-option", 5000, 0},
		{OptionExpress, 4999, 1299},
	}
	for _, tc := range cases {
		if got := calc.Price(tc.optionID, tc.subtotal); got != tc.want {
			t.Fatalf("Price(%q, %d) = %d, want %d", tc.optionID, tc.subtotal, got, tc.want)
		}
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultTariff())
	first := calc.Price(OptionExpress, 1234)
	for i := 0; i < 10; i++ {
		if got := calc.Price(OptionExpress, 1234); got != first {
			t.Fatalf("expected stable price, got %d then %d", first, got)
		}
	}
}

func TestEstimatedDeliveryOffsets(t *testing.T) {
	pinClock(t, time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local))
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		optionID string
		wantDay  int
	}{
		{OptionStandard, 15},
		{OptionExpress, 12},
		{OptionSameDay, 10},
		{"bogus-option", 13},
	}
	for _, tc := range cases {
		got := calc.EstimatedDelivery(tc.optionID)
		if got.Day() != tc.wantDay || got.Month() != time.June {
			t.Fatalf("EstimatedDelivery(%q) = %v, want June %d", tc.optionID, got, tc.wantDay)
		}
	}
}

func TestIsValidPickupDateWindow(t *testing.T) {
	pinClock(t, time.Date(2025, 6, 10, 9, 30, 0, 0, time.Local))

	cases := []struct {
		date string
		want bool
	}{
		{"2025-06-10", false}, // today, not strictly future
		{"2025-06-11", true},  // tomorrow
		{"2025-06-24", true},  // 14 days out
		{"2025-06-25", false}, // 15 days out
		{"2025-06-01", false}, // past
		{"not-a-date", false},
	}
	for _, tc := range cases {
		if got := IsValidPickupDate(tc.date); got != tc.want {
			t.Fatalf("IsValidPickupDate(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestAvailablePickupDates(t *testing.T) {
	pinClock(t, time.Date(2025, 6, 10, 22, 0, 0, 0, time.Local))

	dates := AvailablePickupDates()
	if len(dates) != 14 {
		t.Fatalf("expected 14 dates, got %d", len(dates))
	}
	if FormatDateForInput(dates[0]) != "2025-06-11" {
		t.Fatalf("expected first date 2025-06-11, got %s", FormatDateForInput(dates[0]))
	}
	if FormatDateForInput(dates[13]) != "2025-06-24" {
		t.Fatalf("expected last date 2025-06-24, got %s", FormatDateForInput(dates[13]))
	}
	for _, d := range dates {
		if !IsValidPickupDate(FormatDateForInput(d)) {
			t.Fatalf("offered date %s is not valid", FormatDateForInput(d))
		}
	}
}

func TestIsComplete(t *testing.T) {
	pinClock(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local))

	cases := []struct {
		name     string
		schedule *Schedule
		want     bool
	}{
		{"nil", nil, false},
		{"delivery", &Schedule{Method: MethodDelivery}, true},
		{"pickup without date or slot", &Schedule{Method: MethodPickup}, false},
		{"pickup without slot", &Schedule{Method: MethodPickup, PickupDate: "2025-06-11"}, false},
		{"pickup complete", &Schedule{Method: MethodPickup, PickupDate: "2025-06-11", TimeSlot: SlotMorning}, true},
		{"pickup date out of window", &Schedule{Method: MethodPickup, PickupDate: "2025-06-25", TimeSlot: SlotMorning}, false},
	}
	for _, tc := range cases {
		if got := IsComplete(tc.schedule); got != tc.want {
			t.Fatalf("%s: IsComplete = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(nil); got != "Not selected" {
		t.Fatalf("unexpected summary %q", got)
	}

	if got := Summary(&Schedule{Method: MethodDelivery}); !strings.HasPrefix(got, "Local Delivery") {
		t.Fatalf("unexpected delivery summary %q", got)
	}

	if got := Summary(&Schedule{Method: MethodPickup}); got != "Pickup at Honor Stand (time not selected)" {
		t.Fatalf("unexpected incomplete pickup summary %q", got)
	}

	got := Summary(&Schedule{Method: MethodPickup, PickupDate: "2025-06-11", TimeSlot: SlotAnytime})
	if !strings.Contains(got, "Jun 11") || !strings.Contains(got, "Anytime (24/7 access)") {
		t.Fatalf("unexpected anytime summary %q", got)
	}

	got = Summary(&Schedule{Method: MethodPickup, PickupDate: "2025-06-11", TimeSlot: SlotMorning})
	if !strings.Contains(got, "Morning") || !strings.Contains(got, "8:00 AM - 12:00 PM") {
		t.Fatalf("unexpected morning summary %q", got)
	}
}

func TestFromCart(t *testing.T) {
	if got := FromCart(nil); got != nil {
		t.Fatalf("expected nil schedule for nil cart")
	}
	if got := FromCart(&domain.Cart{}); got != nil {
		t.Fatalf("expected nil schedule without metadata")
	}

	cart := &domain.Cart{Metadata: map[string]interface{}{
		"fulfillment": map[string]interface{}{
			"method":     "pickup",
			"pickupDate": "2025-06-11",
			"timeSlot":   "evening",
			"notes":      "leave by the gate",
		},
	}}
	got := FromCart(cart)
	if got == nil {
		t.Fatalf("expected schedule")
	}
	if got.Method != MethodPickup || got.PickupDate != "2025-06-11" || got.TimeSlot != SlotEvening || got.Notes != "leave by the gate" {
		t.Fatalf("unexpected schedule %+v", got)
	}

	nulled := &domain.Cart{Metadata: map[string]interface{}{"fulfillment": nil}}
	if got := FromCart(nulled); got != nil {
		t.Fatalf("expected nil schedule for nulled field, got %+v", got)
	}
}

type stubUpdater struct {
	cart       *domain.Cart
	err        error
	lastCartID string
	lastUpdate medusa.CartUpdate
}

func (s *stubUpdater) UpdateCart(_ context.Context, cartID string, in medusa.CartUpdate) (*domain.Cart, error) {
	s.lastCartID = cartID
	s.lastUpdate = in
	return s.cart, s.err
}

func TestUpdateSchedulePatchesMetadata(t *testing.T) {
	updater := &stubUpdater{cart: &domain.Cart{ID: "cart_1"}}
	schedule := &Schedule{Method: MethodPickup, PickupDate: "2025-06-11", TimeSlot: SlotMorning}

	got, err := UpdateSchedule(context.Background(), updater, "cart_1", schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updater.cart || updater.lastCartID != "cart_1" {
		t.Fatalf("unexpected update call")
	}
	if updater.lastUpdate.Metadata["fulfillment"] != schedule {
		t.Fatalf("schedule not written to metadata: %+v", updater.lastUpdate)
	}
}

func TestClearScheduleNullsMetadata(t *testing.T) {
	updater := &stubUpdater{cart: &domain.Cart{ID: "cart_1"}}

	_, err := ClearSchedule(context.Background(), updater, "cart_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, present := updater.lastUpdate.Metadata["fulfillment"]
	if !present || value != nil {
		t.Fatalf("expected nulled fulfillment field, got %+v", updater.lastUpdate.Metadata)
	}
}
