package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sme-storefront/internal/fulfillment"
)

type fulfillmentOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	EstimatedDate string `json:"estimatedDate"`
}

func fulfillmentOptionsHandler(calc *fulfillment.Calculator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var subtotal int64
		if raw := ctx.Query("subtotal"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "subtotal must be a non-negative integer of cents"})
				return
			}
			subtotal = n
		}

		options := calc.Options()
		out := make([]fulfillmentOption, 0, len(options))
		for _, opt := range options {
			out = append(out, fulfillmentOption{
				ID:            opt.ID,
				Name:          opt.Name,
				Description:   opt.Description,
				Amount:        calc.Price(opt.ID, subtotal),
				EstimatedDate: fulfillment.FormatDateForInput(calc.EstimatedDelivery(opt.ID)),
			})
		}
		ctx.JSON(http.StatusOK, gin.H{"options": out})
	}
}

type pickupDate struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func pickupDatesHandler(ctx *gin.Context) {
	dates := fulfillment.AvailablePickupDates()
	out := make([]pickupDate, 0, len(dates))
	for _, d := range dates {
		value := fulfillment.FormatDateForInput(d)
		out = append(out, pickupDate{Value: value, Label: fulfillment.FormatPickupDate(value)})
	}

	slots := make(map[string]fulfillment.SlotInfo, len(fulfillment.TimeSlots))
	for slot, info := range fulfillment.TimeSlots {
		slots[string(slot)] = info
	}

	ctx.JSON(http.StatusOK, gin.H{"dates": out, "timeSlots": slots})
}
