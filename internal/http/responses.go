package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/ecosweep/internal/model"
)

type bookingResponse struct {
	ID         uuid.UUID           `json:"id"`
	CustomerID uuid.UUID           `json:"customer_id"`
	PickupDate string              `json:"pickup_date"`
	SlotID     string              `json:"slot_id"`
	SlotStart  string              `json:"slot_start"`
	SlotEnd    string              `json:"slot_end"`
	Collector  string              `json:"collector"`
	Address    string              `json:"address,omitempty"`
	WasteTypes []string            `json:"waste_types"`
	Subtotal   float64             `json:"subtotal"`
	Tax        float64             `json:"tax"`
	Total      float64             `json:"total"`
	Currency   string              `json:"currency"`
	Status     model.BookingStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

func toBookingResponse(b model.Booking) bookingResponse {
	wasteTypes := b.WasteTypes
	if wasteTypes == nil {
		wasteTypes = []string{}
	}
	return bookingResponse{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		PickupDate: b.PickupDate.Format("2006-01-02"),
		SlotID:     b.SlotID,
		SlotStart:  b.SlotStart,
		SlotEnd:    b.SlotEnd,
		Collector:  b.Collector,
		Address:    b.Address,
		WasteTypes: wasteTypes,
		Subtotal:   b.Subtotal,
		Tax:        b.Tax,
		Total:      b.Total,
		Currency:   b.Currency,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

type paymentResponse struct {
	ID             uuid.UUID           `json:"id"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	Reference      string              `json:"reference"`
	Months         int                 `json:"months"`
	ServiceFee     float64             `json:"service_fee"`
	AdditionalCost float64             `json:"additional_services"`
	Subtotal       float64             `json:"subtotal"`
	Tax            float64             `json:"tax"`
	Total          float64             `json:"total"`
	Currency       string              `json:"currency"`
	Status         model.PaymentStatus `json:"status"`
	PaidAt         time.Time           `json:"paid_at"`
}

func toPaymentResponse(p model.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		Reference:      p.Reference,
		Months:         p.Months,
		ServiceFee:     p.ServiceFee,
		AdditionalCost: p.AdditionalCost,
		Subtotal:       p.Subtotal,
		Tax:            p.Tax,
		Total:          p.Total,
		Currency:       p.Currency,
		Status:         p.Status,
		PaidAt:         p.PaidAt,
	}
}
