package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "SCHEDULED"
	BookingStatusCollected BookingStatus = "COLLECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a special pickup reserved in one of the daily slots.
type Booking struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	PickupDate time.Time
	SlotID     string
	SlotStart  string
	SlotEnd    string
	Collector  string
	Address    string
	WasteTypes []string
	Subtotal   float64
	Tax        float64
	Total      float64
	Currency   string
	Status     BookingStatus
	CreatedAt  time.Time
}
