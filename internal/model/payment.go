package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Payment records a settled monthly bill.
type Payment struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	Reference      string
	Months         int
	ServiceFee     float64
	AdditionalCost float64
	Subtotal       float64
	Tax            float64
	Total          float64
	Currency       string
	Status         PaymentStatus
	PaidAt         time.Time
	CreatedAt      time.Time
}

type PaymentStatement struct {
	CustomerID  *uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	Payments    []Payment
}
