package model

import "time"

type ReceiptLine struct {
	Description string
	Amount      float64
}

// Receipt is the printable summary of a booking or a payment.
type Receipt struct {
	Title     string
	Reference string
	IssuedAt  time.Time
	Customer  string
	Details   []string
	Lines     []ReceiptLine
	Subtotal  float64
	TaxRate   float64
	Tax       float64
	Total     float64
	Currency  string
}
