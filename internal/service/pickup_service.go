package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/ecosweep/internal/billing"
	"github.com/nurpe/ecosweep/internal/model"
	"github.com/nurpe/ecosweep/internal/slots"
)

type BookingStore interface {
	Create(ctx context.Context, booking model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListByDate(ctx context.Context, date time.Time, customerID *uuid.UUID) ([]model.Booking, error)
}

type PickupService struct {
	repo     BookingStore
	receipts ReceiptGenerator
	now      func() time.Time
}

type BookPickupInput struct {
	Principal  model.Principal
	Date       string
	SlotID     string
	Address    string
	WasteTypes []string
}

func NewPickupService(repo BookingStore, receipts ReceiptGenerator) *PickupService {
	return &PickupService{
		repo:     repo,
		receipts: receipts,
		now:      time.Now,
	}
}

func (s *PickupService) Quote(wasteTypes []string) billing.PickupCalculation {
	return billing.ComputeSpecialPickupFee(wasteTypes)
}

// Slots returns the generated availability for a YYYY-MM-DD date.
func (s *PickupService) Slots(date string) ([]slots.TimeSlot, error) {
	day, ok := parseDay(date)
	if !ok {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return slots.Generate(day.Format(dateLayout)), nil
}

func (s *PickupService) Book(ctx context.Context, input BookPickupInput) (*model.Booking, error) {
	if !input.Principal.IsCustomer() {
		return nil, ErrPermissionDenied
	}

	day, ok := parseDay(input.Date)
	if !ok {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if day.Before(dateOnly(s.now().UTC())) {
		return nil, fmt.Errorf("%w: pickup date is in the past", ErrInvalidInput)
	}

	date := day.Format(dateLayout)
	var slot *slots.TimeSlot
	for _, candidate := range slots.Generate(date) {
		if candidate.ID == strings.TrimSpace(input.SlotID) {
			slot = &candidate
			break
		}
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: unknown slot %q for %s", ErrInvalidInput, input.SlotID, date)
	}
	if !slot.Available() {
		return nil, ErrSlotUnavailable
	}

	quote := billing.ComputeSpecialPickupFee(input.WasteTypes)
	if len(quote.Breakdown) == 0 {
		return nil, fmt.Errorf("%w: select at least one waste type", ErrInvalidInput)
	}

	wasteTypes := make([]string, 0, len(quote.Breakdown))
	for _, entry := range quote.Breakdown {
		wasteTypes = append(wasteTypes, string(entry.Type))
	}

	booking, err := s.repo.Create(ctx, model.Booking{
		CustomerID: input.Principal.UserID,
		PickupDate: day,
		SlotID:     slot.ID,
		SlotStart:  slot.Start,
		SlotEnd:    slot.End,
		Collector:  slot.Collector,
		Address:    strings.TrimSpace(input.Address),
		WasteTypes: wasteTypes,
		Subtotal:   quote.Subtotal,
		Tax:        quote.Tax,
		Total:      quote.Total,
		Currency:   quote.Currency,
		Status:     model.BookingStatusScheduled,
	})
	if err != nil {
		// uq_pickup_bookings_slot: the customer already holds this slot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	return booking, nil
}

// List returns the bookings for a date. Customers only see their own.
func (s *PickupService) List(ctx context.Context, principal model.Principal, date string) ([]model.Booking, error) {
	day, ok := parseDay(date)
	if !ok {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	switch {
	case principal.IsStaff():
		return s.repo.ListByDate(ctx, day, nil)
	case principal.IsCustomer():
		customerID := principal.UserID
		return s.repo.ListByDate(ctx, day, &customerID)
	default:
		return nil, ErrPermissionDenied
	}
}

func (s *PickupService) Receipt(ctx context.Context, principal model.Principal, id uuid.UUID) (*Document, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsStaff() && booking.CustomerID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	content, err := s.receipts.Generate(bookingReceipt(*booking))
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName: fmt.Sprintf("pickup-%s-%s.pdf", booking.PickupDate.Format("20060102"), sanitizeFileName(booking.SlotID)),
		Content:  content,
	}, nil
}

func bookingReceipt(booking model.Booking) model.Receipt {
	lines := make([]model.ReceiptLine, 0, len(booking.WasteTypes))
	for _, key := range booking.WasteTypes {
		info := billing.LookupWasteType(key)
		lines = append(lines, model.ReceiptLine{Description: info.Name, Amount: info.Fee})
	}

	details := []string{
		fmt.Sprintf("Pickup date: %s", booking.PickupDate.Format(dateLayout)),
		fmt.Sprintf("Time slot: %s - %s", booking.SlotStart, booking.SlotEnd),
		fmt.Sprintf("Collector: %s", booking.Collector),
	}
	if booking.Address != "" {
		details = append(details, fmt.Sprintf("Address: %s", booking.Address))
	}

	return model.Receipt{
		Title:     "Special Pickup Receipt",
		Reference: bookingReference(booking),
		IssuedAt:  booking.CreatedAt,
		Customer:  booking.CustomerID.String(),
		Details:   details,
		Lines:     lines,
		Subtotal:  booking.Subtotal,
		TaxRate:   billing.TaxRate,
		Tax:       booking.Tax,
		Total:     booking.Total,
		Currency:  booking.Currency,
	}
}

// bookingReference renders PICK-YYYYMMDD-XXXXXXXX from the pickup date and booking id.
func bookingReference(booking model.Booking) string {
	suffix := strings.ToUpper(strings.ReplaceAll(booking.ID.String(), "-", "")[:8])
	return fmt.Sprintf("PICK-%s-%s", booking.PickupDate.Format("20060102"), suffix)
}
