package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/ecosweep/internal/billing"
	"github.com/nurpe/ecosweep/internal/config"
	"github.com/nurpe/ecosweep/internal/model"
	"github.com/nurpe/ecosweep/internal/slots"
)

type memoryBookings struct {
	items map[uuid.UUID]model.Booking
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{items: map[uuid.UUID]model.Booking{}}
}

func (m *memoryBookings) Create(_ context.Context, booking model.Booking) (*model.Booking, error) {
	for _, existing := range m.items {
		if existing.SlotID == booking.SlotID && existing.CustomerID == booking.CustomerID &&
			existing.Status != model.BookingStatusCancelled {
			return nil, fmt.Errorf("%w: uq_pickup_bookings_slot", gorm.ErrDuplicatedKey)
		}
	}
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	m.items[booking.ID] = booking
	return &booking, nil
}

func (m *memoryBookings) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &booking, nil
}

func (m *memoryBookings) ListByDate(_ context.Context, date time.Time, customerID *uuid.UUID) ([]model.Booking, error) {
	var result []model.Booking
	for _, booking := range m.items {
		if !booking.PickupDate.Equal(date) {
			continue
		}
		if customerID != nil && booking.CustomerID != *customerID {
			continue
		}
		result = append(result, booking)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotStart < result[j].SlotStart })
	return result, nil
}

type memoryPayments struct {
	items []model.Payment
	from  time.Time
	to    time.Time
}

func (m *memoryPayments) Create(_ context.Context, payment model.Payment) (*model.Payment, error) {
	payment.ID = uuid.New()
	m.items = append(m.items, payment)
	return &payment, nil
}

func (m *memoryPayments) GetByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	for _, payment := range m.items {
		if payment.ID == id {
			return &payment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryPayments) ListForPeriod(_ context.Context, customerID *uuid.UUID, from, to time.Time) ([]model.Payment, error) {
	m.from, m.to = from, to
	var result []model.Payment
	for _, payment := range m.items {
		if payment.PaidAt.Before(from) || !payment.PaidAt.Before(to) {
			continue
		}
		if customerID != nil && payment.CustomerID != *customerID {
			continue
		}
		result = append(result, payment)
	}
	return result, nil
}

type captureReceipts struct {
	last model.Receipt
}

func (c *captureReceipts) Generate(receipt model.Receipt) ([]byte, error) {
	c.last = receipt
	return []byte("%PDF"), nil
}

type captureStatements struct {
	last model.PaymentStatement
}

func (c *captureStatements) Generate(statement model.PaymentStatement) ([]byte, error) {
	c.last = statement
	return []byte("xlsx"), nil
}

var fixedNow = time.Date(2025, time.February, 20, 9, 30, 0, 0, time.UTC)

func customer() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleCustomer}
}

func newPickupService() (*PickupService, *memoryBookings, *captureReceipts) {
	repo := newMemoryBookings()
	receipts := &captureReceipts{}
	svc := NewPickupService(repo, receipts)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, receipts
}

func slotWithStatus(t *testing.T, date string, status slots.Status) slots.TimeSlot {
	t.Helper()
	for _, slot := range slots.Generate(date) {
		if slot.Status == status {
			return slot
		}
	}
	t.Fatalf("no %s slot on %s", status, date)
	return slots.TimeSlot{}
}

func TestPickupBook(t *testing.T) {
	svc, repo, _ := newPickupService()
	principal := customer()
	// 2025-03-01 has slot 0 booked and slot 1 available.
	booking, err := svc.Book(context.Background(), BookPickupInput{
		Principal:  principal,
		Date:       "2025-03-01",
		SlotID:     "2025-03-01-1",
		Address:    " 12 Green St ",
		WasteTypes: []string{"hazardous", "bogus", "electronic", "", "general"},
	})
	require.NoError(t, err)

	assert.Equal(t, principal.UserID, booking.CustomerID)
	assert.Equal(t, []string{"hazardous", "electronic", "general"}, booking.WasteTypes)
	assert.InDelta(t, 75, booking.Subtotal, 1e-9)
	assert.InDelta(t, 6, booking.Tax, 1e-9)
	assert.InDelta(t, 81, booking.Total, 1e-9)
	assert.Equal(t, "10:00", booking.SlotStart)
	assert.Equal(t, "EcoSweep Team B", booking.Collector)
	assert.Equal(t, "12 Green St", booking.Address)
	assert.Equal(t, model.BookingStatusScheduled, booking.Status)
	assert.Len(t, repo.items, 1)
}

func TestPickupBookRejects(t *testing.T) {
	svc, _, _ := newPickupService()
	principal := customer()
	booked := slotWithStatus(t, "2025-03-01", slots.StatusBooked)

	cases := []struct {
		name  string
		input BookPickupInput
		err   error
	}{
		{"cleaner", BookPickupInput{Principal: model.Principal{UserID: uuid.New(), Role: model.RoleCleaner}, Date: "2025-03-01", SlotID: "2025-03-01-1", WasteTypes: []string{"paper"}}, ErrPermissionDenied},
		{"bad date", BookPickupInput{Principal: principal, Date: "03/01/2025", SlotID: "2025-03-01-1", WasteTypes: []string{"paper"}}, ErrInvalidInput},
		{"past date", BookPickupInput{Principal: principal, Date: "2025-02-19", SlotID: "2025-02-19-1", WasteTypes: []string{"paper"}}, ErrInvalidInput},
		{"unknown slot", BookPickupInput{Principal: principal, Date: "2025-03-01", SlotID: "2025-03-01-9", WasteTypes: []string{"paper"}}, ErrInvalidInput},
		{"slot from another day", BookPickupInput{Principal: principal, Date: "2025-03-01", SlotID: "2025-03-02-1", WasteTypes: []string{"paper"}}, ErrInvalidInput},
		{"booked slot", BookPickupInput{Principal: principal, Date: "2025-03-01", SlotID: booked.ID, WasteTypes: []string{"paper"}}, ErrSlotUnavailable},
		{"no waste types", BookPickupInput{Principal: principal, Date: "2025-03-01", SlotID: "2025-03-01-1", WasteTypes: []string{"", "bogus"}}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestPickupBookSameSlotTwice(t *testing.T) {
	svc, repo, _ := newPickupService()
	principal := customer()
	input := BookPickupInput{
		Principal: principal, Date: "2025-03-01", SlotID: "2025-03-01-1", WasteTypes: []string{"paper"},
	}
	_, err := svc.Book(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), input)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, repo.items, 1)
}

func TestPickupBookToday(t *testing.T) {
	svc, _, _ := newPickupService()
	slot := slotWithStatus(t, "2025-02-20", slots.StatusAvailable)
	_, err := svc.Book(context.Background(), BookPickupInput{
		Principal:  customer(),
		Date:       "2025-02-20",
		SlotID:     slot.ID,
		WasteTypes: []string{"glass"},
	})
	require.NoError(t, err)
}

func TestPickupListScopesCustomers(t *testing.T) {
	svc, _, _ := newPickupService()
	alice, bob := customer(), customer()
	for _, principal := range []model.Principal{alice, bob} {
		_, err := svc.Book(context.Background(), BookPickupInput{
			Principal: principal, Date: "2025-03-01", SlotID: "2025-03-01-1", WasteTypes: []string{"metal"},
		})
		require.NoError(t, err)
	}

	own, err := svc.List(context.Background(), alice, "2025-03-01")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.UserID, own[0].CustomerID)

	all, err := svc.List(context.Background(), model.Principal{UserID: uuid.New(), Role: model.RoleCleaner}, "2025-03-01")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(context.Background(), alice, "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPickupReceipt(t *testing.T) {
	svc, _, receipts := newPickupService()
	owner := customer()
	booking, err := svc.Book(context.Background(), BookPickupInput{
		Principal: owner, Date: "2025-03-01", SlotID: "2025-03-01-1", WasteTypes: []string{"paper", "paper"},
	})
	require.NoError(t, err)

	doc, err := svc.Receipt(context.Background(), owner, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "pickup-20250301-2025-03-01-1.pdf", doc.FileName)
	assert.Regexp(t, `^PICK-20250301-[0-9A-F]{8}$`, receipts.last.Reference)
	assert.Contains(t, receipts.last.Details, "Time slot: 10:00 - 12:00")
	require.Len(t, receipts.last.Lines, 2)
	assert.Equal(t, "Paper", receipts.last.Lines[0].Description)
	assert.InDelta(t, 17.28, receipts.last.Total, 1e-9)

	_, err = svc.Receipt(context.Background(), customer(), booking.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Receipt(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPickupSlots(t *testing.T) {
	svc, _, _ := newPickupService()
	got, err := svc.Slots("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, slots.Generate("2024-01-15"), got)

	_, err = svc.Slots("2024-13-45")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func newBillingService() (*BillingService, *memoryPayments, *captureReceipts, *captureStatements) {
	repo := &memoryPayments{}
	receipts := &captureReceipts{}
	statements := &captureStatements{}
	svc := NewBillingService(repo, receipts, statements, &config.Config{Billing: config.BillingConfig{MaxMonths: 12}})
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, receipts, statements
}

func TestBillingPay(t *testing.T) {
	svc, _, _, _ := newBillingService()
	principal := customer()
	extra := 50.0

	payment, err := svc.Pay(context.Background(), PayBillInput{
		Principal: principal,
		Months:    1,
		Services:  []billing.AdditionalService{{Name: "Extra Bin", Fee: &extra}, {Name: "Bin Cleaning"}},
	})
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, payment.CustomerID)
	assert.InDelta(t, 300, payment.ServiceFee, 1e-9)
	assert.InDelta(t, 55, payment.AdditionalCost, 1e-9)
	assert.InDelta(t, 355, payment.Subtotal, 1e-9)
	assert.InDelta(t, 28.4, payment.Tax, 1e-9)
	assert.InDelta(t, 383.4, payment.Total, 1e-9)
	assert.Equal(t, model.PaymentStatusPaid, payment.Status)
	assert.Equal(t, fixedNow, payment.PaidAt)
	assert.Regexp(t, `^PAY-20250220-[0-9A-F]{8}$`, payment.Reference)
}

func TestBillingPayRejects(t *testing.T) {
	svc, _, _, _ := newBillingService()

	_, err := svc.Pay(context.Background(), PayBillInput{Principal: model.Principal{Role: model.RoleAdmin}, Months: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	for _, months := range []int{0, -3, 13} {
		_, err := svc.Pay(context.Background(), PayBillInput{Principal: customer(), Months: months})
		assert.ErrorIs(t, err, ErrInvalidInput, "months=%d", months)
	}
}

func TestBillingQuoteClampsMonths(t *testing.T) {
	svc, _, _, _ := newBillingService()
	got := svc.Quote(-5, nil)
	assert.Zero(t, got.Total)
}

func TestBillingReceipt(t *testing.T) {
	svc, _, receipts, _ := newBillingService()
	owner := customer()
	payment, err := svc.Pay(context.Background(), PayBillInput{Principal: owner, Months: 3})
	require.NoError(t, err)

	doc, err := svc.Receipt(context.Background(), owner, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "payment-"+payment.Reference+".pdf", doc.FileName)
	require.Len(t, receipts.last.Lines, 1)
	assert.InDelta(t, 972, receipts.last.Total, 1e-9)

	_, err = svc.Receipt(context.Background(), model.Principal{UserID: uuid.New(), Role: model.RoleCleaner}, payment.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Receipt(context.Background(), model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}, payment.ID)
	assert.NoError(t, err)
}

func TestBillingExportStatement(t *testing.T) {
	svc, repo, _, statements := newBillingService()
	owner := customer()
	_, err := svc.Pay(context.Background(), PayBillInput{Principal: owner, Months: 1})
	require.NoError(t, err)
	_, err = svc.Pay(context.Background(), PayBillInput{Principal: customer(), Months: 2})
	require.NoError(t, err)

	start := time.Date(2025, time.February, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)

	doc, err := svc.ExportStatement(context.Background(), ExportStatementInput{Principal: owner, PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)
	assert.Equal(t, "payments-"+owner.UserID.String()[:8]+"-20250201-20250220.xlsx", doc.FileName)
	assert.Len(t, statements.last.Payments, 1)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2025, time.February, 21, 0, 0, 0, 0, time.UTC), repo.to)

	doc, err = svc.ExportStatement(context.Background(), ExportStatementInput{
		Principal: model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}, PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)
	assert.Equal(t, "payments-all-20250201-20250220.xlsx", doc.FileName)
	assert.Len(t, statements.last.Payments, 2)

	_, err = svc.ExportStatement(context.Background(), ExportStatementInput{Principal: owner, PeriodStart: end, PeriodEnd: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ExportStatement(context.Background(), ExportStatementInput{
		Principal: model.Principal{Role: model.RoleCleaner}, PeriodStart: start, PeriodEnd: end,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestStoreErrorsPropagate(t *testing.T) {
	failing := errors.New("connection reset")
	svc := NewPickupService(failingBookings{err: failing}, &captureReceipts{})
	_, err := svc.Receipt(context.Background(), customer(), uuid.New())
	assert.ErrorIs(t, err, failing)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type failingBookings struct {
	BookingStore
	err error
}

func (f failingBookings) GetByID(context.Context, uuid.UUID) (*model.Booking, error) {
	return nil, f.err
}
