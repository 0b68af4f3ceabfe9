package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/ecosweep/internal/model"
)

const bookingColumns = `
	id,
	customer_id,
	pickup_date,
	slot_id,
	slot_start,
	slot_end,
	collector,
	address,
	waste_types,
	subtotal,
	tax,
	total,
	currency,
	status,
	created_at
`

type bookingRow struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	PickupDate time.Time
	SlotID     string
	SlotStart  string
	SlotEnd    string
	Collector  string
	Address    string
	WasteTypes string
	Subtotal   float64
	Tax        float64
	Total      float64
	Currency   string
	Status     model.BookingStatus
	CreatedAt  time.Time
}

func (r bookingRow) toModel() model.Booking {
	var wasteTypes []string
	if r.WasteTypes != "" {
		wasteTypes = strings.Split(r.WasteTypes, ",")
	}
	return model.Booking{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		PickupDate: r.PickupDate,
		SlotID:     r.SlotID,
		SlotStart:  r.SlotStart,
		SlotEnd:    r.SlotEnd,
		Collector:  r.Collector,
		Address:    r.Address,
		WasteTypes: wasteTypes,
		Subtotal:   r.Subtotal,
		Tax:        r.Tax,
		Total:      r.Total,
		Currency:   r.Currency,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking model.Booking) (*model.Booking, error) {
	var saved bookingRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO pickup_bookings (
			customer_id,
			pickup_date,
			slot_id,
			slot_start,
			slot_end,
			collector,
			address,
			waste_types,
			subtotal,
			tax,
			total,
			currency,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+bookingColumns,
		booking.CustomerID,
		booking.PickupDate,
		booking.SlotID,
		booking.SlotStart,
		booking.SlotEnd,
		booking.Collector,
		booking.Address,
		strings.Join(booking.WasteTypes, ","),
		booking.Subtotal,
		booking.Tax,
		booking.Total,
		booking.Currency,
		booking.Status,
	).Scan(&saved).Error
	if err != nil {
		return nil, translateError(err)
	}
	result := saved.toModel()
	return &result, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var row bookingRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+bookingColumns+`
		FROM pickup_bookings
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	result := row.toModel()
	return &result, nil
}

// ListByDate returns the bookings for a pickup date ordered by slot.
// A nil customerID lists every customer's bookings.
func (r *BookingRepository) ListByDate(ctx context.Context, date time.Time, customerID *uuid.UUID) ([]model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM pickup_bookings
		WHERE pickup_date = ?
	`
	args := []interface{}{date}
	if customerID != nil {
		query += " AND customer_id = ?"
		args = append(args, *customerID)
	}
	query += " ORDER BY slot_start ASC, created_at ASC"

	var rows []bookingRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toModel())
	}
	return result, nil
}
