package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nurpe/ecosweep/internal/model"
)

func TestBookingRowToModelWasteTypes(t *testing.T) {
	cases := []struct {
		name   string
		stored string
		want   []string
	}{
		{"empty", "", nil},
		{"single", "paper", []string{"paper"}},
		{"several", "hazardous,electronic,hazardous", []string{"hazardous", "electronic", "hazardous"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bookingRow{WasteTypes: tc.stored}.toModel()
			assert.Equal(t, tc.want, got.WasteTypes)
		})
	}
}

func TestBookingRowToModelFields(t *testing.T) {
	row := bookingRow{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		PickupDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		SlotID:     "2025-03-01-1",
		SlotStart:  "10:00",
		SlotEnd:    "12:00",
		Collector:  "EcoSweep Team B",
		Address:    "12 Green St",
		WasteTypes: "paper,glass",
		Subtotal:   23,
		Tax:        1.84,
		Total:      24.84,
		Currency:   "USD",
		Status:     model.BookingStatusScheduled,
	}

	got := row.toModel()
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, row.CustomerID, got.CustomerID)
	assert.Equal(t, row.SlotID, got.SlotID)
	assert.Equal(t, "10:00", got.SlotStart)
	assert.Equal(t, "12:00", got.SlotEnd)
	assert.Equal(t, []string{"paper", "glass"}, got.WasteTypes)
	assert.Equal(t, 24.84, got.Total)
	assert.Equal(t, model.BookingStatusScheduled, got.Status)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uq_pickup_bookings_slot"}
	err := translateError(unique)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Contains(t, err.Error(), "uq_pickup_bookings_slot")

	wrapped := translateError(fmt.Errorf("insert booking: %w", unique))
	assert.ErrorIs(t, wrapped, gorm.ErrDuplicatedKey)

	assert.Equal(t, gorm.ErrDuplicatedKey, translateError(gorm.ErrDuplicatedKey))

	foreignKey := &pgconn.PgError{Code: "23503"}
	assert.Same(t, foreignKey, translateError(foreignKey))

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other))
	assert.NotErrorIs(t, translateError(other), gorm.ErrDuplicatedKey)
}
