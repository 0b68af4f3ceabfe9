package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'booking_status') THEN
			CREATE TYPE booking_status AS ENUM ('SCHEDULED', 'COLLECTED', 'CANCELLED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN
			CREATE TYPE payment_status AS ENUM ('PAID', 'REFUNDED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS pickup_bookings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL,
		pickup_date DATE NOT NULL,
		slot_id VARCHAR(32) NOT NULL,
		slot_start VARCHAR(5) NOT NULL,
		slot_end VARCHAR(5) NOT NULL,
		collector VARCHAR(64) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		waste_types TEXT NOT NULL,
		subtotal NUMERIC(12,2) NOT NULL,
		tax NUMERIC(12,2) NOT NULL,
		total NUMERIC(12,2) NOT NULL,
		currency CHAR(3) NOT NULL DEFAULT 'USD',
		status booking_status NOT NULL DEFAULT 'SCHEDULED',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pickup_bookings_date ON pickup_bookings (pickup_date);`,
	`CREATE INDEX IF NOT EXISTS idx_pickup_bookings_customer ON pickup_bookings (customer_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_pickup_bookings_slot ON pickup_bookings (slot_id, customer_id) WHERE status <> 'CANCELLED';`,
	`CREATE TABLE IF NOT EXISTS bill_payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL,
		reference VARCHAR(64) NOT NULL,
		months INTEGER NOT NULL,
		service_fee NUMERIC(12,2) NOT NULL,
		additional_cost NUMERIC(12,2) NOT NULL,
		subtotal NUMERIC(12,2) NOT NULL,
		tax NUMERIC(12,2) NOT NULL,
		total NUMERIC(12,2) NOT NULL,
		currency CHAR(3) NOT NULL DEFAULT 'USD',
		status payment_status NOT NULL DEFAULT 'PAID',
		paid_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bill_payments_reference ON bill_payments (reference);`,
	`CREATE INDEX IF NOT EXISTS idx_bill_payments_customer_paid_at ON bill_payments (customer_id, paid_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
