package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/ecosweep/internal/model"
)

const paymentColumns = `
	id,
	customer_id,
	reference,
	months,
	service_fee,
	additional_cost,
	subtotal,
	tax,
	total,
	currency,
	status,
	paid_at,
	created_at
`

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment model.Payment) (*model.Payment, error) {
	var saved model.Payment
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO bill_payments (
			customer_id,
			reference,
			months,
			service_fee,
			additional_cost,
			subtotal,
			tax,
			total,
			currency,
			status,
			paid_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+paymentColumns,
		payment.CustomerID,
		payment.Reference,
		payment.Months,
		payment.ServiceFee,
		payment.AdditionalCost,
		payment.Subtotal,
		payment.Tax,
		payment.Total,
		payment.Currency,
		payment.Status,
		payment.PaidAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+paymentColumns+`
		FROM bill_payments
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

// ListForPeriod returns payments with paid_at in [from, to).
func (r *PaymentRepository) ListForPeriod(
	ctx context.Context,
	customerID *uuid.UUID,
	from, to time.Time,
) ([]model.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM bill_payments
		WHERE paid_at >= ?
			AND paid_at < ?
	`
	args := []interface{}{from, to}
	if customerID != nil {
		query += " AND customer_id = ?"
		args = append(args, *customerID)
	}
	query += " ORDER BY paid_at ASC"

	var payments []model.Payment
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
