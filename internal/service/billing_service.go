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
	"github.com/nurpe/ecosweep/internal/config"
	"github.com/nurpe/ecosweep/internal/model"
)

type PaymentStore interface {
	Create(ctx context.Context, payment model.Payment) (*model.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListForPeriod(ctx context.Context, customerID *uuid.UUID, from, to time.Time) ([]model.Payment, error)
}

type BillingService struct {
	repo       PaymentStore
	receipts   ReceiptGenerator
	statements StatementGenerator
	maxMonths  int
	now        func() time.Time
}

type PayBillInput struct {
	Principal model.Principal
	Months    int
	Services  []billing.AdditionalService
}

type ExportStatementInput struct {
	Principal   model.Principal
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func NewBillingService(
	repo PaymentStore,
	receipts ReceiptGenerator,
	statements StatementGenerator,
	cfg *config.Config,
) *BillingService {
	return &BillingService{
		repo:       repo,
		receipts:   receipts,
		statements: statements,
		maxMonths:  cfg.Billing.MaxMonths,
		now:        time.Now,
	}
}

func (s *BillingService) Quote(months int, services []billing.AdditionalService) billing.MonthlyCalculation {
	return billing.ComputeMonthlyBill(months, services)
}

func (s *BillingService) Pay(ctx context.Context, input PayBillInput) (*model.Payment, error) {
	if !input.Principal.IsCustomer() {
		return nil, ErrPermissionDenied
	}
	if input.Months < 1 || input.Months > s.maxMonths {
		return nil, fmt.Errorf("%w: months must be between 1 and %d", ErrInvalidInput, s.maxMonths)
	}

	bill := billing.ComputeMonthlyBill(input.Months, input.Services)
	paidAt := s.now().UTC()

	return s.repo.Create(ctx, model.Payment{
		CustomerID:     input.Principal.UserID,
		Reference:      newReference(paidAt),
		Months:         bill.Breakdown.Months,
		ServiceFee:     bill.Breakdown.ServiceFee,
		AdditionalCost: bill.Breakdown.AdditionalServices,
		Subtotal:       bill.Subtotal,
		Tax:            bill.Tax,
		Total:          bill.Total,
		Currency:       bill.Currency,
		Status:         model.PaymentStatusPaid,
		PaidAt:         paidAt,
	})
}

func (s *BillingService) Receipt(ctx context.Context, principal model.Principal, id uuid.UUID) (*Document, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsAdmin() && payment.CustomerID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	content, err := s.receipts.Generate(paymentReceipt(*payment))
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName: fmt.Sprintf("payment-%s.pdf", sanitizeFileName(payment.Reference)),
		Content:  content,
	}, nil
}

func (s *BillingService) ExportStatement(ctx context.Context, input ExportStatementInput) (*Document, error) {
	var customerID *uuid.UUID
	switch {
	case input.Principal.IsAdmin():
	case input.Principal.IsCustomer():
		id := input.Principal.UserID
		customerID = &id
	default:
		return nil, ErrPermissionDenied
	}

	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}
	periodStart := dateOnly(input.PeriodStart)
	periodEnd := dateOnly(input.PeriodEnd)
	if periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period_start must be before or equal to period_end", ErrInvalidInput)
	}
	endExclusive := periodEnd.Add(24 * time.Hour)

	payments, err := s.repo.ListForPeriod(ctx, customerID, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}

	content, err := s.statements.Generate(model.PaymentStatement{
		CustomerID:  customerID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Payments:    payments,
	})
	if err != nil {
		return nil, err
	}

	scope := "all"
	if customerID != nil {
		scope = customerID.String()[:8]
	}
	return &Document{
		FileName: fmt.Sprintf("payments-%s-%s-%s.xlsx", scope, periodStart.Format("20060102"), periodEnd.Format("20060102")),
		Content:  content,
	}, nil
}

func paymentReceipt(payment model.Payment) model.Receipt {
	lines := []model.ReceiptLine{{
		Description: fmt.Sprintf("Monthly collection service (%d x %s)", payment.Months, billing.FormatUSD(billing.BaseMonthlyFee)),
		Amount:      payment.ServiceFee,
	}}
	if payment.AdditionalCost > 0 {
		lines = append(lines, model.ReceiptLine{Description: "Additional services", Amount: payment.AdditionalCost})
	}

	return model.Receipt{
		Title:     "Monthly Bill Receipt",
		Reference: payment.Reference,
		IssuedAt:  payment.PaidAt,
		Customer:  payment.CustomerID.String(),
		Details: []string{
			fmt.Sprintf("Billing months: %d", payment.Months),
			fmt.Sprintf("Status: %s", payment.Status),
		},
		Lines:    lines,
		Subtotal: payment.Subtotal,
		TaxRate:  billing.TaxRate,
		Tax:      payment.Tax,
		Total:    payment.Total,
		Currency: payment.Currency,
	}
}

func newReference(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PAY-%s-%s", at.Format("20060102"), suffix)
}
