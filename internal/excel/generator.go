package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/ecosweep/internal/model"
)

const (
	summarySheet  = "Summary"
	paymentsSheet = "Payments"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(statement model.PaymentStatement) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, statement)

	if _, err := file.NewSheet(paymentsSheet); err != nil {
		return nil, err
	}
	g.writePayments(file, statement)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, statement model.PaymentStatement) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	scope := "All customers"
	if statement.CustomerID != nil {
		scope = statement.CustomerID.String()
	}
	totals := sumPayments(statement.Payments)

	set("A1", "Customer")
	set("B1", scope)
	set("A2", "Period start")
	set("B2", formatDate(statement.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(statement.PeriodEnd))
	set("A4", "Payments")
	set("B4", len(statement.Payments))
	set("A5", "Subtotal, USD")
	set("B5", totals.Subtotal)
	set("A6", "Tax, USD")
	set("B6", totals.Tax)
	set("A7", "Total, USD")
	set("B7", totals.Total)

	_ = file.SetColWidth(summarySheet, "A", "A", 20)
	_ = file.SetColWidth(summarySheet, "B", "B", 40)
}

func (g *Generator) writePayments(file *excelize.File, statement model.PaymentStatement) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(paymentsSheet, cell, value)
	}

	headers := []string{
		"Paid at",
		"Reference",
		"Customer",
		"Months",
		"Service fee",
		"Additional services",
		"Subtotal",
		"Tax",
		"Total",
		"Status",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, payment := range statement.Payments {
		row := i + 2
		set(fmt.Sprintf("A%d", row), formatDateTime(payment.PaidAt))
		set(fmt.Sprintf("B%d", row), payment.Reference)
		set(fmt.Sprintf("C%d", row), payment.CustomerID.String())
		set(fmt.Sprintf("D%d", row), payment.Months)
		set(fmt.Sprintf("E%d", row), payment.ServiceFee)
		set(fmt.Sprintf("F%d", row), payment.AdditionalCost)
		set(fmt.Sprintf("G%d", row), payment.Subtotal)
		set(fmt.Sprintf("H%d", row), payment.Tax)
		set(fmt.Sprintf("I%d", row), payment.Total)
		set(fmt.Sprintf("J%d", row), string(payment.Status))
	}

	_ = file.SetColWidth(paymentsSheet, "A", "A", 20)
	_ = file.SetColWidth(paymentsSheet, "B", "C", 38)
	_ = file.SetColWidth(paymentsSheet, "D", "J", 14)
}

type paymentTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

func sumPayments(payments []model.Payment) paymentTotals {
	var totals paymentTotals
	for _, payment := range payments {
		totals.Subtotal += payment.Subtotal
		totals.Tax += payment.Tax
		totals.Total += payment.Total
	}
	return totals
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
