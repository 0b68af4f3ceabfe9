package service

import (
	"strings"
	"time"

	"github.com/nurpe/ecosweep/internal/model"
)

type ReceiptGenerator interface {
	Generate(receipt model.Receipt) ([]byte, error)
}

type StatementGenerator interface {
	Generate(statement model.PaymentStatement) ([]byte, error)
}

type Document struct {
	FileName string
	Content  []byte
}

const dateLayout = "2006-01-02"

func parseDay(raw string) (time.Time, bool) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
