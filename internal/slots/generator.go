package slots

import (
	"fmt"
	"strconv"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

// bookedThreshold is the share of slots reported as already booked.
const bookedThreshold = 0.25

type TimeSlot struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Priority  Priority `json:"priority"`
	Status    Status   `json:"status"`
	Collector string   `json:"collector"`
}

func (s TimeSlot) Available() bool {
	return s.Status == StatusAvailable
}

type baseSlot struct {
	start    string
	end      string
	priority Priority
}

var baseSlots = []baseSlot{
	{start: "08:00", end: "10:00", priority: PriorityHigh},
	{start: "10:00", end: "12:00", priority: PriorityMedium},
	{start: "12:00", end: "14:00", priority: PriorityLow},
	{start: "14:00", end: "16:00", priority: PriorityHigh},
	{start: "16:00", end: "18:00", priority: PriorityMedium},
	{start: "18:00", end: "20:00", priority: PriorityLow},
}

var collectors = []string{
	"EcoSweep Team A",
	"EcoSweep Team B",
	"EcoSweep Team C",
	"EcoSweep Team D",
}

// SlotsPerDay is the fixed number of slots generated for every date.
var SlotsPerDay = len(baseSlots)

// Generate returns the six pickup slots for a YYYY-MM-DD date. The result
// depends only on the date: the same input always yields the same statuses
// and the same collector team.
func Generate(dateISO string) []TimeSlot {
	rng := newMulberry32(seedFromDate(dateISO))
	collector := collectors[int(rng.Float64()*float64(len(collectors)))]

	result := make([]TimeSlot, 0, len(baseSlots))
	for i, base := range baseSlots {
		status := StatusAvailable
		if rng.Float64() < bookedThreshold {
			status = StatusBooked
		}
		result = append(result, TimeSlot{
			ID:        fmt.Sprintf("%s-%d", dateISO, i),
			Date:      dateISO,
			Start:     base.start,
			End:       base.end,
			Priority:  base.priority,
			Status:    status,
			Collector: collector,
		})
	}
	return result
}

// seedFromDate strips the dashes and parses the leading run of digits.
// Values that do not parse, or parse to zero, fall back to 1.
func seedFromDate(dateISO string) uint32 {
	digits := strings.ReplaceAll(strings.TrimSpace(dateISO), "-", "")
	end := strings.IndexFunc(digits, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if end >= 0 {
		digits = digits[:end]
	}

	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || uint32(value) == 0 {
		return 1
	}
	return uint32(value)
}
