package http

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/ecosweep/internal/billing"
	"github.com/nurpe/ecosweep/internal/http/middleware"
	"github.com/nurpe/ecosweep/internal/service"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	pickups *service.PickupService
	billing *service.BillingService
	log     zerolog.Logger
}

func NewHandler(pickups *service.PickupService, billing *service.BillingService, log zerolog.Logger) *Handler {
	return &Handler{pickups: pickups, billing: billing, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)
	router.GET("/waste-types", h.listWasteTypes)
	router.GET("/waste-types/:key", h.getWasteType)
	router.POST("/quotes/special-pickup", h.quoteSpecialPickup)
	router.POST("/quotes/monthly", h.quoteMonthly)
	router.GET("/slots", h.listSlots)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/bookings", h.createBooking)
	protected.GET("/bookings", h.listBookings)
	protected.GET("/bookings/:id/receipt", h.bookingReceipt)
	protected.POST("/payments", h.createPayment)
	protected.GET("/payments/:id/receipt", h.paymentReceipt)
	protected.POST("/payments/export", h.exportPayments)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listWasteTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": billing.WasteTypes()})
}

func (h *Handler) getWasteType(c *gin.Context) {
	c.JSON(http.StatusOK, billing.LookupWasteType(c.Param("key")))
}

type specialPickupQuoteRequest struct {
	WasteTypes billing.Keys `json:"waste_types"`
}

func (h *Handler) quoteSpecialPickup(c *gin.Context) {
	var req specialPickupQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.pickups.Quote(req.WasteTypes))
}

type monthlyQuoteRequest struct {
	Months             interface{}      `json:"months"`
	AdditionalServices billing.Services `json:"additional_services"`
}

func (h *Handler) quoteMonthly(c *gin.Context) {
	var req monthlyQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.billing.Quote(parseMonths(req.Months), req.AdditionalServices))
}

func (h *Handler) listSlots(c *gin.Context) {
	result, err := h.pickups.Slots(c.Query("date"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type createBookingRequest struct {
	Date       string       `json:"date" binding:"required"`
	SlotID     string       `json:"slot_id" binding:"required"`
	Address    string       `json:"address"`
	WasteTypes billing.Keys `json:"waste_types"`
}

func (h *Handler) createBooking(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.pickups.Book(c.Request.Context(), service.BookPickupInput{
		Principal:  principal,
		Date:       req.Date,
		SlotID:     req.SlotID,
		Address:    req.Address,
		WasteTypes: req.WasteTypes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(*booking))
}

func (h *Handler) listBookings(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	bookings, err := h.pickups.List(c.Request.Context(), principal, c.Query("date"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, toBookingResponse(booking))
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *Handler) bookingReceipt(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	doc, err := h.pickups.Receipt(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendDocument(c, pdfContentType, doc)
}

type createPaymentRequest struct {
	Months             int              `json:"months" binding:"required"`
	AdditionalServices billing.Services `json:"additional_services"`
}

func (h *Handler) createPayment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.billing.Pay(c.Request.Context(), service.PayBillInput{
		Principal: principal,
		Months:    req.Months,
		Services:  req.AdditionalServices,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

func (h *Handler) paymentReceipt(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	doc, err := h.billing.Receipt(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendDocument(c, pdfContentType, doc)
}

type exportPaymentsRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

func (h *Handler) exportPayments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req exportPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return
	}

	doc, err := h.billing.ExportStatement(c.Request.Context(), service.ExportStatementInput{
		Principal:   principal,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendDocument(c, xlsxContentType, doc)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func sendDocument(c *gin.Context, contentType string, doc *service.Document) {
	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	c.Data(http.StatusOK, contentType, doc.Content)
}

// parseMonths accepts any JSON number; everything else counts as zero months.
func parseMonths(raw interface{}) int {
	value, ok := raw.(float64)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	switch {
	case value > math.MaxInt32:
		return math.MaxInt32
	case value < math.MinInt32:
		return math.MinInt32
	}
	return int(value)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
