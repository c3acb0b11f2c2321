package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resort-pms/service-pricing/internal/application"
	"github.com/resort-pms/service-pricing/internal/pkg/response"
)

// RateHandler handles HTTP requests for rate resolution, quotes and the
// package matrix.
type RateHandler struct {
	rates    *application.RateService
	quotes   *application.QuoteService
	packages *application.PackageService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(
	rates *application.RateService,
	quotes *application.QuoteService,
	packages *application.PackageService,
) *RateHandler {
	return &RateHandler{rates: rates, quotes: quotes, packages: packages}
}

// RegisterRoutes registers all rate routes on the given router group.
func (h *RateHandler) RegisterRoutes(r *gin.RouterGroup) {
	rates := r.Group("/api/v1/rates")
	{
		rates.GET("/resolve", h.ResolveRate)
		rates.GET("/calendar", h.ResolveCalendar)

		rates.GET("/overrides", h.ListOverrides)
		rates.POST("/overrides", h.ApplyOverride)
		rates.POST("/overrides/bulk", h.BulkApplyOverrides)
		rates.DELETE("/overrides/:room_type_id/:date", h.DeleteOverride)

		rates.POST("/restrictions", h.ApplyRestriction)
		rates.POST("/restrictions/bulk", h.BulkApplyRestrictions)
		rates.DELETE("/restrictions/:room_type_id/:date", h.DeleteRestriction)
	}

	r.POST("/api/v1/quotes", h.CreateQuote)
	r.GET("/api/v1/packages/matrix", h.ComposeMatrix)
}

// ResolveRate handles GET /api/v1/rates/resolve.
func (h *RateHandler) ResolveRate(c *gin.Context) {
	roomTypeID, ok := queryRoomTypeID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date is required")
		return
	}

	result, err := h.rates.ResolveRate(c.Request.Context(), roomTypeID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ResolveCalendar handles GET /api/v1/rates/calendar.
func (h *RateHandler) ResolveCalendar(c *gin.Context) {
	roomTypeID, ok := queryRoomTypeID(c)
	if !ok {
		return
	}
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		response.BadRequest(c, "from and to are required")
		return
	}

	result, err := h.rates.ResolveCalendar(c.Request.Context(), roomTypeID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOverrides handles GET /api/v1/rates/overrides.
func (h *RateHandler) ListOverrides(c *gin.Context) {
	roomTypeID, ok := queryRoomTypeID(c)
	if !ok {
		return
	}
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		response.BadRequest(c, "from and to are required")
		return
	}

	result, err := h.rates.ListOverrides(c.Request.Context(), roomTypeID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ApplyOverride handles POST /api/v1/rates/overrides.
func (h *RateHandler) ApplyOverride(c *gin.Context) {
	var req application.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.rates.ApplyOverride(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BulkApplyOverrides handles POST /api/v1/rates/overrides/bulk.
func (h *RateHandler) BulkApplyOverrides(c *gin.Context) {
	var reqs []application.OverrideRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.rates.BulkApplyOverrides(c.Request.Context(), reqs))
}

// DeleteOverride handles DELETE /api/v1/rates/overrides/:room_type_id/:date.
func (h *RateHandler) DeleteOverride(c *gin.Context) {
	roomTypeID, err := uuid.Parse(c.Param("room_type_id"))
	if err != nil {
		response.BadRequest(c, "invalid room type ID")
		return
	}

	if err := h.rates.DeleteOverride(c.Request.Context(), roomTypeID, c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ApplyRestriction handles POST /api/v1/rates/restrictions.
func (h *RateHandler) ApplyRestriction(c *gin.Context) {
	var req application.RestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.rates.ApplyRestriction(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BulkApplyRestrictions handles POST /api/v1/rates/restrictions/bulk.
func (h *RateHandler) BulkApplyRestrictions(c *gin.Context) {
	var reqs []application.RestrictionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.rates.BulkApplyRestrictions(c.Request.Context(), reqs))
}

// DeleteRestriction handles DELETE /api/v1/rates/restrictions/:room_type_id/:date.
func (h *RateHandler) DeleteRestriction(c *gin.Context) {
	roomTypeID, err := uuid.Parse(c.Param("room_type_id"))
	if err != nil {
		response.BadRequest(c, "invalid room type ID")
		return
	}

	if err := h.rates.DeleteRestriction(c.Request.Context(), roomTypeID, c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateQuote handles POST /api/v1/quotes.
func (h *RateHandler) CreateQuote(c *gin.Context) {
	var req application.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.quotes.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ComposeMatrix handles GET /api/v1/packages/matrix.
func (h *RateHandler) ComposeMatrix(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil || year <= 0 {
		response.BadRequest(c, "year is required")
		return
	}
	nights, err := strconv.Atoi(c.DefaultQuery("nights", "1"))
	if err != nil {
		response.BadRequest(c, "invalid nights")
		return
	}

	paxCounts, err := parsePaxList(c.DefaultQuery("pax", "1,2,3,4"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.packages.ComposeMatrix(c.Request.Context(), application.MatrixRequest{
		Year:      year,
		Nights:    nights,
		PaxCounts: paxCounts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// queryRoomTypeID parses the room_type_id query parameter, writing a 400
// response when it is missing or malformed.
func queryRoomTypeID(c *gin.Context) (uuid.UUID, bool) {
	roomTypeID, err := uuid.Parse(c.Query("room_type_id"))
	if err != nil {
		response.BadRequest(c, "invalid room type ID")
		return uuid.Nil, false
	}
	return roomTypeID, true
}

// parsePaxList parses a comma-separated pax list like "1,2,3,4".
func parsePaxList(s string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &paxListError{value: part}
		}
		counts = append(counts, n)
	}
	return counts, nil
}

type paxListError struct {
	value string
}

func (e *paxListError) Error() string {
	return "invalid pax count: " + e.value
}
