package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resort-pms/service-pricing/internal/application"
	"github.com/resort-pms/service-pricing/internal/pkg/response"
)

// BulkHandler handles HTTP requests for bulk rate edits: quick-paste text,
// CSV import/export and JSON batches.
type BulkHandler struct {
	service *application.BulkService
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(service *application.BulkService) *BulkHandler {
	return &BulkHandler{service: service}
}

// RegisterRoutes registers all bulk routes on the given router group.
func (h *BulkHandler) RegisterRoutes(r *gin.RouterGroup) {
	rates := r.Group("/api/v1/rates")
	{
		rates.POST("/quick-paste", h.QuickPasteSeasonal)
		rates.POST("/quick-paste/single", h.QuickPasteSingle)

		rates.POST("/import/annual", h.ImportAnnualCSV)
		rates.POST("/import/seasonal", h.ImportSeasonalCSV)
		rates.GET("/export/annual", h.ExportAnnualCSV)
		rates.GET("/export/seasonal", h.ExportSeasonalCSV)

		rates.POST("/annual/bulk", h.BulkUpsertAnnualRates)
	}
}

// QuickPasteSeasonal handles POST /api/v1/rates/quick-paste.
func (h *BulkHandler) QuickPasteSeasonal(c *gin.Context) {
	var req application.QuickPasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.QuickPasteSeasonal(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// QuickPasteSingle handles POST /api/v1/rates/quick-paste/single.
func (h *BulkHandler) QuickPasteSingle(c *gin.Context) {
	var req application.QuickPasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.QuickPasteSingle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ImportAnnualCSV handles POST /api/v1/rates/import/annual. The body is the
// raw CSV text.
func (h *BulkHandler) ImportAnnualCSV(c *gin.Context) {
	text, ok := readBody(c)
	if !ok {
		return
	}

	result, err := h.service.ImportAnnualCSV(c.Request.Context(), text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ImportSeasonalCSV handles POST /api/v1/rates/import/seasonal.
func (h *BulkHandler) ImportSeasonalCSV(c *gin.Context) {
	text, ok := readBody(c)
	if !ok {
		return
	}

	result, err := h.service.ImportSeasonalCSV(c.Request.Context(), text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ExportAnnualCSV handles GET /api/v1/rates/export/annual.
func (h *BulkHandler) ExportAnnualCSV(c *gin.Context) {
	year, ok := queryYear(c)
	if !ok {
		return
	}

	csv, err := h.service.ExportAnnualCSV(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

// ExportSeasonalCSV handles GET /api/v1/rates/export/seasonal.
func (h *BulkHandler) ExportSeasonalCSV(c *gin.Context) {
	year, ok := queryYear(c)
	if !ok {
		return
	}

	csv, err := h.service.ExportSeasonalCSV(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

// BulkUpsertAnnualRates handles POST /api/v1/rates/annual/bulk.
func (h *BulkHandler) BulkUpsertAnnualRates(c *gin.Context) {
	var reqs []application.AnnualRateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.service.BulkUpsertAnnualRates(c.Request.Context(), reqs))
}

func readBody(c *gin.Context) (string, bool) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		response.BadRequest(c, "request body is required")
		return "", false
	}
	return string(raw), true
}

func queryYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		response.BadRequest(c, "year is required")
		return 0, false
	}
	return year, true
}
