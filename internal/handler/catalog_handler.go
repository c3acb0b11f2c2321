package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resort-pms/service-pricing/internal/application"
	"github.com/resort-pms/service-pricing/internal/domain/pricing"
	"github.com/resort-pms/service-pricing/internal/pkg/response"
)

// CatalogHandler handles HTTP requests for the pricing reference data.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers all catalog routes on the given router group.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/room-types", h.ListRoomTypes)
		v1.POST("/room-types", h.SaveRoomType)
		v1.DELETE("/room-types/:id", h.DeleteRoomType)

		v1.GET("/meal-plans", h.ListMealPlans)
		v1.POST("/meal-plans", h.SaveMealPlan)
		v1.DELETE("/meal-plans/:code", h.DeleteMealPlan)
		v1.POST("/meal-plans/recalculate", h.RecalculateComposites)

		v1.GET("/activities", h.ListActivities)
		v1.POST("/activities", h.SaveActivity)
		v1.DELETE("/activities/:code", h.DeleteActivity)

		v1.GET("/pricing-config", h.GetPricingConfig)
		v1.PUT("/pricing-config", h.SavePricingConfig)

		v1.GET("/package-configs", h.ListPackageConfigs)
		v1.POST("/package-configs", h.SavePackageConfig)

		v1.GET("/seasons/settings", h.GetSeasonSettings)
		v1.PUT("/seasons/settings", h.SaveSeasonSettings)
		v1.GET("/seasons/assignments", h.ListSeasonAssignments)
		v1.POST("/seasons/assignments", h.AssignSeason)
		v1.POST("/seasons/assignments/bulk", h.BulkAssignSeasons)
		v1.DELETE("/seasons/assignments/:date", h.DeleteSeasonAssignment)

		v1.GET("/promotions", h.ListPromotions)
		v1.POST("/promotions", h.SavePromotion)
		v1.DELETE("/promotions/:id", h.DeletePromotion)

		v1.GET("/surcharges", h.ListSurcharges)
		v1.POST("/surcharges", h.SaveSurcharge)
		v1.DELETE("/surcharges/:id", h.DeleteSurcharge)

		v1.GET("/taxes", h.ListTaxes)
		v1.POST("/taxes", h.SaveTax)
		v1.DELETE("/taxes/:id", h.DeleteTax)
	}
}

// ListRoomTypes handles GET /api/v1/room-types.
func (h *CatalogHandler) ListRoomTypes(c *gin.Context) {
	result, err := h.service.ListRoomTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveRoomType handles POST /api/v1/room-types.
func (h *CatalogHandler) SaveRoomType(c *gin.Context) {
	var req application.RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveRoomType(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteRoomType handles DELETE /api/v1/room-types/:id.
func (h *CatalogHandler) DeleteRoomType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoomType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListMealPlans handles GET /api/v1/meal-plans.
func (h *CatalogHandler) ListMealPlans(c *gin.Context) {
	result, err := h.service.ListMealPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveMealPlan handles POST /api/v1/meal-plans.
func (h *CatalogHandler) SaveMealPlan(c *gin.Context) {
	var plan pricing.MealPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveMealPlan(c.Request.Context(), plan)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteMealPlan handles DELETE /api/v1/meal-plans/:code.
func (h *CatalogHandler) DeleteMealPlan(c *gin.Context) {
	if err := h.service.DeleteMealPlan(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RecalculateComposites handles POST /api/v1/meal-plans/recalculate.
func (h *CatalogHandler) RecalculateComposites(c *gin.Context) {
	result, err := h.service.RecalculateComposites(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListActivities handles GET /api/v1/activities.
func (h *CatalogHandler) ListActivities(c *gin.Context) {
	result, err := h.service.ListActivities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveActivity handles POST /api/v1/activities.
func (h *CatalogHandler) SaveActivity(c *gin.Context) {
	var activity pricing.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveActivity(c.Request.Context(), activity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteActivity handles DELETE /api/v1/activities/:code.
func (h *CatalogHandler) DeleteActivity(c *gin.Context) {
	if err := h.service.DeleteActivity(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetPricingConfig handles GET /api/v1/pricing-config.
func (h *CatalogHandler) GetPricingConfig(c *gin.Context) {
	result, err := h.service.GetPricingConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SavePricingConfig handles PUT /api/v1/pricing-config.
func (h *CatalogHandler) SavePricingConfig(c *gin.Context) {
	var config pricing.PricingConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SavePricingConfig(c.Request.Context(), config)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListPackageConfigs handles GET /api/v1/package-configs.
func (h *CatalogHandler) ListPackageConfigs(c *gin.Context) {
	result, err := h.service.ListPackageConfigs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SavePackageConfig handles POST /api/v1/package-configs.
func (h *CatalogHandler) SavePackageConfig(c *gin.Context) {
	var config pricing.PackageConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SavePackageConfig(c.Request.Context(), config)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetSeasonSettings handles GET /api/v1/seasons/settings.
func (h *CatalogHandler) GetSeasonSettings(c *gin.Context) {
	result, err := h.service.GetSeasonSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveSeasonSettings handles PUT /api/v1/seasons/settings.
func (h *CatalogHandler) SaveSeasonSettings(c *gin.Context) {
	var settings pricing.SeasonSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveSeasonSettings(c.Request.Context(), settings)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListSeasonAssignments handles GET /api/v1/seasons/assignments.
func (h *CatalogHandler) ListSeasonAssignments(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		response.BadRequest(c, "from and to are required")
		return
	}

	result, err := h.service.ListSeasonAssignments(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AssignSeason handles POST /api/v1/seasons/assignments.
func (h *CatalogHandler) AssignSeason(c *gin.Context) {
	var req application.SeasonAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AssignSeason(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BulkAssignSeasons handles POST /api/v1/seasons/assignments/bulk.
func (h *CatalogHandler) BulkAssignSeasons(c *gin.Context) {
	var reqs []application.SeasonAssignmentRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.service.BulkAssignSeasons(c.Request.Context(), reqs))
}

// DeleteSeasonAssignment handles DELETE /api/v1/seasons/assignments/:date.
func (h *CatalogHandler) DeleteSeasonAssignment(c *gin.Context) {
	if err := h.service.DeleteSeasonAssignment(c.Request.Context(), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListPromotions handles GET /api/v1/promotions.
func (h *CatalogHandler) ListPromotions(c *gin.Context) {
	result, err := h.service.ListPromotions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SavePromotion handles POST /api/v1/promotions.
func (h *CatalogHandler) SavePromotion(c *gin.Context) {
	var promotion pricing.Promotion
	if err := c.ShouldBindJSON(&promotion); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SavePromotion(c.Request.Context(), promotion)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeletePromotion handles DELETE /api/v1/promotions/:id.
func (h *CatalogHandler) DeletePromotion(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePromotion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListSurcharges handles GET /api/v1/surcharges.
func (h *CatalogHandler) ListSurcharges(c *gin.Context) {
	result, err := h.service.ListSurcharges(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveSurcharge handles POST /api/v1/surcharges.
func (h *CatalogHandler) SaveSurcharge(c *gin.Context) {
	var surcharge pricing.Surcharge
	if err := c.ShouldBindJSON(&surcharge); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveSurcharge(c.Request.Context(), surcharge)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteSurcharge handles DELETE /api/v1/surcharges/:id.
func (h *CatalogHandler) DeleteSurcharge(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSurcharge(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListTaxes handles GET /api/v1/taxes.
func (h *CatalogHandler) ListTaxes(c *gin.Context) {
	result, err := h.service.ListTaxes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveTax handles POST /api/v1/taxes.
func (h *CatalogHandler) SaveTax(c *gin.Context) {
	var tax pricing.Tax
	if err := c.ShouldBindJSON(&tax); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveTax(c.Request.Context(), tax)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteTax handles DELETE /api/v1/taxes/:id.
func (h *CatalogHandler) DeleteTax(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTax(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// paramID parses the :id path parameter, writing a 400 response when it is
// malformed.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
