package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/httpresp"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/settings"
)

type AdminHandler struct {
	db       *gorm.DB
	settings *settings.Service
}

func NewAdminHandler(db *gorm.DB, settingsSvc *settings.Service) *AdminHandler {
	return &AdminHandler{db: db, settings: settingsSvc}
}

// ======================================================
// SALON VERIFICATION
// ======================================================

func (h *AdminHandler) ListSalons(c *gin.Context) {
	var salons []models.Salon
	q := h.db.Preload("Owner").Order("created_at DESC")

	if c.Query("pending") == "true" {
		q = q.Where("is_verified = FALSE")
	}

	if err := q.Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not load salons.")
		return
	}

	httpresp.List(c, salons)
}

type VerifySalonRequest struct {
	IsVerified bool `json:"is_verified"`
}

func (h *AdminHandler) VerifySalon(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_salon_id", "Malformed salon id.")
		return
	}

	var req VerifySalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid verification data.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	salon.IsVerified = req.IsVerified
	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not update the salon.")
		return
	}

	httpresp.OK(c, salon)
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var profiles []models.Profile
	q := h.db.Order("created_at DESC")

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	if err := q.Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not load users.")
		return
	}

	httpresp.List(c, profiles)
}

// ======================================================
// PLATFORM SETTINGS
// ======================================================

func (h *AdminHandler) ListSettings(c *gin.Context) {
	rows, err := h.settings.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_settings", "Could not load settings.")
		return
	}

	httpresp.List(c, rows)
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid setting data.")
		return
	}

	if err := h.settings.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		httperr.Internal(c, "failed_to_update_setting", "Could not store the setting.")
		return
	}

	httpresp.OK(c, gin.H{"key": req.Key, "value": req.Value})
}
