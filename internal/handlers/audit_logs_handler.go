package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/httpresp"
	"github.com/trimconnect/salon-booking-api/internal/middleware"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

const maxAuditPageSize = 100

// List returns audit entries, newest first. Admins see everything; salon
// owners only their salon's trail.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actorRole := c.GetString(middleware.ContextUserRole)

	q := h.db.Model(&models.AuditLog{}).Order("created_at DESC")

	if actorRole != models.RoleAdmin {
		ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

		var salon models.Salon
		if err := h.db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
			httperr.NotFound(c, "salon_not_found", "You have not registered a salon yet.")
			return
		}
		q = q.Where("salon_id = ?", salon.ID)
	}

	limit := 50
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= maxAuditPageSize {
		limit = n
	}

	var logs []models.AuditLog
	if err := q.Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not load the audit trail.")
		return
	}

	httpresp.List(c, logs)
}
