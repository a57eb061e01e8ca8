package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	"github.com/trimconnect/salon-booking-api/internal/dto"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/httpresp"
	"github.com/trimconnect/salon-booking-api/internal/middleware"
	"github.com/trimconnect/salon-booking-api/internal/models"
	ucAppointment "github.com/trimconnect/salon-booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC    *ucAppointment.CreateAppointment
	listUserUC  *ucAppointment.ListUserAppointments
	listSalonUC *ucAppointment.ListSalonAppointments
	statusUC    *ucAppointment.ChangeStatus
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	listUserUC *ucAppointment.ListUserAppointments,
	listSalonUC *ucAppointment.ListSalonAppointments,
	statusUC *ucAppointment.ChangeStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:    createUC,
		listUserUC:  listUserUC,
		listSalonUC: listSalonUC,
		statusUC:    statusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	SalonID    uuid.UUID   `json:"salon_id" binding:"required"`
	Date       string      `json:"appointment_date" binding:"required"`
	Time       string      `json:"appointment_time" binding:"required"`
	ServiceIDs []uuid.UUID `json:"service_ids" binding:"required"`
	Notes      string      `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:    req.SalonID,
		UserID:     userID,
		Date:       req.Date,
		Time:       req.Time,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap, false))
}

// ======================================================
// LISTING
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	filter := domain.ParseListFilter(c.Query("filter"))

	apps, err := h.listUserUC.Execute(c.Request.Context(), userID, filter)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps, false))
}

func (h *AppointmentHandler) ListForSalon(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	actorRole := c.GetString(middleware.ContextUserRole)

	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_salon_id", "Malformed salon id.")
		return
	}

	filter := domain.ParseListFilter(c.Query("filter"))

	apps, err := h.listSalonUC.Execute(c.Request.Context(), salonID, actorID, actorRole, filter)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps, true))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	actorRole := c.GetString(middleware.ContextUserRole)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Malformed appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing status.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), actorID, actorRole, appointmentID, req.Status)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	withCustomer := actorRole != models.RoleCustomer
	httpresp.OK(c, dto.FromAppointment(ap, withCustomer))
}
