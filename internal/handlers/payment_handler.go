package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/httpresp"
	"github.com/trimconnect/salon-booking-api/internal/middleware"
	ucPayment "github.com/trimconnect/salon-booking-api/internal/usecase/payment"
)

type PaymentHandler struct {
	recordUC *ucPayment.RecordPayment
	verifyUC *ucPayment.VerifyPayment
	getUC    *ucPayment.GetAppointmentPayment
}

func NewPaymentHandler(
	recordUC *ucPayment.RecordPayment,
	verifyUC *ucPayment.VerifyPayment,
	getUC *ucPayment.GetAppointmentPayment,
) *PaymentHandler {
	return &PaymentHandler{
		recordUC: recordUC,
		verifyUC: verifyUC,
		getUC:    getUC,
	}
}

// --------- Requests ---------

type RecordPaymentRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required"`
	Method        string    `json:"payment_method" binding:"required"`
	TransactionID string    `json:"transaction_id"`
}

// VerifyPaymentRequest is what the gateway webhook posts back.
type VerifyPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *PaymentHandler) Record(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	actorRole := c.GetString(middleware.ContextUserRole)

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payment data.")
		return
	}

	p, err := h.recordUC.Execute(c.Request.Context(), ucPayment.RecordPaymentInput{
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		ActorID:       actorID,
		ActorRole:     actorRole,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *PaymentHandler) GetForAppointment(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	actorRole := c.GetString(middleware.ContextUserRole)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Malformed appointment id.")
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), actorID, actorRole, appointmentID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid verification data.")
		return
	}

	p, err := h.verifyUC.Execute(c.Request.Context(), req.TransactionID, req.Status)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, p)
}
