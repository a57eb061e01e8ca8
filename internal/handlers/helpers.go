package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
)

var notFoundCodes = map[string]bool{
	"salon_not_found":       true,
	"appointment_not_found": true,
	"service_not_found":     true,
	"payment_not_found":     true,
	"profile_not_found":     true,
}

var forbiddenCodes = map[string]bool{
	"transition_not_allowed": true,
	"not_salon_owner":        true,
}

var conflictCodes = map[string]bool{
	"slot_taken": true,
}

// writeBusinessError maps a usecase error onto the HTTP envelope. Business
// codes pick their status class; anything else is a plain 500.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch {
	case notFoundCodes[code]:
		httperr.NotFound(c, code, "The requested resource was not found.")
	case forbiddenCodes[code]:
		httperr.Forbidden(c, code, "You are not allowed to perform this action.")
	case conflictCodes[code]:
		httperr.Conflict(c, code, "The requested slot is no longer available.")
	default:
		httperr.BadRequest(c, code, "The request violates a booking rule.")
	}
}
