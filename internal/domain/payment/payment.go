package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

// ===============================
// Payment Method / Status
// ===============================

type Method string

const (
	MethodOnline  Method = "online"
	MethodOffline Method = "offline"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodOnline, MethodOffline:
		return Method(s), nil
	default:
		return "", httperr.ErrBusiness("invalid_payment_method")
	}
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return Status(s), nil
	default:
		return "", httperr.ErrBusiness("invalid_payment_status")
	}
}

// InitialStatus is what a freshly recorded payment starts as: offline money
// already changed hands, online money is pending gateway verification.
func InitialStatus(m Method) Status {
	if m == MethodOffline {
		return StatusCompleted
	}
	return StatusPending
}

// ===============================
// Repository
// ===============================

type Repository interface {
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPaymentByTransactionID(
		ctx context.Context,
		transactionID string,
	) (*models.Payment, error)

	GetPaymentForAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
