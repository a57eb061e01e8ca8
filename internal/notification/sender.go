package notification

import "context"

// Result mirrors what the SMS gateway reports back. Failures are logged by
// the dispatcher and never reach booking callers.
type Result struct {
	Success bool
	Message string
}

// Sender dispatches SMS to a phone number. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendAppointmentConfirmation(
		ctx context.Context,
		phoneNumber string,
		readableID string,
		salonName string,
		whenText string,
	) (Result, error)

	SendStatusUpdate(
		ctx context.Context,
		phoneNumber string,
		readableID string,
		newStatus string,
	) (Result, error)
}

// NoopSender drops every message. Used when no gateway is configured.
type NoopSender struct{}

func NewNoop() *NoopSender {
	return &NoopSender{}
}

func (NoopSender) SendAppointmentConfirmation(ctx context.Context, phoneNumber, readableID, salonName, whenText string) (Result, error) {
	return Result{Success: true, Message: "sms disabled"}, nil
}

func (NoopSender) SendStatusUpdate(ctx context.Context, phoneNumber, readableID, newStatus string) (Result, error) {
	return Result{Success: true, Message: "sms disabled"}, nil
}
