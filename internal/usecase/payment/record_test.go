package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/audit"
	apptdomain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	domain "github.com/trimconnect/salon-booking-api/internal/domain/payment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakePayments struct {
	payment  *models.Payment
	fetchErr error

	created *models.Payment
	updated *models.Payment
}

func (f *fakePayments) CreatePayment(ctx context.Context, p *models.Payment) error {
	p.ID = uuid.New()
	f.created = p
	return nil
}

func (f *fakePayments) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.payment, nil
}

func (f *fakePayments) GetPaymentForAppointment(ctx context.Context, appointmentID uuid.UUID) (*models.Payment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.payment, nil
}

func (f *fakePayments) UpdatePayment(ctx context.Context, p *models.Payment) error {
	f.updated = p
	return nil
}

var _ domain.Repository = (*fakePayments)(nil)

// fakeAppointments covers the methods payment flows touch; the embedded
// interface fills out the rest. The role-scoped fetches behave like the real
// repository: no row unless the caller matches.
type fakeAppointments struct {
	apptdomain.Repository

	appointment *models.Appointment
	ownerID     uuid.UUID
	fetchErr    error
	updated     *models.Appointment
}

func (f *fakeAppointments) GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*models.Appointment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.appointment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointments) GetAppointmentForUser(ctx context.Context, appointmentID, userID uuid.UUID) (*models.Appointment, error) {
	ap, err := f.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return ap, nil
}

func (f *fakeAppointments) GetAppointmentForSalonOwner(ctx context.Context, appointmentID, ownerID uuid.UUID) (*models.Appointment, error) {
	ap, err := f.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if f.ownerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return ap, nil
}

func (f *fakeAppointments) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updated = ap
	return nil
}

type discardSink struct{}

func (discardSink) Log(ev audit.Event) error { return nil }

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(discardSink{})
}

func appointmentIn(status apptdomain.Status) *models.Appointment {
	return &models.Appointment{
		ID:      uuid.New(),
		SalonID: uuid.New(),
		UserID:  uuid.New(),
		Status:  string(status),
	}
}

// --------------------------------------------------
// RecordPayment
// --------------------------------------------------

func TestRecordPaymentOffline(t *testing.T) {
	ap := appointmentIn(apptdomain.StatusPending)
	payments := &fakePayments{}
	appointments := &fakeAppointments{appointment: ap}
	uc := NewRecordPayment(payments, appointments, testAudit())

	p, err := uc.Execute(context.Background(), RecordPaymentInput{
		AppointmentID: ap.ID,
		Amount:        450,
		Method:        "offline",
		ActorID:       ap.UserID,
		ActorRole:     models.RoleCustomer,
	})
	require.NoError(t, err)

	// cash already changed hands
	assert.Equal(t, string(domain.StatusCompleted), p.Status)
	assert.Equal(t, "offline", p.PaymentMethod)
	assert.Empty(t, p.TransactionID)
	assert.NotNil(t, payments.created)

	// and the appointment confirms with it
	assert.Equal(t, string(apptdomain.StatusConfirmed), ap.Status)
	assert.Same(t, ap, appointments.updated)
}

func TestRecordPaymentOfflineAlreadyConfirmed(t *testing.T) {
	ap := appointmentIn(apptdomain.StatusConfirmed)
	payments := &fakePayments{}
	appointments := &fakeAppointments{appointment: ap}
	uc := NewRecordPayment(payments, appointments, testAudit())

	_, err := uc.Execute(context.Background(), RecordPaymentInput{
		AppointmentID: ap.ID,
		Amount:        450,
		Method:        "offline",
		ActorID:       ap.UserID,
		ActorRole:     models.RoleCustomer,
	})
	require.NoError(t, err)

	assert.NotNil(t, payments.created)
	// no redundant appointment write
	assert.Nil(t, appointments.updated)
}

func TestRecordPaymentOnlineStaysPending(t *testing.T) {
	ap := appointmentIn(apptdomain.StatusPending)
	payments := &fakePayments{}
	appointments := &fakeAppointments{appointment: ap}
	uc := NewRecordPayment(payments, appointments, testAudit())

	p, err := uc.Execute(context.Background(), RecordPaymentInput{
		AppointmentID: ap.ID,
		Amount:        450,
		Method:        "online",
		TransactionID: "txn_1001",
		ActorID:       ap.UserID,
		ActorRole:     models.RoleCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), p.Status)
	assert.Equal(t, "txn_1001", p.TransactionID)

	// confirmation waits for the gateway verdict
	assert.Equal(t, string(apptdomain.StatusPending), ap.Status)
	assert.Nil(t, appointments.updated)
}

func TestRecordPaymentStrangerCannotConfirm(t *testing.T) {
	ap := appointmentIn(apptdomain.StatusPending)
	payments := &fakePayments{}
	appointments := &fakeAppointments{appointment: ap}
	uc := NewRecordPayment(payments, appointments, testAudit())

	// authenticated, but not the booking user
	_, err := uc.Execute(context.Background(), RecordPaymentInput{
		AppointmentID: ap.ID,
		Amount:        450,
		Method:        "offline",
		ActorID:       uuid.New(),
		ActorRole:     models.RoleCustomer,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)

	assert.Nil(t, payments.created)
	assert.Equal(t, string(apptdomain.StatusPending), ap.Status)
	assert.Nil(t, appointments.updated)
}

func TestRecordPaymentSalonOwnerScope(t *testing.T) {
	ap := appointmentIn(apptdomain.StatusPending)
	ownerID := uuid.New()

	t.Run("owning salon records", func(t *testing.T) {
		payments := &fakePayments{}
		appointments := &fakeAppointments{appointment: ap, ownerID: ownerID}
		uc := NewRecordPayment(payments, appointments, testAudit())

		_, err := uc.Execute(context.Background(), RecordPaymentInput{
			AppointmentID: ap.ID,
			Amount:        450,
			Method:        "offline",
			ActorID:       ownerID,
			ActorRole:     models.RoleSalonOwner,
		})
		require.NoError(t, err)
		assert.NotNil(t, payments.created)
	})

	t.Run("another owner is refused", func(t *testing.T) {
		payments := &fakePayments{}
		appointments := &fakeAppointments{appointment: ap, ownerID: ownerID}
		uc := NewRecordPayment(payments, appointments, testAudit())

		_, err := uc.Execute(context.Background(), RecordPaymentInput{
			AppointmentID: ap.ID,
			Amount:        450,
			Method:        "offline",
			ActorID:       uuid.New(),
			ActorRole:     models.RoleSalonOwner,
		})
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
		assert.Nil(t, payments.created)
	})
}

func TestRecordPaymentStoreErrorPropagates(t *testing.T) {
	appointments := &fakeAppointments{fetchErr: assert.AnError}
	uc := NewRecordPayment(&fakePayments{}, appointments, testAudit())

	_, err := uc.Execute(context.Background(), RecordPaymentInput{
		AppointmentID: uuid.New(),
		Amount:        100,
		Method:        "offline",
		ActorRole:     models.RoleAdmin,
	})
	assert.ErrorIs(t, err, assert.AnError)
	_, isBusiness := httperr.BusinessCode(err)
	assert.False(t, isBusiness, "store failures are not business rejections")
}

func TestRecordPaymentRejections(t *testing.T) {
	tests := []struct {
		name         string
		appointments *fakeAppointments
		input        RecordPaymentInput
		wantCode     string
	}{
		{
			name:         "unknown method",
			appointments: &fakeAppointments{},
			input:        RecordPaymentInput{Amount: 100, Method: "card"},
			wantCode:     "invalid_payment_method",
		},
		{
			name:         "zero amount",
			appointments: &fakeAppointments{},
			input:        RecordPaymentInput{Amount: 0, Method: "offline"},
			wantCode:     "invalid_amount",
		},
		{
			name:         "negative amount",
			appointments: &fakeAppointments{},
			input:        RecordPaymentInput{Amount: -5, Method: "offline"},
			wantCode:     "invalid_amount",
		},
		{
			name:         "online without a transaction id",
			appointments: &fakeAppointments{},
			input:        RecordPaymentInput{Amount: 100, Method: "online"},
			wantCode:     "missing_transaction_id",
		},
		{
			name:         "appointment missing",
			appointments: &fakeAppointments{fetchErr: gorm.ErrRecordNotFound},
			input:        RecordPaymentInput{Amount: 100, Method: "offline", ActorRole: models.RoleAdmin},
			wantCode:     "appointment_not_found",
		},
		{
			name:         "unknown role",
			appointments: &fakeAppointments{appointment: appointmentIn(apptdomain.StatusPending)},
			input:        RecordPaymentInput{Amount: 100, Method: "offline", ActorRole: "auditor"},
			wantCode:     "appointment_not_found",
		},
		{
			name:         "offline against a cancelled appointment",
			appointments: &fakeAppointments{appointment: appointmentIn(apptdomain.StatusCancelled)},
			input:        RecordPaymentInput{Amount: 100, Method: "offline", ActorRole: models.RoleAdmin},
			wantCode:     "appointment_cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := &fakePayments{}
			uc := NewRecordPayment(payments, tt.appointments, testAudit())

			_, err := uc.Execute(context.Background(), tt.input)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
			assert.Nil(t, payments.created, "no payment row should land")
		})
	}
}
