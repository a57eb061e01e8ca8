package appointment

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/audit"
	domain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/notification"
	"github.com/trimconnect/salon-booking-api/internal/settings"
)

// --------------------------------------------------
// Repository fake
// --------------------------------------------------

type fakeRepo struct {
	salon    *models.Salon
	salonErr error

	services []models.Service

	appointment *models.Appointment
	fetchErr    error

	profile    *models.Profile
	profileErr error

	createErr error

	// captured by the fake
	created           *models.Appointment
	createdServiceIDs []uuid.UUID
	createdExclusive  bool
	updated           *models.Appointment
	listed            []models.Appointment
	listedFilter      domain.ListFilter
}

func (f *fakeRepo) GetSalonByID(ctx context.Context, id uuid.UUID) (*models.Salon, error) {
	if f.salonErr != nil {
		return nil, f.salonErr
	}
	return f.salon, nil
}

func (f *fakeRepo) GetActiveServices(ctx context.Context, salonID uuid.UUID, serviceIDs []uuid.UUID) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment, serviceIDs []uuid.UUID, exclusiveSlot bool) error {
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = uuid.New()
	ap.AppointmentNumber = 1
	ap.ReadableID = domain.FormatReadableID(ap.SalonID.String(), ap.AppointmentNumber, time.Now())
	f.created = ap
	f.createdServiceIDs = serviceIDs
	f.createdExclusive = exclusiveSlot
	return nil
}

func (f *fakeRepo) GetAppointmentForUser(ctx context.Context, appointmentID, userID uuid.UUID) (*models.Appointment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetAppointmentForSalonOwner(ctx context.Context, appointmentID, ownerID uuid.UUID) (*models.Appointment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*models.Appointment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.appointment, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updated = ap
	return nil
}

func (f *fakeRepo) ListForUser(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]models.Appointment, error) {
	f.listedFilter = filter
	return f.listed, nil
}

func (f *fakeRepo) ListForSalon(ctx context.Context, salonID uuid.UUID, filter domain.ListFilter) ([]models.Appointment, error) {
	f.listedFilter = filter
	return f.listed, nil
}

func (f *fakeRepo) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.profile, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Collaborator fakes
// --------------------------------------------------

// staticCache always hits, so settings.Service never touches its database.
type staticCache struct {
	raw []byte
}

func (c staticCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.raw, true, nil
}

func (c staticCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (c staticCache) Delete(ctx context.Context, key string) error {
	return nil
}

func testSettings(smsEnabled bool) *settings.Service {
	raw, _ := json.Marshal(settings.Values{SMSEnabled: smsEnabled})
	return settings.NewService(nil, staticCache{raw: raw}, time.Minute)
}

type sentSMS struct {
	kind       notification.Kind
	phone      string
	readableID string
	status     string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentSMS
}

func (s *recordingSender) SendAppointmentConfirmation(ctx context.Context, phoneNumber, readableID, salonName, whenText string) (notification.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSMS{
		kind:       notification.KindConfirmation,
		phone:      phoneNumber,
		readableID: readableID,
	})
	return notification.Result{Success: true}, nil
}

func (s *recordingSender) SendStatusUpdate(ctx context.Context, phoneNumber, readableID, newStatus string) (notification.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSMS{
		kind:       notification.KindStatusUpdate,
		phone:      phoneNumber,
		readableID: readableID,
		status:     newStatus,
	})
	return notification.Result{Success: true}, nil
}

func (s *recordingSender) all() []sentSMS {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentSMS, len(s.sent))
	copy(out, s.sent)
	return out
}

type discardSink struct{}

func (discardSink) Log(ev audit.Event) error { return nil }

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(discardSink{})
}
