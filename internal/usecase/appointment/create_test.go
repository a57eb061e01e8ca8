package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/trimconnect/salon-booking-api/internal/domain/appointment"
	"github.com/trimconnect/salon-booking-api/internal/httperr"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/notification"
	"github.com/trimconnect/salon-booking-api/internal/timezone"
)

func openSalon() *models.Salon {
	return &models.Salon{
		ID:                      uuid.New(),
		OwnerID:                 uuid.New(),
		Name:                    "Cut & Shine",
		IsVerified:              true,
		IsActive:                true,
		IsAcceptingAppointments: true,
	}
}

func tomorrow() string {
	return timezone.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func newCreate(repo *fakeRepo, sender notification.Sender, sms bool, exclusive bool) *CreateAppointment {
	return NewCreateAppointment(
		repo,
		notification.NewDispatcher(sender),
		testSettings(sms),
		testAudit(),
		exclusive,
	)
}

func TestCreateAppointment(t *testing.T) {
	salon := openSalon()
	svc := models.Service{ID: uuid.New(), SalonID: salon.ID, Name: "Haircut", Price: 250, Active: true}
	userID := uuid.New()

	repo := &fakeRepo{
		salon:    salon,
		services: []models.Service{svc},
		profile:  &models.Profile{ID: userID, PhoneNumber: "9876543210"},
	}
	sender := &recordingSender{}
	uc := newCreate(repo, sender, true, false)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:    salon.ID,
		UserID:     userID,
		Date:       tomorrow(),
		Time:       "14:30",
		ServiceIDs: []uuid.UUID{svc.ID},
		Notes:      "first visit",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, "14:30", ap.AppointmentTime)
	assert.NotEmpty(t, ap.ReadableID)
	assert.Equal(t, []models.Service{svc}, ap.Services)
	assert.Equal(t, salon.Name, ap.Salon.Name)

	require.NotNil(t, repo.created)
	assert.Equal(t, []uuid.UUID{svc.ID}, repo.createdServiceIDs)
	assert.False(t, repo.createdExclusive)

	// confirmation SMS goes out exactly once, through the async queue
	assert.Eventually(t, func() bool {
		return len(sender.all()) == 1
	}, time.Second, 10*time.Millisecond)

	sent := sender.all()[0]
	assert.Equal(t, notification.KindConfirmation, sent.kind)
	assert.Equal(t, "9876543210", sent.phone)
	assert.Equal(t, ap.ReadableID, sent.readableID)
}

func TestCreateAppointmentPassesExclusiveFlag(t *testing.T) {
	salon := openSalon()
	svc := models.Service{ID: uuid.New(), SalonID: salon.ID, Active: true}

	repo := &fakeRepo{salon: salon, services: []models.Service{svc}}
	uc := newCreate(repo, &recordingSender{}, false, true)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:    salon.ID,
		UserID:     uuid.New(),
		Date:       tomorrow(),
		Time:       "10:00",
		ServiceIDs: []uuid.UUID{svc.ID},
	})
	require.NoError(t, err)
	assert.True(t, repo.createdExclusive)
}

func TestCreateAppointmentSMSDisabled(t *testing.T) {
	salon := openSalon()
	svc := models.Service{ID: uuid.New(), SalonID: salon.ID, Active: true}

	repo := &fakeRepo{
		salon:    salon,
		services: []models.Service{svc},
		profile:  &models.Profile{ID: uuid.New(), PhoneNumber: "9876543210"},
	}
	sender := &recordingSender{}
	uc := newCreate(repo, sender, false, false)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:    salon.ID,
		UserID:     uuid.New(),
		Date:       tomorrow(),
		Time:       "10:00",
		ServiceIDs: []uuid.UUID{svc.ID},
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, sender.all())
}

func TestCreateAppointmentRejections(t *testing.T) {
	salon := openSalon()
	svc := models.Service{ID: uuid.New(), SalonID: salon.ID, Active: true}
	serviceIDs := []uuid.UUID{svc.ID}

	tests := []struct {
		name     string
		repo     *fakeRepo
		input    CreateAppointmentInput
		wantCode string
	}{
		{
			name: "no services",
			repo: &fakeRepo{salon: salon},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: tomorrow(), Time: "10:00",
			},
			wantCode: "no_services",
		},
		{
			name: "salon missing",
			repo: &fakeRepo{salonErr: gorm.ErrRecordNotFound},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: tomorrow(), Time: "10:00", ServiceIDs: serviceIDs,
			},
			wantCode: "salon_not_found",
		},
		{
			name: "salon unverified",
			repo: &fakeRepo{salon: &models.Salon{ID: salon.ID, IsActive: true, IsAcceptingAppointments: true}},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: tomorrow(), Time: "10:00", ServiceIDs: serviceIDs,
			},
			wantCode: "salon_not_found",
		},
		{
			name: "salon paused",
			repo: &fakeRepo{salon: &models.Salon{ID: salon.ID, IsActive: true, IsVerified: true}},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: tomorrow(), Time: "10:00", ServiceIDs: serviceIDs,
			},
			wantCode: "salon_not_accepting",
		},
		{
			name: "malformed date",
			repo: &fakeRepo{salon: salon, services: []models.Service{svc}},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: "10-06-2025", Time: "10:00", ServiceIDs: serviceIDs,
			},
			wantCode: "invalid_date_or_time",
		},
		{
			name: "malformed time",
			repo: &fakeRepo{salon: salon, services: []models.Service{svc}},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: tomorrow(), Time: "10:00 pm", ServiceIDs: serviceIDs,
			},
			wantCode: "invalid_date_or_time",
		},
		{
			name: "date in the past",
			repo: &fakeRepo{salon: salon, services: []models.Service{svc}},
			input: CreateAppointmentInput{
				SalonID: salon.ID,
				Date:    timezone.Now().AddDate(0, 0, -1).Format("2006-01-02"),
				Time:    "10:00", ServiceIDs: serviceIDs,
			},
			wantCode: "date_in_past",
		},
		{
			name: "service not on the salon menu",
			repo: &fakeRepo{salon: salon, services: nil},
			input: CreateAppointmentInput{
				SalonID: salon.ID, Date: tomorrow(), Time: "10:00", ServiceIDs: serviceIDs,
			},
			wantCode: "service_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newCreate(tt.repo, &recordingSender{}, false, false)

			_, err := uc.Execute(context.Background(), tt.input)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
			assert.Nil(t, tt.repo.created, "nothing should be written")
		})
	}
}

func TestCreateAppointmentStoreErrorPropagates(t *testing.T) {
	repo := &fakeRepo{salonErr: assert.AnError}
	uc := newCreate(repo, &recordingSender{}, false, false)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:    uuid.New(),
		UserID:     uuid.New(),
		Date:       tomorrow(),
		Time:       "10:00",
		ServiceIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, assert.AnError)
	_, isBusiness := httperr.BusinessCode(err)
	assert.False(t, isBusiness, "store failures are not business rejections")
}
