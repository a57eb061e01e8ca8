package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/trimconnect/salon-booking-api/internal/models"
)

type ServiceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	DurationMin int       `json:"duration_min"`
}

type AppointmentDTO struct {
	ID                uuid.UUID `json:"id"`
	ReadableID        string    `json:"readable_id"`
	SalonID           uuid.UUID `json:"salon_id"`
	SalonName         string    `json:"salon_name"`
	AppointmentDate   string    `json:"appointment_date"`
	AppointmentTime   string    `json:"appointment_time"`
	AppointmentNumber int       `json:"appointment_number"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes,omitempty"`

	Services []ServiceDTO `json:"services"`

	// set for the salon-owner view only
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromAppointment(ap *models.Appointment, withCustomer bool) AppointmentDTO {
	out := AppointmentDTO{
		ID:                ap.ID,
		ReadableID:        ap.ReadableID,
		SalonID:           ap.SalonID,
		SalonName:         ap.Salon.Name,
		AppointmentDate:   ap.AppointmentDate.Format("2006-01-02"),
		AppointmentTime:   ap.AppointmentTime,
		AppointmentNumber: ap.AppointmentNumber,
		Status:            ap.Status,
		Notes:             ap.Notes,
		CreatedAt:         ap.CreatedAt,
	}

	for _, s := range ap.Services {
		out.Services = append(out.Services, ServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: s.DurationMin,
		})
	}

	if withCustomer {
		out.CustomerName = ap.User.FirstName + " " + ap.User.LastName
		out.CustomerPhone = ap.User.PhoneNumber
	}

	return out
}

func FromAppointments(apps []models.Appointment, withCustomer bool) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, FromAppointment(&apps[i], withCustomer))
	}
	return out
}
