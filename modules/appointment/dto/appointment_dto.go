package dto

import (
	"time"

	"agenda-api/modules/appointment/entity"
)

// ===================== Request DTOs =====================

// CreateAppointmentRequest books a slot. Date is "YYYY-MM-DD", SlotStart is
// "HH:MM". OwnerID is only honored for admins booking on behalf of another
// user.
type CreateAppointmentRequest struct {
	Date      string `json:"date" validate:"required"`
	SlotStart string `json:"slot_start" validate:"required"`
	Reason    string `json:"reason"`
	OwnerID   string `json:"owner_id"`
}

// ===================== Response DTOs =====================

type AppointmentResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"date"`
	SlotStart string    `json:"slot_start"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AppointmentWithOwnerResponse struct {
	AppointmentResponse
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// OccupancyResponse lists the slots already booked for one day.
type OccupancyResponse struct {
	Date     string   `json:"date"`
	Occupied []string `json:"occupied"`
}

func ToAppointmentResponse(a *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        a.ID.String(),
		Code:      a.Code,
		OwnerID:   a.OwnerID.String(),
		Date:      a.Day.UTC().Format("2006-01-02"),
		SlotStart: a.SlotStart,
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

func ToAppointmentWithOwnerResponse(a *entity.AppointmentWithOwner) *AppointmentWithOwnerResponse {
	name := a.OwnerFirstName
	if a.OwnerLastName != "" {
		name += " " + a.OwnerLastName
	}
	return &AppointmentWithOwnerResponse{
		AppointmentResponse: *ToAppointmentResponse(&a.Appointment),
		OwnerName:           name,
		OwnerEmail:          a.OwnerEmail,
	}
}
