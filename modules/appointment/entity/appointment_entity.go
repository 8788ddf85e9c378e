package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a confirmed reservation of one slot on one day for one
// owner. Day is always stored at UTC midnight; SlotStart is the "HH:MM"
// start time within that day. The pair (Day, SlotStart) is unique in the
// store, which is what makes reservation atomic.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Day       time.Time `db:"day" json:"day"`
	SlotStart string    `db:"slot_start" json:"slot_start"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AppointmentWithOwner attaches the owner identity for admin listings.
type AppointmentWithOwner struct {
	Appointment
	OwnerFirstName string `db:"owner_first_name" json:"owner_first_name"`
	OwnerLastName  string `db:"owner_last_name" json:"owner_last_name"`
	OwnerEmail     string `db:"owner_email" json:"owner_email"`
}
