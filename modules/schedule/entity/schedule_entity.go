package entity

import "time"

// ScheduleConfig is the single admin-configured working-hours window slots
// are generated from. Exactly one row exists; writes are upserts.
type ScheduleConfig struct {
	StartHour   int       `db:"start_hour" json:"start_hour"`
	EndHour     int       `db:"end_hour" json:"end_hour"`
	SlotMinutes int       `db:"slot_minutes" json:"slot_minutes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
