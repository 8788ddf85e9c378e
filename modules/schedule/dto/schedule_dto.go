package dto

import "agenda-api/modules/schedule/entity"

// UpsertScheduleRequest replaces the active schedule configuration.
type UpsertScheduleRequest struct {
	StartHour   int `json:"start_hour"`
	EndHour     int `json:"end_hour"`
	SlotMinutes int `json:"slot_minutes" validate:"required,min=1"`
}

// ScheduleResponse is the active configuration.
type ScheduleResponse struct {
	StartHour   int    `json:"start_hour"`
	EndHour     int    `json:"end_hour"`
	SlotMinutes int    `json:"slot_minutes"`
	UpdatedAt   string `json:"updated_at"`
}

// SlotsResponse lists every slot the configuration generates.
type SlotsResponse struct {
	Slots []string `json:"slots"`
}

func ToScheduleResponse(e *entity.ScheduleConfig) *ScheduleResponse {
	return &ScheduleResponse{
		StartHour:   e.StartHour,
		EndHour:     e.EndHour,
		SlotMinutes: e.SlotMinutes,
		UpdatedAt:   e.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
