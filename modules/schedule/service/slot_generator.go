package service

import (
	"fmt"

	"agenda-api/modules/schedule/entity"
)

// GenerateSlots returns the ordered "HH:MM" slot start times for one day of
// the given configuration. Hours run from StartHour inclusive to EndHour
// exclusive; within each hour, minutes advance by SlotMinutes from zero.
// When SlotMinutes does not divide 60 the trailing remainder of each hour is
// dropped, matching the behavior bookings have always had.
//
// Pure function: no I/O, deterministic, never mutates cfg.
func GenerateSlots(cfg *entity.ScheduleConfig) []string {
	slots := []string{}
	if cfg == nil || cfg.SlotMinutes <= 0 {
		return slots
	}
	for hour := cfg.StartHour; hour < cfg.EndHour; hour++ {
		for minute := 0; minute < 60; minute += cfg.SlotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}
