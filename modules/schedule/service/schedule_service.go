package service

import (
	"context"

	"agenda-api/core/errors"
	"agenda-api/modules/schedule/dto"
	"agenda-api/modules/schedule/entity"
	"agenda-api/modules/schedule/repository"
)

// ScheduleService handles the schedule configuration business logic.
type ScheduleService struct {
	repo repository.ScheduleRepositoryInterface
}

type ScheduleServiceInterface interface {
	GetSchedule(ctx context.Context) (*dto.ScheduleResponse, *errors.AppError)
	UpsertSchedule(ctx context.Context, req *dto.UpsertScheduleRequest) (*dto.ScheduleResponse, *errors.AppError)
	ActiveSlots(ctx context.Context) ([]string, *errors.AppError)
}

func NewScheduleService(repo repository.ScheduleRepositoryInterface) ScheduleServiceInterface {
	return &ScheduleService{repo: repo}
}

func (s *ScheduleService) GetSchedule(ctx context.Context) (*dto.ScheduleResponse, *errors.AppError) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load schedule", err)
	}
	if cfg == nil {
		return nil, errors.New(errors.ErrScheduleNotConfigured, "schedule has not been configured")
	}
	return dto.ToScheduleResponse(cfg), nil
}

func (s *ScheduleService) UpsertSchedule(ctx context.Context, req *dto.UpsertScheduleRequest) (*dto.ScheduleResponse, *errors.AppError) {
	if req.StartHour < 0 || req.StartHour > 23 {
		return nil, errors.New(errors.ErrInvalidInput, "start_hour must be between 0 and 23")
	}
	if req.EndHour < 1 || req.EndHour > 24 {
		return nil, errors.New(errors.ErrInvalidInput, "end_hour must be between 1 and 24")
	}
	if req.EndHour <= req.StartHour {
		return nil, errors.New(errors.ErrInvalidInput, "end_hour must be greater than start_hour")
	}
	if req.SlotMinutes < 1 || req.SlotMinutes > 60 {
		return nil, errors.New(errors.ErrInvalidInput, "slot_minutes must be between 1 and 60")
	}

	saved, err := s.repo.Upsert(ctx, &entity.ScheduleConfig{
		StartHour:   req.StartHour,
		EndHour:     req.EndHour,
		SlotMinutes: req.SlotMinutes,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save schedule", err)
	}
	return dto.ToScheduleResponse(saved), nil
}

// ActiveSlots generates the slot list for the configuration currently in
// effect.
func (s *ScheduleService) ActiveSlots(ctx context.Context) ([]string, *errors.AppError) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load schedule", err)
	}
	if cfg == nil {
		return nil, errors.New(errors.ErrScheduleNotConfigured, "schedule has not been configured")
	}
	return GenerateSlots(cfg), nil
}
