package service

import (
	"context"
	goerrors "errors"
	"time"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/queue"
	"agenda-api/core/utils"
	"agenda-api/modules/appointment/dto"
	"agenda-api/modules/appointment/entity"
	"agenda-api/modules/appointment/repository"
	authentity "agenda-api/modules/auth/entity"

	"github.com/google/uuid"
)

// ScheduleProvider yields the slot list generated by the active schedule.
type ScheduleProvider interface {
	ActiveSlots(ctx context.Context) ([]string, *errors.AppError)
}

// UserDirectory resolves owner identities for on-behalf-of bookings and
// confirmation emails.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*authentity.User, *errors.AppError)
}

// ConfirmationQueue enqueues the booking confirmation email. Best effort.
type ConfirmationQueue interface {
	EnqueueBookingConfirmation(ctx context.Context, p queue.BookingConfirmationPayload) error
}

// AppointmentService orchestrates booking requests: validation, owner
// resolution, slot checking and the atomic commit.
type AppointmentService struct {
	repo     repository.AppointmentRepositoryInterface
	schedule ScheduleProvider
	users    UserDirectory
	queue    ConfirmationQueue
}

type AppointmentServiceInterface interface {
	Create(ctx context.Context, requesterID uuid.UUID, requesterIsAdmin bool, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, *errors.AppError)
	Occupied(ctx context.Context, date string) (*dto.OccupancyResponse, *errors.AppError)
	Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, requesterIsAdmin bool) *errors.AppError
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]dto.AppointmentResponse, *errors.AppError)
	ListAll(ctx context.Context) ([]dto.AppointmentWithOwnerResponse, *errors.AppError)
}

func NewAppointmentService(
	repo repository.AppointmentRepositoryInterface,
	schedule ScheduleProvider,
	users UserDirectory,
	q ConfirmationQueue,
) AppointmentServiceInterface {
	return &AppointmentService{repo: repo, schedule: schedule, users: users, queue: q}
}

// parseDay normalizes "YYYY-MM-DD" to UTC midnight. Every day comparison in
// the ledger uses this boundary, so bookings near local midnight cannot
// drift to a neighboring day.
func parseDay(date string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func parseSlot(slot string) bool {
	_, err := time.Parse("15:04", slot)
	return err == nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func (s *AppointmentService) Create(ctx context.Context, requesterID uuid.UUID, requesterIsAdmin bool, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, *errors.AppError) {
	if req.Date == "" {
		return nil, errors.New(errors.ErrInvalidInput, "date is required")
	}
	if req.SlotStart == "" {
		return nil, errors.New(errors.ErrInvalidInput, "slot_start is required")
	}
	day, ok := parseDay(req.Date)
	if !ok {
		return nil, errors.New(errors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}
	if !parseSlot(req.SlotStart) {
		return nil, errors.New(errors.ErrInvalidInput, "slot_start must be in HH:MM format")
	}

	// Resolve the effective owner before touching the ledger.
	ownerID := requesterID
	var owner *authentity.User
	if req.OwnerID != "" {
		targetID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			return nil, errors.New(errors.ErrInvalidInput, "owner_id is not a valid user id")
		}
		if !requesterIsAdmin && targetID != requesterID {
			return nil, errors.New(errors.ErrForbidden, "you are not allowed to book appointments for other users")
		}
		if targetID != requesterID {
			target, appErr := s.users.GetUserByID(ctx, targetID)
			if appErr != nil {
				if appErr.Code == errors.ErrNotFound {
					return nil, errors.New(errors.ErrNotFound, "the specified user does not exist")
				}
				return nil, appErr
			}
			owner = target
		}
		ownerID = targetID
	}

	slots, appErr := s.schedule.ActiveSlots(ctx)
	if appErr != nil {
		return nil, appErr
	}
	if !containsSlot(slots, req.SlotStart) {
		return nil, errors.New(errors.ErrInvalidInput, "slot_start is outside the configured schedule")
	}

	created, err := s.repo.Insert(ctx, &entity.Appointment{
		ID:        uuid.New(),
		Code:      utils.GenerateCode(),
		OwnerID:   ownerID,
		Day:       day,
		SlotStart: req.SlotStart,
		Reason:    req.Reason,
	})
	if err != nil {
		if goerrors.Is(err, repository.ErrDuplicateSlot) {
			// Normal contention outcome, never retried here; the caller
			// re-fetches occupancy and picks another slot.
			return nil, errors.New(errors.ErrSlotTaken, "the selected slot is no longer available")
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create appointment", err)
	}

	s.enqueueConfirmation(ctx, created, owner)

	return dto.ToAppointmentResponse(created), nil
}

// enqueueConfirmation is best effort: a failed enqueue never fails the
// booking.
func (s *AppointmentService) enqueueConfirmation(ctx context.Context, a *entity.Appointment, owner *authentity.User) {
	if s.queue == nil {
		return
	}
	if owner == nil {
		resolved, appErr := s.users.GetUserByID(ctx, a.OwnerID)
		if appErr != nil {
			logger.Warn("AppointmentService:enqueueConfirmation:owner lookup failed", "owner_id", a.OwnerID.String())
			return
		}
		owner = resolved
	}
	err := s.queue.EnqueueBookingConfirmation(ctx, queue.BookingConfirmationPayload{
		Email:     owner.Email,
		Name:      owner.FullName(),
		Day:       a.Day.UTC().Format("2006-01-02"),
		SlotStart: a.SlotStart,
		Code:      a.Code,
	})
	if err != nil {
		logger.Error("AppointmentService:enqueueConfirmation", err)
	}
}

func (s *AppointmentService) Occupied(ctx context.Context, date string) (*dto.OccupancyResponse, *errors.AppError) {
	if date == "" {
		return nil, errors.New(errors.ErrInvalidInput, "date is required")
	}
	day, ok := parseDay(date)
	if !ok {
		return nil, errors.New(errors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}

	slots, err := s.repo.OccupiedSlots(ctx, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load occupancy", err)
	}
	if slots == nil {
		slots = []string{}
	}
	return &dto.OccupancyResponse{
		Date:     day.Format("2006-01-02"),
		Occupied: slots,
	}, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, requesterIsAdmin bool) *errors.AppError {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get appointment", err)
	}
	if a == nil {
		return errors.New(errors.ErrNotFound, "appointment not found")
	}
	if a.OwnerID != requesterID && !requesterIsAdmin {
		return errors.New(errors.ErrForbidden, "you are not allowed to cancel this appointment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to cancel appointment", err)
	}
	return nil
}

func (s *AppointmentService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]dto.AppointmentResponse, *errors.AppError) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list appointments", err)
	}
	result := make([]dto.AppointmentResponse, 0, len(items))
	for i := range items {
		result = append(result, *dto.ToAppointmentResponse(&items[i]))
	}
	return result, nil
}

func (s *AppointmentService) ListAll(ctx context.Context) ([]dto.AppointmentWithOwnerResponse, *errors.AppError) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list appointments", err)
	}
	result := make([]dto.AppointmentWithOwnerResponse, 0, len(items))
	for i := range items {
		result = append(result, *dto.ToAppointmentWithOwnerResponse(&items[i]))
	}
	return result, nil
}
