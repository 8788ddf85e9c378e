package repository

import (
	"context"
	"database/sql"
	goerrors "errors"
	"time"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/appointment/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateSlot is returned by Insert when another booking already holds
// the (day, slot_start) pair.
var ErrDuplicateSlot = goerrors.New("slot is already booked")

// AppointmentRepository is the booking ledger. The appointments table
// carries UNIQUE (day, slot_start); Insert relies on that constraint instead
// of checking first, so concurrent reservations of the same slot serialize
// in the database and exactly one wins.
type AppointmentRepository struct {
	DB database.IDatabase
}

func NewAppointmentRepository(db database.IDatabase) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

type AppointmentRepositoryInterface interface {
	Insert(ctx context.Context, a *entity.Appointment) (*entity.Appointment, error)
	OccupiedSlots(ctx context.Context, day time.Time) ([]string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Appointment, error)
	ListAll(ctx context.Context) ([]entity.AppointmentWithOwner, error)
}

const appointmentColumns = `id, code, owner_id, day, slot_start, reason, created_at, updated_at`

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if goerrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// Insert attempts the reservation. A unique violation means the slot was
// taken by a concurrent booking and maps to ErrDuplicateSlot.
func (r *AppointmentRepository) Insert(ctx context.Context, a *entity.Appointment) (*entity.Appointment, error) {
	query := `
		INSERT INTO appointments (id, code, owner_id, day, slot_start, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + appointmentColumns

	var created entity.Appointment
	err := r.DB.GetContext(ctx, &created, query,
		a.ID, a.Code, a.OwnerID, a.Day, a.SlotStart, a.Reason)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		logger.Error("AppointmentRepository:Insert", err)
		return nil, err
	}
	return &created, nil
}

func (r *AppointmentRepository) OccupiedSlots(ctx context.Context, day time.Time) ([]string, error) {
	query := `SELECT slot_start FROM appointments WHERE day = $1 ORDER BY slot_start`

	var slots []string
	err := r.DB.SelectContext(ctx, &slots, query, day)
	if err != nil {
		logger.Error("AppointmentRepository:OccupiedSlots", err)
		return nil, err
	}
	return slots, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var a entity.Appointment
	err := r.DB.GetContext(ctx, &a, query, id)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AppointmentRepository:GetByID", err)
		return nil, err
	}
	return &a, nil
}

// Delete removes the booking permanently; cancellation does not keep a
// tombstone, the slot simply becomes free again.
func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("AppointmentRepository:Delete", err)
		return err
	}
	return nil
}

func (r *AppointmentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE owner_id = $1
		ORDER BY day ASC, slot_start ASC
	`

	var out []entity.Appointment
	err := r.DB.SelectContext(ctx, &out, query, ownerID)
	if err != nil {
		logger.Error("AppointmentRepository:ListByOwner", err)
		return nil, err
	}
	return out, nil
}

// ListAll returns every booking with owner identity, most recent day first
// and chronological within each day.
func (r *AppointmentRepository) ListAll(ctx context.Context) ([]entity.AppointmentWithOwner, error) {
	query := `
		SELECT a.id, a.code, a.owner_id, a.day, a.slot_start, a.reason,
		       a.created_at, a.updated_at,
		       u.first_name AS owner_first_name,
		       u.last_name AS owner_last_name,
		       u.email AS owner_email
		FROM appointments a
		JOIN users u ON u.id = a.owner_id
		ORDER BY a.day DESC, a.slot_start ASC
	`

	var out []entity.AppointmentWithOwner
	err := r.DB.SelectContext(ctx, &out, query)
	if err != nil {
		logger.Error("AppointmentRepository:ListAll", err)
		return nil, err
	}
	return out, nil
}
