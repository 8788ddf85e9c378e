package repository

import (
	"context"
	"database/sql"
	goerrors "errors"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/schedule/entity"
)

// ScheduleRepository persists the singleton schedule configuration.
type ScheduleRepository struct {
	DB database.IDatabase
}

func NewScheduleRepository(db database.IDatabase) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

type ScheduleRepositoryInterface interface {
	Get(ctx context.Context) (*entity.ScheduleConfig, error)
	Upsert(ctx context.Context, cfg *entity.ScheduleConfig) (*entity.ScheduleConfig, error)
}

func (r *ScheduleRepository) Get(ctx context.Context) (*entity.ScheduleConfig, error) {
	query := `
		SELECT start_hour, end_hour, slot_minutes, created_at, updated_at
		FROM schedule_config WHERE singleton = TRUE
	`

	var cfg entity.ScheduleConfig
	err := r.DB.GetContext(ctx, &cfg, query)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ScheduleRepository:Get", err)
		return nil, err
	}
	return &cfg, nil
}

// Upsert writes the configuration through the singleton row so concurrent
// admin saves and multiple server instances converge on one record.
func (r *ScheduleRepository) Upsert(ctx context.Context, cfg *entity.ScheduleConfig) (*entity.ScheduleConfig, error) {
	query := `
		INSERT INTO schedule_config (singleton, start_hour, end_hour, slot_minutes)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (singleton) DO UPDATE
		SET start_hour = EXCLUDED.start_hour,
		    end_hour = EXCLUDED.end_hour,
		    slot_minutes = EXCLUDED.slot_minutes,
		    updated_at = NOW()
		RETURNING start_hour, end_hour, slot_minutes, created_at, updated_at
	`

	var saved entity.ScheduleConfig
	err := r.DB.GetContext(ctx, &saved, query, cfg.StartHour, cfg.EndHour, cfg.SlotMinutes)
	if err != nil {
		logger.Error("ScheduleRepository:Upsert", err)
		return nil, err
	}
	return &saved, nil
}
