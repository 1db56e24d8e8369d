package gormrepo

import (
	"context"
	"errors"
	"time"

	"triage/internal/adapter/repo/gorm/model"
	"triage/internal/app/ports"

	"gorm.io/gorm"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) Create(ctx context.Context, run ports.RunRecord) error {
	row := model.EngineRun{
		RunID:     run.RunID,
		StartedAt: run.StartedAt,
		Seed:      run.Seed,
		Profile:   run.Profile,
		TickCount: int64(run.TickCount),
		Status:    run.Status,
		EndedAt:   run.EndedAt,
	}
	return txFrom(ctx, r.db).Create(&row).Error
}

func (r RunRepo) Get(ctx context.Context, runID string) (ports.RunRecord, error) {
	var m model.EngineRun
	if err := txFrom(ctx, r.db).Where("run_id = ?", runID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RunRecord{}, ports.ErrNotFound
		}
		return ports.RunRecord{}, err
	}
	return ports.RunRecord{
		RunID:     m.RunID,
		StartedAt: m.StartedAt,
		Seed:      m.Seed,
		Profile:   m.Profile,
		TickCount: uint64(m.TickCount),
		Status:    m.Status,
		EndedAt:   m.EndedAt,
	}, nil
}

func (r RunRepo) BumpTicks(ctx context.Context, runID string, ticks uint64) error {
	res := txFrom(ctx, r.db).Model(&model.EngineRun{}).
		Where("run_id = ?", runID).
		Update("tick_count", gorm.Expr("tick_count + ?", int64(ticks)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r RunRepo) Close(ctx context.Context, runID string, endedAt time.Time) error {
	res := txFrom(ctx, r.db).Model(&model.EngineRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"status":   ports.RunStatusClosed,
			"ended_at": endedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
