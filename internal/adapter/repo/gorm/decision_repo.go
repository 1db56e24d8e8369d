package gormrepo

import (
	"context"
	"encoding/json"

	"triage/internal/adapter/repo/gorm/model"
	"triage/internal/app/ports"
	"triage/internal/domain/combat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DecisionRepo struct {
	db *gorm.DB
}

func NewDecisionRepo(db *gorm.DB) DecisionRepo {
	return DecisionRepo{db: db}
}

func (r DecisionRepo) Append(ctx context.Context, records []ports.DecisionRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]model.DecisionRecord, 0, len(records))
	for _, rec := range records {
		var candidates []byte
		if len(rec.Candidates) > 0 {
			candidates, _ = json.Marshal(rec.Candidates)
		}
		rows = append(rows, model.DecisionRecord{
			RunID:      rec.RunID,
			Tick:       int64(rec.Tick),
			Slot:       string(rec.Slot),
			Module:     rec.Module,
			Ability:    string(rec.Ability),
			TargetID:   rec.TargetID,
			Amount:     int32(rec.Amount),
			Reason:     string(rec.Reason),
			Candidates: candidates,
			OccurredAt: rec.OccurredAt,
		})
	}
	return txFrom(ctx, r.db).Create(&rows).Error
}

func (r DecisionRepo) ListRecent(ctx context.Context, runID string, limit int) ([]ports.DecisionRecord, error) {
	rows := []model.DecisionRecord{}
	query := txFrom(ctx, r.db).
		Where("run_id = ?", runID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "tick"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		var candidates []ports.HealCandidate
		if len(row.Candidates) > 0 {
			_ = json.Unmarshal(row.Candidates, &candidates)
		}
		out = append(out, ports.DecisionRecord{
			RunID:      row.RunID,
			Tick:       uint64(row.Tick),
			Slot:       combat.SlotType(row.Slot),
			Module:     row.Module,
			Ability:    combat.AbilityID(row.Ability),
			TargetID:   row.TargetID,
			Amount:     int(row.Amount),
			Reason:     combat.RejectReason(row.Reason),
			Candidates: candidates,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}

var _ ports.DecisionJournal = DecisionRepo{}
