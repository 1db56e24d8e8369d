package replay

import (
	"context"
	"errors"
	"strings"

	"triage/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const (
	defaultLimit = 50
	maxLimit     = 500
)

// UseCase lists the most recent journaled decisions of a run, newest first,
// together with the run's header row.
type UseCase struct {
	Runs    ports.RunRepository
	Journal ports.DecisionJournal
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	run, err := u.Runs.Get(ctx, req.RunID)
	if err != nil {
		return Response{}, err
	}
	decisions, err := u.Journal.ListRecent(ctx, req.RunID, limit)
	if err != nil {
		return Response{}, err
	}
	if decisions == nil {
		decisions = []ports.DecisionRecord{}
	}
	return Response{Run: run, Decisions: decisions}, nil
}
