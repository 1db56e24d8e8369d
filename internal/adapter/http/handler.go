package httpadapter

import (
	"context"
	"crypto/subtle"
	"errors"
	"os"
	"strconv"

	"triage/internal/app/observe"
	"triage/internal/app/ports"
	"triage/internal/app/replay"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const opsKeyHeader = "X-Ops-Key"

// EngineControl is the slice of the scheduler the ops surface may touch:
// the disable latch and nothing else.
type EngineControl interface {
	Disabled() bool
	Disable()
	Enable()
}

type Handler struct {
	ObserveUC observe.UseCase
	ReplayUC  replay.UseCase
	Engine    EngineControl
	Config    ports.ConfigProvider
	RunID     string

	// OpsKey guards the mutating routes when non-empty.
	OpsKey string
	// SchemaPath points at the generated profile JSON Schema, if present.
	SchemaPath string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	s.GET("/healthz", h.healthz)

	ops := s.Group("/ops")
	ops.GET("/kpi", h.kpi)
	ops.GET("/engine", h.engineStatus)
	ops.GET("/candidates", h.candidates)
	ops.GET("/decisions", h.decisions)
	ops.GET("/profile", h.profile)
	ops.GET("/profile/schema", h.profileSchema)
	ops.POST("/enable", h.enable)
	ops.POST("/disable", h.disable)
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) kpi(c context.Context, ctx *app.RequestContext) {
	snap, err := h.ObserveUC.KPI(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, snap)
}

func (h Handler) engineStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Status(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) candidates(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Candidates(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) decisions(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	runID := string(ctx.Query("run_id"))
	if runID == "" {
		runID = h.RunID
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{RunID: runID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) profile(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Config.Snapshot())
}

func (h Handler) profileSchema(_ context.Context, ctx *app.RequestContext) {
	if h.SchemaPath == "" {
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", "profile schema not configured")
		return
	}
	b, err := os.ReadFile(h.SchemaPath)
	if err != nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", "profile schema not available")
		return
	}
	ctx.Data(consts.StatusOK, "application/json", b)
}

func (h Handler) enable(_ context.Context, ctx *app.RequestContext) {
	if !h.authorized(ctx) {
		writeErrorBody(ctx, consts.StatusUnauthorized, "unauthorized", "invalid ops key")
		return
	}
	h.Engine.Enable()
	ctx.JSON(consts.StatusOK, map[string]bool{"disabled": h.Engine.Disabled()})
}

func (h Handler) disable(_ context.Context, ctx *app.RequestContext) {
	if !h.authorized(ctx) {
		writeErrorBody(ctx, consts.StatusUnauthorized, "unauthorized", "invalid ops key")
		return
	}
	h.Engine.Disable()
	ctx.JSON(consts.StatusOK, map[string]bool{"disabled": h.Engine.Disabled()})
}

// authorized enforces the static ops key on mutating routes. An empty
// configured key means the surface is open (demo mode).
func (h Handler) authorized(ctx *app.RequestContext) bool {
	if h.OpsKey == "" {
		return true
	}
	got := ctx.GetHeader(opsKeyHeader)
	return subtle.ConstantTimeCompare(got, []byte(h.OpsKey)) == 1
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, observe.ErrNoTicksYet):
		writeErrorBody(ctx, consts.StatusNotFound, "no_ticks_yet", err.Error())
	case errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrEngineDisabled):
		writeErrorBody(ctx, consts.StatusConflict, "engine_disabled", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
