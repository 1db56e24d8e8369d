package httpadapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"triage/internal/adapter/config/static"
	"triage/internal/adapter/repo/memory"
	"triage/internal/app/engine"
	"triage/internal/app/observe"
	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/app/replay"
	"triage/internal/domain/combat"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type fakeEngine struct {
	disabled bool
}

func (e *fakeEngine) Disabled() bool { return e.disabled }
func (e *fakeEngine) Disable()       { e.disabled = true }
func (e *fakeEngine) Enable()        { e.disabled = false }

type fakeMetrics struct{}

func (fakeMetrics) SnapshotAny() any {
	return map[string]uint64{"decision_total": 5}
}

func testHandler(t *testing.T) (Handler, *observe.Board, *fakeEngine) {
	t.Helper()
	board := observe.NewBoard()
	config := static.NewProvider(profile.Default())
	store := memory.NewStore()
	runs := memory.NewRunRepo(store)
	if err := runs.Create(context.Background(), ports.RunRecord{RunID: "run-1", Status: ports.RunStatusActive}); err != nil {
		t.Fatalf("seed run: %v", err)
	}
	eng := &fakeEngine{}
	h := Handler{
		ObserveUC: observe.UseCase{Board: board, Config: config, Metrics: fakeMetrics{}},
		ReplayUC:  replay.UseCase{Runs: runs, Journal: memory.NewDecisionRepo(store)},
		Engine:    eng,
		Config:    config,
		RunID:     "run-1",
	}
	return h, board, eng
}

func decodeBody(t *testing.T, ctx *app.RequestContext, out any) {
	t.Helper()
	if err := json.Unmarshal(ctx.Response.Body(), out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, ctx.Response.Body())
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, ctx, &body)
	return body.Error.Code
}

func TestHealthz(t *testing.T) {
	h, _, _ := testHandler(t)
	ctx := &app.RequestContext{}
	h.healthz(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status = %d, want 200", got)
	}
}

func TestEngineStatus_BeforeFirstTick(t *testing.T) {
	h, _, _ := testHandler(t)
	ctx := &app.RequestContext{}
	h.engineStatus(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status = %d, want 404", got)
	}
	if got, want := errorCode(t, ctx), "no_ticks_yet"; got != want {
		t.Fatalf("code = %q, want %q", got, want)
	}
}

func TestEngineStatus_AfterPublish(t *testing.T) {
	h, board, _ := testHandler(t)
	board.Publish(engine.TickReport{
		Tick:     9,
		InCombat: true,
		Gauge:    combat.GaugePair{Primary: 1, Secondary: 2},
	}, time.Now())

	ctx := &app.RequestContext{}
	h.engineStatus(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", got, ctx.Response.Body())
	}
	var resp observe.StatusResponse
	decodeBody(t, ctx, &resp)
	if resp.Tick != 9 || !resp.InCombat {
		t.Fatalf("unexpected status response: %+v", resp)
	}
	if resp.Gauge.Secondary != 2 {
		t.Fatalf("gauge = %+v, want secondary 2", resp.Gauge)
	}
}

func TestCandidates_CopiesRing(t *testing.T) {
	h, board, _ := testHandler(t)
	board.Publish(engine.TickReport{
		Tick: 4,
		Candidates: []ports.HealCandidate{
			{Seq: 0, Ability: combat.AbilityBloom, Valid: true, Selected: true},
		},
	}, time.Now())

	ctx := &app.RequestContext{}
	h.candidates(context.Background(), ctx)
	var resp observe.CandidatesResponse
	decodeBody(t, ctx, &resp)
	if resp.Tick != 4 || len(resp.Candidates) != 1 {
		t.Fatalf("unexpected candidates response: %+v", resp)
	}
}

func TestDecisions_UsesConfiguredRun(t *testing.T) {
	h, _, _ := testHandler(t)
	ctx := &app.RequestContext{}
	h.decisions(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", got, ctx.Response.Body())
	}
	var resp replay.Response
	decodeBody(t, ctx, &resp)
	if resp.Run.RunID != "run-1" {
		t.Fatalf("run id = %q, want run-1", resp.Run.RunID)
	}
}

func TestDecisions_UnknownRun(t *testing.T) {
	h, _, _ := testHandler(t)
	ctx := &app.RequestContext{}
	ctx.QueryArgs().Add("run_id", "run-x")
	h.decisions(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status = %d, want 404", got)
	}
	if got, want := errorCode(t, ctx), "not_found"; got != want {
		t.Fatalf("code = %q, want %q", got, want)
	}
}

func TestProfile_ServesActiveSnapshot(t *testing.T) {
	h, _, _ := testHandler(t)
	ctx := &app.RequestContext{}
	h.profile(context.Background(), ctx)
	var snap profile.Snapshot
	decodeBody(t, ctx, &snap)
	if snap.Strategy != profile.StrategyTiered {
		t.Fatalf("strategy = %q, want tiered", snap.Strategy)
	}
}

func TestEnableDisable_FlipsTheLatch(t *testing.T) {
	h, _, eng := testHandler(t)

	ctx := &app.RequestContext{}
	h.disable(context.Background(), ctx)
	if !eng.disabled {
		t.Fatal("disable should latch the engine off")
	}
	var body map[string]bool
	decodeBody(t, ctx, &body)
	if !body["disabled"] {
		t.Fatalf("response = %v, want disabled true", body)
	}

	ctx = &app.RequestContext{}
	h.enable(context.Background(), ctx)
	if eng.disabled {
		t.Fatal("enable should clear the latch")
	}
}

func TestOpsKey_GuardsMutatingRoutes(t *testing.T) {
	h, _, eng := testHandler(t)
	h.OpsKey = "secret"

	ctx := &app.RequestContext{}
	h.disable(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", got)
	}
	if eng.disabled {
		t.Fatal("latch must not flip without a valid key")
	}

	ctx = &app.RequestContext{}
	ctx.Request.Header.Set(opsKeyHeader, "secret")
	h.disable(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status with key = %d, want 200", got)
	}
	if !eng.disabled {
		t.Fatal("latch should flip with a valid key")
	}
}

func TestOpsKey_DoesNotGuardReads(t *testing.T) {
	h, board, _ := testHandler(t)
	h.OpsKey = "secret"
	board.Publish(engine.TickReport{Tick: 1}, time.Now())

	ctx := &app.RequestContext{}
	h.engineStatus(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status = %d, want 200", got)
	}
}

func TestKPI(t *testing.T) {
	h, _, _ := testHandler(t)
	ctx := &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	var body map[string]uint64
	decodeBody(t, ctx, &body)
	if body["decision_total"] != 5 {
		t.Fatalf("kpi = %v, want decision_total 5", body)
	}
}
