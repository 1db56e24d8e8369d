package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configfile "triage/internal/adapter/config/file"
	configstatic "triage/internal/adapter/config/static"
	"triage/internal/adapter/encounter/sim"
	httpadapter "triage/internal/adapter/http"
	"triage/internal/adapter/journal"
	metricsinmem "triage/internal/adapter/metrics/inmemory"
	gormrepo "triage/internal/adapter/repo/gorm"
	"triage/internal/adapter/repo/memory"
	"triage/internal/adapter/stream"
	"triage/internal/app/engine"
	"triage/internal/app/observe"
	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/app/replay"
	"triage/internal/domain/combat"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"
)

type config struct {
	HTTPAddr      string `env:"TRIAGE_HTTP_ADDR" envDefault:":8080"`
	StreamAddr    string `env:"TRIAGE_STREAM_ADDR" envDefault:":8081"`
	DBDSN         string `env:"TRIAGE_DB_DSN"`
	ProfilePath   string `env:"TRIAGE_PROFILE_PATH"`
	SchemaPath    string `env:"TRIAGE_SCHEMA_PATH" envDefault:"profile.schema.json"`
	MigrationsDir string `env:"TRIAGE_MIGRATIONS_DIR" envDefault:"migrations"`
	TickMS        int    `env:"TRIAGE_TICK_MS" envDefault:"16"`
	Seed          int64  `env:"TRIAGE_ENCOUNTER_SEED" envDefault:"1"`
	OpsKey        string `env:"TRIAGE_OPS_KEY"`
	AgentLevel    int    `env:"TRIAGE_AGENT_LEVEL" envDefault:"80"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	provider := buildProfileProvider(cfg)
	runs, journalRepo, txManager := buildRepos(cfg)

	runID := "run-" + time.Now().UTC().Format("20060102-150405")
	startedAt := time.Now().UTC()
	run := ports.RunRecord{
		RunID:     runID,
		StartedAt: startedAt,
		Seed:      cfg.Seed,
		Profile:   string(provider.Snapshot().Strategy),
		Status:    ports.RunStatusActive,
	}
	if err := runs.Create(context.Background(), run); err != nil {
		log.Fatalf("create run %s: %v", runID, err)
	}

	kit := combat.DefaultKit()
	simCfg := sim.DefaultConfig(cfg.Seed)
	simCfg.Level = cfg.AgentLevel
	host := sim.NewHost(simCfg, kit)

	recorder := metricsinmem.NewRecorder()
	sched := engine.New(engine.Deps{
		Kit:      kit,
		Config:   provider,
		Status:   host,
		Executor: host,
		Roster:   host,
		Pending:  host,
		Metrics:  recorder,
		Trend:    host,
		Targets:  host,
	})

	board := observe.NewBoard()
	writer := journal.NewWriter(runID, runs, journalRepo, txManager)
	hub := stream.NewHub()
	streamSrv := startStreamServer(cfg.StreamAddr, hub)

	h := httpadapter.Handler{
		ObserveUC:  observe.UseCase{Board: board, Config: provider, Metrics: recorder},
		ReplayUC:   replay.UseCase{Runs: runs, Journal: journalRepo},
		Engine:     sched,
		Config:     provider,
		RunID:      runID,
		OpsKey:     cfg.OpsKey,
		SchemaPath: cfg.SchemaPath,
	}
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)
	go s.Spin()

	log.Printf("agentd run %s: ops on %s, stream on %s, tick %dms", runID, cfg.HTTPAddr, cfg.StreamAddr, cfg.TickMS)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	tickEvery := time.Duration(cfg.TickMS) * time.Millisecond
	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-stop:
			break loop
		case <-ticker.C:
			runTick(host, sched, recorder, board, hub, writer, runID, tickEvery)
		}
	}

	log.Println("agentd shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := writer.Close(shutdownCtx); err != nil {
		log.Printf("close journal writer: %v", err)
	}
	if err := runs.Close(shutdownCtx, runID, time.Now().UTC()); err != nil {
		log.Printf("close run %s: %v", runID, err)
	}
	hub.Close()
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown stream listener: %v", err)
	}
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown ops server: %v", err)
	}
}

// runTick is one full frame: step the world, run the decision cycle, fan the
// report out to the status board, the stream hub, and the journal writer.
func runTick(host *sim.Host, sched *engine.Scheduler, recorder *metricsinmem.Recorder, board *observe.Board, hub *stream.Hub, writer *journal.Writer, runID string, dt time.Duration) {
	host.Advance(dt)
	snap := host.Snapshot()

	start := time.Now()
	report, err := sched.Execute(snap)
	recorder.RecordTick(time.Since(start))
	if err != nil && !errors.Is(err, ports.ErrEngineDisabled) {
		log.Printf("tick %d: %v", snap.Tick, err)
	}

	now := time.Now().UTC()
	board.Publish(report, now)
	hub.Broadcast(report)
	writer.Enqueue(decisionRecords(runID, report, now))
}

// decisionRecords converts a tick's executed actions to journal rows. Ticks
// with no actions yield nil; the writer still counts the tick. The candidate
// ring rides on the first record only.
func decisionRecords(runID string, report engine.TickReport, at time.Time) []ports.DecisionRecord {
	if len(report.Actions) == 0 {
		return nil
	}
	records := make([]ports.DecisionRecord, 0, len(report.Actions))
	for i, a := range report.Actions {
		rec := ports.DecisionRecord{
			RunID:      runID,
			Tick:       report.Tick,
			Slot:       a.Slot,
			Module:     a.Module,
			Ability:    a.Ability,
			TargetID:   a.TargetID,
			Amount:     a.Amount,
			OccurredAt: at,
		}
		if i == 0 {
			rec.Candidates = report.Candidates
		}
		records = append(records, rec)
	}
	return records
}

func buildProfileProvider(cfg config) ports.ConfigProvider {
	base := profile.Default()
	if cfg.ProfilePath == "" {
		return configstatic.NewProvider(base)
	}
	return configfile.NewProvider(cfg.ProfilePath, base)
}

func buildRepos(cfg config) (ports.RunRepository, ports.DecisionJournal, ports.TxManager) {
	if cfg.DBDSN == "" {
		store := memory.NewStore()
		return memory.NewRunRepo(store), memory.NewDecisionRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewRunRepo(db), gormrepo.NewDecisionRepo(db), gormrepo.NewTxManager(db)
}

func startStreamServer(addr string, hub *stream.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws/ticks", hub)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("stream listener: %v", err)
		}
	}()
	return srv
}
