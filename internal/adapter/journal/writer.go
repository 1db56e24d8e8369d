package journal

import (
	"context"
	"log"
	"time"

	"triage/internal/app/ports"
)

const defaultQueueDepth = 256

// Writer moves decision records from the tick loop to the journal without
// ever blocking a tick. Each enqueued batch is one tick's worth of records;
// the drain goroutine lands the records and the run's tick bump in a single
// transaction. When the queue backs up the oldest batch is dropped.
type Writer struct {
	runID   string
	runs    ports.RunRepository
	journal ports.DecisionJournal
	tx      ports.TxManager

	queue   chan batch
	stop    chan struct{}
	stopped chan struct{}
}

type batch struct {
	ticks   uint64
	records []ports.DecisionRecord
}

func NewWriter(runID string, runs ports.RunRepository, journal ports.DecisionJournal, tx ports.TxManager) *Writer {
	w := &Writer{
		runID:   runID,
		runs:    runs,
		journal: journal,
		tx:      tx,
		queue:   make(chan batch, defaultQueueDepth),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.drain()
	return w
}

// Enqueue hands one tick's records to the drain goroutine. Never blocks;
// under sustained backpressure the oldest queued batch is discarded.
func (w *Writer) Enqueue(records []ports.DecisionRecord) {
	b := batch{ticks: 1, records: records}
	for {
		select {
		case w.queue <- b:
			return
		default:
		}
		select {
		case dropped := <-w.queue:
			// Keep the tick count honest even when records are lost.
			b.ticks += dropped.ticks
		default:
		}
	}
}

// Close flushes everything still queued and stops the drain goroutine.
func (w *Writer) Close(ctx context.Context) error {
	close(w.stop)
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) drain() {
	defer close(w.stopped)
	for {
		select {
		case b := <-w.queue:
			w.land(b)
		case <-w.stop:
			for {
				select {
				case b := <-w.queue:
					w.land(b)
				default:
					return
				}
			}
		}
	}
}

func (w *Writer) land(b batch) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := w.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := w.journal.Append(txCtx, b.records); err != nil {
			return err
		}
		return w.runs.BumpTicks(txCtx, w.runID, b.ticks)
	})
	if err != nil {
		log.Printf("journal: drop batch for run %s: %v", w.runID, err)
	}
}
