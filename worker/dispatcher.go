// Package worker runs fire-and-forget jobs such as audit writes and mail
// on a fixed pool of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BerniceZTT/crm_api/utils"
)

// Job is one unit of background work. Its context is cancelled when the
// job runs past the dispatcher timeout.
type Job func(ctx context.Context) error

type task struct {
	name string
	run  Job
}

// Stats is a snapshot of the dispatcher counters.
type Stats struct {
	Workers   int    `json:"workers"`
	Queued    int    `json:"queued"`
	Capacity  int    `json:"capacity"`
	Processed uint64 `json:"processed"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Dispatcher queues jobs on a bounded channel consumed by a fixed pool.
type Dispatcher struct {
	queue   chan task
	workers int
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	processed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// NewDispatcher starts workers goroutines reading from a queue of queueSize.
func NewDispatcher(workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	d := &Dispatcher{
		queue:   make(chan task, queueSize),
		workers: workers,
		timeout: timeout,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.loop()
	}
	utils.Logger.Info().Int("workers", workers).Int("queue", queueSize).Msg("dispatcher started")
	return d
}

// Submit enqueues fn without blocking. It returns false when the queue is
// full or the dispatcher is closed; the job is then counted as dropped.
func (d *Dispatcher) Submit(name string, fn Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		utils.Logger.Warn().Str("job", name).Msg("dispatcher closed, job dropped")
		return false
	}

	select {
	case d.queue <- task{name: name, run: fn}:
		return true
	default:
		d.dropped.Add(1)
		utils.Logger.Warn().Str("job", name).Msg("dispatcher queue full, job dropped")
		return false
	}
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()
	for t := range d.queue {
		d.execute(t)
	}
}

func (d *Dispatcher) execute(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	err := d.safeRun(ctx, t)
	if err != nil {
		d.failed.Add(1)
		utils.Logger.Error().Err(err).Str("job", t.name).Dur("took", time.Since(start)).Msg("background job failed")
		return
	}
	d.processed.Add(1)
	utils.Logger.Debug().Str("job", t.name).Dur("took", time.Since(start)).Msg("background job done")
}

func (d *Dispatcher) safeRun(ctx context.Context, t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.run(ctx)
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Workers:   d.workers,
		Queued:    len(d.queue),
		Capacity:  cap(d.queue),
		Processed: d.processed.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}

// Close stops accepting jobs and waits for queued ones to finish or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s := d.Stats()
		utils.Logger.Info().
			Uint64("processed", s.Processed).
			Uint64("failed", s.Failed).
			Uint64("dropped", s.Dropped).
			Msg("dispatcher drained")
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("dispatcher did not drain"), ctx.Err())
	}
}
