// Package tasks runs periodic maintenance jobs, such as the snapshot
// retention sweep, on their own goroutines for the lifetime of the app.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a periodic maintenance task. Run receives a context that is
// cancelled at shutdown; long sweeps must honor it.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner schedules registered jobs. Register everything before Start;
// the runner is not safe for concurrent registration.
type Runner struct {
	logger *zap.Logger
	jobs   []Job
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a Runner.
func New(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Register adds a job to the schedule.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches every registered job. Each job runs once immediately,
// then on its interval until Stop.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.schedule(ctx, job)
	}

	r.logger.Info("maintenance runner started", zap.Int("jobs", len(r.jobs)))
}

// Stop cancels all job contexts and waits for in-flight runs to finish.
// If ctx expires first, it returns ctx.Err; a job that ignores its
// context is left behind.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("maintenance runner stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("maintenance runner shutdown timed out",
			zap.Int("jobs", len(r.jobs)))
		return ctx.Err()
	}
}

// RunOnce executes the named job immediately, outside its schedule.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	for _, job := range r.jobs {
		if job.Name == name {
			return job.Run(ctx)
		}
	}
	return fmt.Errorf("tasks: no job named %q", name)
}

func (r *Runner) schedule(ctx context.Context, job Job) {
	defer r.wg.Done()

	r.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.execute(ctx, job)
		}
	}
}

func (r *Runner) execute(ctx context.Context, job Job) {
	start := time.Now()

	if err := job.Run(ctx); err != nil {
		// Cancellation during shutdown is expected, not a failure.
		if ctx.Err() != nil {
			return
		}
		r.logger.Error("maintenance job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}

	r.logger.Debug("maintenance job completed",
		zap.String("job", job.Name),
		zap.Duration("duration", time.Since(start)))
}
