// Package background runs named jobs off the request path with delay, retry
// and deduplication of pending work.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cawver-web/pkg/logger"
)

type SchedulerConfig struct {
	WorkerCount int
	QueueSize   int
}

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

type Job struct {
	Name        string
	Run         func(ctx context.Context) error
	Delay       time.Duration
	Timeout     time.Duration
	RetryPolicy RetryPolicy
}

var (
	ErrSchedulerNotStarted = errors.New("scheduler not started")
	ErrJobPending          = errors.New("job already pending")
	ErrSchedulerStopped    = errors.New("scheduler is shutting down")
)

type Scheduler struct {
	config SchedulerConfig

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool

	queue chan scheduledJob

	workerWG sync.WaitGroup
	jobWG    sync.WaitGroup

	pending map[string]struct{}
}

type scheduledJob struct {
	job     Job
	attempt int
	// coalesce is set while the job holds its name in the pending set.
	coalesce bool
}

var (
	metricsOnce        sync.Once
	jobRunsTotal       *prometheus.CounterVec
	jobDurationSeconds *prometheus.HistogramVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cawver",
			Subsystem: "background",
			Name:      "job_runs_total",
			Help:      "Total background job executions",
		}, []string{"job", "status"})

		jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cawver",
			Subsystem: "background",
			Name:      "job_duration_seconds",
			Help:      "Duration of background job executions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"})
	})
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	initMetrics()

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 8
	}

	return &Scheduler{
		config:  cfg,
		queue:   make(chan scheduledJob, cfg.QueueSize),
		pending: make(map[string]struct{}),
	}
}

// Start launches the workers. They stop when ctx is done or on Shutdown.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	for i := 0; i < s.config.WorkerCount; i++ {
		s.workerWG.Add(1)
		go s.worker()
	}
}

func (s *Scheduler) worker() {
	defer s.workerWG.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job scheduledJob) {
	if job.job.Delay > 0 {
		timer := time.NewTimer(job.job.Delay)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
			s.release(&job)
			return
		}
	}

	// Work that arrives from here on must run again, so the name is freed
	// before the job reads any state.
	s.release(&job)

	s.jobWG.Add(1)
	defer s.jobWG.Done()

	err := s.runJob(job)
	if err == nil {
		logger.Debug("Background job completed", map[string]interface{}{"job": job.job.Name, "attempt": job.attempt})
		return
	}

	if s.shouldRetry(job, err) {
		retry := job
		retry.attempt++
		retry.job.Delay = retry.job.RetryPolicy.Backoff
		if s.enqueue(retry) {
			return
		}
	}

	if errors.Is(err, context.Canceled) {
		logger.Warn("Background job canceled", map[string]interface{}{"job": job.job.Name, "attempt": job.attempt})
		return
	}
	logger.Error(err, "Background job gave up", map[string]interface{}{"job": job.job.Name, "attempt": job.attempt})
}

func (s *Scheduler) runJob(job scheduledJob) (runErr error) {
	start := time.Now()
	status := "success"

	ctx := s.ctx
	if job.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.job.Timeout)
		defer cancel()
	}

	defer func() {
		jobDurationSeconds.WithLabelValues(job.job.Name).Observe(time.Since(start).Seconds())
		jobRunsTotal.WithLabelValues(job.job.Name, status).Inc()
	}()

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			status = "failure"
			logger.Error(runErr, "Background job panicked", map[string]interface{}{"job": job.job.Name, "attempt": job.attempt})
		}
	}()

	select {
	case <-ctx.Done():
		status = "canceled"
		return ctx.Err()
	default:
	}

	if err := job.job.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		} else {
			status = "failure"
		}
		logger.Warn("Background job failed", map[string]interface{}{"job": job.job.Name, "attempt": job.attempt, "error": err.Error()})
		return err
	}

	return nil
}

func (s *Scheduler) shouldRetry(job scheduledJob, err error) bool {
	if job.job.RetryPolicy.MaxRetries <= 0 {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return job.attempt <= job.job.RetryPolicy.MaxRetries
}

func (s *Scheduler) enqueue(job scheduledJob) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case <-s.ctx.Done():
		return false
	case s.queue <- job:
		return true
	}
}

func (s *Scheduler) release(job *scheduledJob) {
	if !job.coalesce {
		return
	}
	s.mu.Lock()
	delete(s.pending, job.job.Name)
	s.mu.Unlock()
	job.coalesce = false
}

// Schedule queues job unconditionally.
func (s *Scheduler) Schedule(job Job) error {
	return s.schedule(job, false)
}

// ScheduleCoalesced queues job unless one with the same name is still
// waiting to start, in which case ErrJobPending is returned and the pending
// run covers both requests.
func (s *Scheduler) ScheduleCoalesced(job Job) error {
	return s.schedule(job, true)
}

func (s *Scheduler) schedule(job Job, coalesce bool) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	if coalesce {
		if _, exists := s.pending[job.Name]; exists {
			s.mu.Unlock()
			return ErrJobPending
		}
		s.pending[job.Name] = struct{}{}
	}
	s.mu.Unlock()

	scheduled := scheduledJob{job: job, attempt: 1, coalesce: coalesce}
	if !s.enqueue(scheduled) {
		s.release(&scheduled)
		return ErrSchedulerStopped
	}

	return nil
}

// Shutdown cancels queued work and waits for running jobs up to ctx.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.workerWG.Wait()
		s.jobWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
