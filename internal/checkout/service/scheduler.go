package service

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

// Scheduler runs fn once, after d has elapsed, on a goroutine of its own.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// CronScheduler runs one-shot jobs on a robfig/cron runner.
type CronScheduler struct {
	cron *cron.Cron
}

// NewCronScheduler starts the runner. Call Stop to release it.
func NewCronScheduler() *CronScheduler {
	log := cronLogger{s: logger.L().Sugar()}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log)),
	)
	c.Start()
	return &CronScheduler{cron: c}
}

func (s *CronScheduler) After(d time.Duration, fn func()) {
	ids := make(chan cron.EntryID, 1)
	job := cron.FuncJob(func() {
		s.cron.Remove(<-ids)
		fn()
	})
	ids <- s.cron.Schedule(&onceSchedule{at: time.Now().Add(d)}, job)
}

// Stop halts the runner and waits for running jobs to return.
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// onceSchedule yields its instant on the first call and the zero time afterwards,
// which cron treats as never.
type onceSchedule struct {
	mu    sync.Mutex
	at    time.Time
	fired bool
}

func (o *onceSchedule) Next(time.Time) time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fired {
		return time.Time{}
	}
	o.fired = true
	return o.at
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
