// Package scheduler runs the ledger's daily batch passes in-process.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"microcredit-backoffice/pkg/clock"
)

// Job is one daily pass, fired at Hour:Minute in the scheduler's zone.
type Job struct {
	Name   string
	Hour   int
	Minute int
	Run    func(ctx context.Context) error
}

// ParseDaily builds a Job from an "HH:MM" wall-clock time.
func ParseDaily(name, hhmm string, run func(ctx context.Context) error) (Job, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return Job{}, fmt.Errorf("job %s: time %q is not HH:MM", name, hhmm)
	}
	return Job{Name: name, Hour: t.Hour(), Minute: t.Minute(), Run: run}, nil
}

// NextRun returns the first instant after now at which j fires in loc.
func (j Job) NextRun(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	next := time.Date(n.Year(), n.Month(), n.Day(), j.Hour, j.Minute, 0, 0, loc)
	if !next.After(n) {
		next = time.Date(n.Year(), n.Month(), n.Day()+1, j.Hour, j.Minute, 0, 0, loc)
	}
	return next
}

type Scheduler struct {
	jobs    []Job
	loc     *time.Location
	clock   clock.Clock
	timeout time.Duration

	// newTimer is swapped in tests
	newTimer func(d time.Duration) (<-chan time.Time, func() bool)

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
	runMu   sync.Mutex // one pass at a time
}

func New(loc *time.Location, c clock.Clock, jobs ...Job) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if c == nil {
		c = clock.System{}
	}
	return &Scheduler{
		jobs:    jobs,
		loc:     loc,
		clock:   c,
		timeout: 30 * time.Minute,
		newTimer: func(d time.Duration) (<-chan time.Time, func() bool) {
			t := time.NewTimer(d)
			return t.C, t.Stop
		},
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j, s.stop)
		log.Printf("[scheduler] %s scheduled daily at %02d:%02d %s, next %s",
			j.Name, j.Hour, j.Minute, s.loc, j.NextRun(s.clock.Now(), s.loc).Format(time.RFC3339))
	}
}

// Stop waits for a pass in flight to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("[scheduler] stopped")
}

func (s *Scheduler) loop(j Job, stop <-chan struct{}) {
	defer s.wg.Done()
	for {
		wait := j.NextRun(s.clock.Now(), s.loc).Sub(s.clock.Now())
		if wait < 0 {
			wait = 0
		}
		fire, cancel := s.newTimer(wait)
		select {
		case <-stop:
			cancel()
			return
		case <-fire:
			s.execute(j)
		}
	}
}

// RunNow executes the named job immediately and returns its error.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	for _, j := range s.jobs {
		if j.Name == name {
			return s.executeCtx(ctx, j)
		}
	}
	return fmt.Errorf("scheduler: unknown job %q", name)
}

func (s *Scheduler) execute(j Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_ = s.executeCtx(ctx, j)
}

func (s *Scheduler) executeCtx(ctx context.Context, j Job) (err error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := s.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.Name, r)
		}
		if err != nil {
			log.Printf("[scheduler] %s failed after %s: %v", j.Name, s.clock.Now().Sub(start), err)
			return
		}
		log.Printf("[scheduler] %s finished in %s", j.Name, s.clock.Now().Sub(start))
	}()
	log.Printf("[scheduler] %s starting", j.Name)
	return j.Run(ctx)
}
