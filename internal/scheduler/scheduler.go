package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/egerke001/halfop/internal/logger"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

type JobName string

// JobFunc is the body of a periodic job.
type JobFunc func(context.Context) error

var ErrInvalidCronTab = errors.New("invalid crontab expression")

// Scheduler runs named cron jobs. A job never overlaps with itself: a run
// that comes due while the previous one is still going is rescheduled.
type Scheduler struct {
	jobs      map[JobName]uuid.UUID
	scheduler gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		jobs:      map[JobName]uuid.UUID{},
		scheduler: s,
	}, nil
}

// RegisterJob creates the job, or replaces its schedule if it exists.
func (s *Scheduler) RegisterJob(name JobName, crontab string, jobFunc JobFunc) error {
	if err := ValidateCronTab(crontab); err != nil {
		return err
	}

	def := gocron.CronJob(crontab, false)
	task := gocron.NewTask(wrapJob(name, jobFunc))
	mode := gocron.WithSingletonMode(gocron.LimitModeReschedule)

	if id, ok := s.jobs[name]; ok {
		_, err := s.scheduler.Update(id, def, task, mode)
		return err
	}

	job, err := s.scheduler.NewJob(def, task, mode, gocron.WithName(string(name)))
	if err != nil {
		return err
	}
	s.jobs[name] = job.ID()
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

// NextRun returns when the named job fires next.
func (s *Scheduler) NextRun(name JobName) (time.Time, error) {
	id, ok := s.jobs[name]
	if !ok {
		return time.Time{}, errors.New("unknown job " + string(name))
	}
	for _, j := range s.scheduler.Jobs() {
		if j.ID() == id {
			return j.NextRun()
		}
	}
	return time.Time{}, errors.New("job not scheduled " + string(name))
}

func ValidateCronTab(crontab string) error {
	cron := gocron.NewDefaultCron(false)
	if err := cron.IsValid(crontab, time.UTC, time.Now()); err != nil {
		return ErrInvalidCronTab
	}
	return nil
}

func wrapJob(name JobName, jobFunc JobFunc) func(context.Context) {
	return func(ctx context.Context) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.Debug("running periodic job %s", name)
		if err := jobFunc(ctx); err != nil {
			logger.Warn("periodic job %s failed: %v", name, err)
		}
	}
}
