package jobs

import (
	"fmt"
	"log"
	"os"
	"time"

	"crm/internal/config"

	"github.com/robfig/cron/v3"
)

// Job is a named cron.Job.
type Job interface {
	cron.Job
	Name() string
}

// Scheduled pairs a job with its cron spec.
type Scheduled struct {
	Spec string
	Job  Job
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}

// Build returns the jobs configured in cfg, all calling api.
func Build(cfg config.JobsConfig, api API) []Scheduled {
	return []Scheduled{
		{Spec: cfg.LowStockSchedule, Job: &LowStockJob{API: api, LogPath: cfg.LowStockLog}},
		{Spec: cfg.HeartbeatSchedule, Job: &HeartbeatJob{API: api, LogPath: cfg.HeartbeatLog}},
		{Spec: cfg.OrderRemindersSchedule, Job: &OrderRemindersJob{API: api, LogPath: cfg.OrderRemindersLog, Window: cfg.ReminderWindow}},
	}
}

// Find returns the job called name.
func Find(jobs []Scheduled, name string) (Job, error) {
	names := make([]string, 0, len(jobs))
	for _, s := range jobs {
		if s.Job.Name() == name {
			return s.Job, nil
		}
		names = append(names, s.Job.Name())
	}
	return nil, fmt.Errorf("unknown job %q (want one of %v)", name, names)
}

// NewScheduler registers jobs on a cron scheduler that recovers from panics
// and never runs two instances of the same job at once. The caller starts
// and stops it.
func NewScheduler(jobs []Scheduled) (*cron.Cron, error) {
	logger := cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	for _, s := range jobs {
		if _, err := c.AddJob(s.Spec, s.Job); err != nil {
			return nil, fmt.Errorf("failed to schedule %s job with %q: %w", s.Job.Name(), s.Spec, err)
		}
		log.Printf("Scheduled %s job: %s", s.Job.Name(), s.Spec)
	}
	return c, nil
}
