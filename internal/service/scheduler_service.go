package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs periodic jobs, such as reminder scans, on a cron
// schedule.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService() *SchedulerService {
	return &SchedulerService{cron: cron.New()}
}

// ScheduleInterval registers fn to run every interval.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, fn func()) (cron.EntryID, error) {
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return 0, fmt.Errorf("schedule job: %w", err)
	}
	return id, nil
}

// Start launches the scheduler in its own goroutine.
func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
