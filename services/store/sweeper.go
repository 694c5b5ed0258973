package store

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Sweeper is implemented by stores that need active expiry
type Sweeper interface {
	Sweep() int
}

// StartSweeper runs s.Sweep every interval on a gocron scheduler. The caller
// owns the returned scheduler and must Shutdown it.
func StartSweeper(s Sweeper, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if removed := s.Sweep(); removed > 0 {
				log.Printf("[SWEEP] Removed %d expired entries", removed)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
