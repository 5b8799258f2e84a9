package cron

import (
	"log"

	"github.com/hibiken/asynq"

	"autobook/config"
)

// InitSweepScheduler registers the periodic stale-claim sweep. The cadence
// comes from CLAIM_SWEEP_CRON (asynq accepts cron specs and @every forms).
func InitSweepScheduler() {
	scheduler := asynq.NewScheduler(redisOpt(), nil)

	spec := config.AppConfig.ClaimSweepCron
	if spec == "" {
		spec = "@every 5m"
	}

	if _, err := scheduler.Register(spec, asynq.NewTask(TypeSlotSweep, nil)); err != nil {
		log.Fatalf("[SweepScheduler] failed to register sweep task: %v", err)
	}

	go func() {
		log.Printf("[SweepScheduler] scheduling stale-claim sweep (%s)", spec)
		if err := scheduler.Run(); err != nil {
			log.Printf("[SweepScheduler] scheduler stopped: %v", err)
		}
	}()
}
