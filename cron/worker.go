package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"autobook/config"
	"autobook/services/booking"
)

// InitReconcileWorker runs the async worker in background. It consumes the
// booking-deletion release events and the periodic stale-claim sweep.
func InitReconcileWorker(bookingSvc booking.BookingService) {
	srv := asynq.NewServer(
		redisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSlotRelease, handleSlotRelease(bookingSvc))
	mux.HandleFunc(TypeSlotSweep, handleSlotSweep(bookingSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleSlotRelease frees the slot held by a deleted booking. The release is
// idempotent, so redelivery of the same event is harmless; returning the
// error lets asynq redeliver on transient storage failure.
func handleSlotRelease(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SlotReleasePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SlotRelease] invalid payload: %v", err)
			return err
		}

		if p.SlotID == "" {
			// Legacy booking without a slot reference; nothing to free.
			return nil
		}

		if err := bookingSvc.ReleaseSlot(ctx, p.SlotID); err != nil {
			log.Printf("[SlotRelease] failed to free slot %s (booking %s): %v", p.SlotID, p.BookingID, err)
			return err
		}
		log.Printf("[SlotRelease] freed slot %s (booking %s)", p.SlotID, p.BookingID)
		return nil
	}
}

// handleSlotSweep releases claims that outlived their booking window.
func handleSlotSweep(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		released, err := bookingSvc.ReleaseExpiredClaims(ctx)
		if err != nil {
			log.Printf("[SlotSweep] sweep failed: %v", err)
			return err
		}
		if released > 0 {
			log.Printf("[SlotSweep] released %d orphaned claims", released)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReconcileWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
