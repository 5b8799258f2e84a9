package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"autobook/config"
)

// Task types handled by the reconciliation worker.
const (
	TypeSlotRelease = "slot:release"
	TypeSlotSweep   = "slot:sweep"
)

// SlotReleasePayload identifies the deleted booking and the slot it held.
// Mongo delete change-events carry only the document key, so the deletion
// path publishes this payload itself while it still has the document.
type SlotReleasePayload struct {
	BookingID string `json:"bookingId"`
	SlotID    string `json:"slotId"`
}

// ReleaseQueue enqueues slot-release reconciliation tasks.
type ReleaseQueue struct {
	client *asynq.Client
}

// NewReleaseQueue constructs the queue publisher against the shared Redis.
func NewReleaseQueue() *ReleaseQueue {
	return &ReleaseQueue{
		client: asynq.NewClient(redisOpt()),
	}
}

// PublishSlotRelease hands the release to the worker. asynq retries delivery,
// so the consumer side has at-least-once semantics.
func (q *ReleaseQueue) PublishSlotRelease(ctx context.Context, bookingID, slotID string) error {
	payload, err := json.Marshal(SlotReleasePayload{BookingID: bookingID, SlotID: slotID})
	if err != nil {
		return fmt.Errorf("failed to marshal release payload: %w", err)
	}
	task := asynq.NewTask(TypeSlotRelease, payload)
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(10)); err != nil {
		return fmt.Errorf("failed to enqueue slot release: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (q *ReleaseQueue) Close() error {
	return q.client.Close()
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
