package notification

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"BillTracker/internal/events"

	"go.uber.org/fx"
)

// FanoutScheduler polls the events collection and runs the fan-out for each
// pending event. It stands in for a managed trigger runtime: one invocation
// per event write, redelivered on failure because the event stays pending.
type FanoutScheduler struct {
	service   *FanoutService
	eventRepo *events.EventRepository
}

// NewFanoutScheduler creates a new scheduler for the notification fan-out.
func NewFanoutScheduler(service *FanoutService, eventRepo *events.EventRepository) *FanoutScheduler {
	return &FanoutScheduler{service: service, eventRepo: eventRepo}
}

// ProcessPending fans out every unprocessed event. Events are marked
// processed only after their batch commits; a failed event stays pending and
// is retried on the next tick.
func (s *FanoutScheduler) ProcessPending(ctx context.Context) {
	pending, err := s.eventRepo.FindUnprocessed(ctx, 50)
	if err != nil {
		log.Println("Failed to fetch pending events:", err)
		return
	}

	for _, e := range pending {
		// Re-read the latest snapshot; the document may have changed or
		// been deleted since the poll.
		snapshot, err := s.eventRepo.FindByID(ctx, e.ID)
		if err != nil {
			log.Printf("Failed to fetch event %s: %v", e.ID.Hex(), err)
			continue
		}

		if err := s.service.Process(ctx, snapshot); err != nil {
			if errors.Is(err, events.ErrEmptyHistory) || errors.Is(err, events.ErrUnknownType) {
				log.Printf("Event %s rejected: %v", e.ID.Hex(), err)
			} else {
				log.Printf("Fan-out failed for event %s: %v", e.ID.Hex(), err)
			}
			continue
		}

		if err := s.eventRepo.MarkProcessed(ctx, e.ID); err != nil {
			log.Printf("Failed to mark event %s processed: %v", e.ID.Hex(), err)
		}
	}
}

// StartScheduler starts the background goroutine that periodically processes
// pending events.
func (s *FanoutScheduler) StartScheduler(lc fx.Lifecycle) {
	intervalSec := 30
	if v := os.Getenv("FANOUT_POLL_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			intervalSec = parsed
		}
	}
	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	done := make(chan bool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Printf("Starting notification fan-out scheduler (every %d second(s))...", intervalSec)
			go func() {
				schedulerCtx := context.Background()
				for {
					select {
					case <-ticker.C:
						s.ProcessPending(schedulerCtx)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping notification fan-out scheduler...")
			ticker.Stop()
			done <- true
			return nil
		},
	})
}
