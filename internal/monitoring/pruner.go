package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/bookcook/api/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// EventPruner trims the activity log to a fixed number of entries on a cron schedule.
type EventPruner struct {
	events services.EventServiceProvider
	keep   int
	cron   *cron.Cron
}

// NewEventPruner creates a pruner that runs on schedule, a standard cron expression
// or descriptor such as "@hourly" or "@every 30m".
func NewEventPruner(events services.EventServiceProvider, schedule string, keep int) (*EventPruner, error) {
	p := &EventPruner{
		events: events,
		keep:   keep,
		cron:   cron.New(),
	}
	if _, err := p.cron.AddFunc(schedule, p.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start runs the schedule in the background.
func (p *EventPruner) Start() {
	log.Info().Int("keep", p.keep).Msg("Starting event pruner...")
	p.cron.Start()
}

// Stop halts the schedule and waits for a running prune to finish.
func (p *EventPruner) Stop() {
	<-p.cron.Stop().Done()
	log.Info().Msg("Stopped event pruner.")
}

// RunOnce prunes the log immediately.
func (p *EventPruner) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := p.events.PruneEvents(ctx, p.keep)
	if err != nil {
		log.Error().Err(err).Msg("EventPruner: Failed to prune events")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Int("kept", p.keep).Msg("EventPruner: Pruned events")
	}
}
