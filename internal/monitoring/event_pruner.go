package monitoring

import (
	"time"

	"github.com/isdelr/notes-api-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// EventPruner periodically deletes audit events older than the retention
// window. Prune runs follow a cron schedule; the ticker only decides how
// often the schedule is checked.
type EventPruner struct {
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	nextRun   time.Time
	ticker    *time.Ticker
	done      chan bool
}

// NewEventPruner creates a pruner from a standard cron expression. The
// expression is validated at config load, so parse failures here are a
// programming error.
func NewEventPruner(eventSvc services.EventServiceProvider, cronExpr string, retention time.Duration) (*EventPruner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &EventPruner{
		eventSvc:  eventSvc,
		schedule:  schedule,
		retention: retention,
		nextRun:   schedule.Next(time.Now()),
		done:      make(chan bool),
	}, nil
}

// Run starts the pruner's ticking loop.
func (p *EventPruner) Run() {
	log.Info().Msg("Starting background event pruner...")
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping background event pruner.")
			return
		case <-p.ticker.C:
			now := time.Now()
			if now.After(p.nextRun) {
				p.prune(now)
				p.nextRun = p.schedule.Next(now)
			}
		}
	}
}

// Stop halts the pruner.
func (p *EventPruner) Stop() {
	p.done <- true
}

// prune deletes events that have aged out of the retention window.
func (p *EventPruner) prune(now time.Time) {
	cutoff := now.Add(-p.retention)
	pruned, err := p.eventSvc.DeleteOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("EventPruner: Failed to prune old events")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("EventPruner: Removed old audit events")
	}
}
