package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/sdianka/portfolio/internal/services"
)

// housekeepingTimeout bounds a single housekeeping run.
const housekeepingTimeout = time.Minute

// HousekeepingResult reports what one housekeeping run removed.
type HousekeepingResult struct {
	MessagesPurged int64
	EventsPruned   int64
}

// Housekeeper periodically purges old read messages and trims the
// activity log on a cron schedule.
type Housekeeper struct {
	messageSvc    services.MessageServiceProvider
	eventSvc      services.EventServiceProvider
	retentionDays int
	keepEvents    int
	spec          string
	cron          *cron.Cron
	now           func() time.Time
}

// NewHousekeeper creates a new Housekeeper. retentionDays <= 0 disables
// message purging; keepEvents <= 0 disables event pruning.
func NewHousekeeper(messageSvc services.MessageServiceProvider, eventSvc services.EventServiceProvider, spec string, retentionDays, keepEvents int) *Housekeeper {
	return &Housekeeper{
		messageSvc:    messageSvc,
		eventSvc:      eventSvc,
		retentionDays: retentionDays,
		keepEvents:    keepEvents,
		spec:          spec,
		cron:          cron.New(),
		now:           time.Now,
	}
}

// Start validates the schedule and starts the cron loop in its own goroutine.
func (h *Housekeeper) Start() error {
	if _, err := cron.ParseStandard(h.spec); err != nil {
		return fmt.Errorf("invalid housekeeping schedule %q: %w", h.spec, err)
	}
	_, err := h.cron.AddFunc(h.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), housekeepingTimeout)
		defer cancel()
		h.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	log.Info().Str("schedule", h.spec).Msg("Starting background housekeeping...")
	h.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (h *Housekeeper) Stop() {
	<-h.cron.Stop().Done()
	log.Info().Msg("Stopped background housekeeping.")
}

// RunOnce performs a single housekeeping pass. Failures of one step are
// logged and do not prevent the other.
func (h *Housekeeper) RunOnce(ctx context.Context) HousekeepingResult {
	var res HousekeepingResult

	if h.retentionDays > 0 {
		cutoff := h.now().AddDate(0, 0, -h.retentionDays)
		n, err := h.messageSvc.PurgeReadBefore(ctx, cutoff)
		if err != nil {
			log.Error().Err(err).Msg("Housekeeping: failed to purge read messages")
		} else {
			res.MessagesPurged = n
		}
	}

	if h.keepEvents > 0 {
		n, err := h.eventSvc.PruneEvents(ctx, h.keepEvents)
		if err != nil {
			log.Error().Err(err).Msg("Housekeeping: failed to prune events")
		} else {
			res.EventsPruned = n
		}
	}

	if res.MessagesPurged > 0 {
		msg := fmt.Sprintf("Housekeeping purged %d read messages older than %d days.", res.MessagesPurged, h.retentionDays)
		h.eventSvc.CreateEvent("system.housekeeping", "info", msg)
	}
	log.Info().
		Int64("messages_purged", res.MessagesPurged).
		Int64("events_pruned", res.EventsPruned).
		Msg("Housekeeping finished")
	return res
}
