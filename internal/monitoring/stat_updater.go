package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/sdianka/portfolio/internal/services"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	highCPUThreshold = 90.0
	alertCooldown    = 15 * time.Minute
)

// HostProbe reads the current host health.
type HostProbe func(ctx context.Context) (models.SystemHealth, error)

// GopsutilProbe samples CPU, memory and uptime of the local host.
func GopsutilProbe(ctx context.Context) (models.SystemHealth, error) {
	var h models.SystemHealth

	cpus, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return h, fmt.Errorf("cpu: %w", err)
	}
	if len(cpus) > 0 {
		h.CPUPercent = cpus[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return h, fmt.Errorf("memory: %w", err)
	}
	h.MemoryPercent = vm.UsedPercent

	if h.UptimeSeconds, err = host.UptimeWithContext(ctx); err != nil {
		return h, fmt.Errorf("uptime: %w", err)
	}
	h.SampledAt = time.Now().UTC()
	return h, nil
}

// HostSampler periodically samples host health for the dashboard and
// records an event when the CPU stays hot.
type HostSampler struct {
	probe     HostProbe
	eventSvc  services.EventServiceProvider
	interval  time.Duration
	done      chan struct{}
	stopOnce  sync.Once
	mu        sync.RWMutex
	latest    models.SystemHealth
	hasSample bool
	lastAlert time.Time
}

// NewHostSampler creates a new HostSampler. A nil probe uses GopsutilProbe.
func NewHostSampler(probe HostProbe, eventSvc services.EventServiceProvider, interval time.Duration) *HostSampler {
	if probe == nil {
		probe = GopsutilProbe
	}
	return &HostSampler{
		probe:    probe,
		eventSvc: eventSvc,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Run starts the periodic sampling; it returns after Stop.
func (hs *HostSampler) Run() {
	log.Info().Dur("interval", hs.interval).Msg("Starting background host sampler...")
	ticker := time.NewTicker(hs.interval)
	defer ticker.Stop()

	// Sample once immediately on start
	hs.sample()

	for {
		select {
		case <-hs.done:
			log.Info().Msg("Stopping background host sampler.")
			return
		case <-ticker.C:
			hs.sample()
		}
	}
}

// Stop halts the periodic sampling.
func (hs *HostSampler) Stop() {
	hs.stopOnce.Do(func() { close(hs.done) })
}

// Snapshot returns the latest sample and whether one has been taken.
func (hs *HostSampler) Snapshot() (models.SystemHealth, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.latest, hs.hasSample
}

func (hs *HostSampler) sample() {
	ctx, cancel := context.WithTimeout(context.Background(), hs.interval)
	defer cancel()

	h, err := hs.probe(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("HostSampler: failed to sample host stats")
		return
	}

	hs.mu.Lock()
	hs.latest = h
	hs.hasSample = true
	hs.mu.Unlock()

	hs.checkAndAlertForHighCPU(h)
}

func (hs *HostSampler) checkAndAlertForHighCPU(h models.SystemHealth) {
	if h.CPUPercent <= highCPUThreshold || hs.eventSvc == nil {
		return
	}
	// If an alert was sent recently, do nothing.
	if !hs.lastAlert.IsZero() && h.SampledAt.Sub(hs.lastAlert) < alertCooldown {
		return
	}
	msg := fmt.Sprintf("High CPU usage (%.1f%%) detected on the API host.", h.CPUPercent)
	hs.eventSvc.CreateEvent("system.alert.cpu", "warn", msg)
	hs.lastAlert = h.SampledAt
}
