package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/internal/devices"
	"github.com/tmcfarlane/goninja/internal/utils"
)

// PollerService heartbeats every managed device on a fixed interval, bounding
// concurrency with a worker pool. Each device is polled by at most one worker
// per tick, which keeps per-device access serialized.
type PollerService struct {
	Interval time.Duration
	Workers  int
	Manager  *devices.Manager
	Logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPollerService initializes a new PollerService.
func NewPollerService(interval time.Duration, workers int, manager *devices.Manager, logger zerolog.Logger) *PollerService {
	return &PollerService{
		Interval: interval,
		Workers:  workers,
		Manager:  manager,
		Logger:   logger,
	}
}

// Start launches the poll loop in a separate goroutine.
func (p *PollerService) Start() error {
	if p.ctx != nil {
		p.Logger.Warn().Msg("PollerService is already running")
		return errors.New("poller service is already running")
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runPollLoop()
	}()

	p.Logger.Info().Dur("interval", p.Interval).Int("workers", p.Workers).Msg("PollerService started successfully")
	return nil
}

// Stop gracefully stops the poller service.
func (p *PollerService) Stop() error {
	if p.ctx == nil {
		p.Logger.Warn().Msg("PollerService is not running")
		return errors.New("poller service is not running")
	}

	p.cancel()
	p.wg.Wait()

	p.ctx = nil
	p.cancel = nil

	p.Logger.Info().Msg("PollerService stopped successfully")
	return nil
}

// runPollLoop heartbeats all managed devices immediately and then on every
// tick. Ticks that land while a round is still in flight are dropped by the
// ticker, so rounds never overlap.
func (p *PollerService) runPollLoop() {
	pool := utils.NewWorkerPool(p.Workers)
	defer pool.Shutdown()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	p.pollAll(pool)

	for {
		select {
		case <-ticker.C:
			p.pollAll(pool)

		case <-p.ctx.Done():
			p.Logger.Info().Msg("PollerService stopping gracefully")
			return
		}
	}
}

// pollAll runs one heartbeat round and waits for it to finish.
func (p *PollerService) pollAll(pool *utils.WorkerPool) {
	var round sync.WaitGroup

	for _, dev := range p.Manager.All() {
		device := dev.Base()
		round.Add(1)
		pool.Submit(func() {
			defer round.Done()

			if _, _, err := device.Heartbeat(p.ctx); err != nil {
				p.Logger.Error().Err(err).Str("guid", device.GUID()).Msg("Device poll failed")
			}
		})
	}

	round.Wait()
}
