package core

import (
	"context"
	"time"

	"mover-service/internal/logger"
	"mover-service/internal/store"
	"mover-service/internal/types"
)

// ModeSource is the read side of ModeController used by the publish loop.
type ModeSource interface {
	Mode() types.Mode
	Changed() <-chan struct{}
}

// PublishScheduler emits at most one command per interval to every sink,
// according to the current mode.
type PublishScheduler struct {
	modes    ModeSource
	store    *store.CommandStore
	sinks    []CommandSink
	interval time.Duration
	logger   *logger.Logger
}

func NewPublishScheduler(modes ModeSource, s *store.CommandStore, interval time.Duration, l *logger.Logger, sinks ...CommandSink) *PublishScheduler {
	return &PublishScheduler{
		modes:    modes,
		store:    s,
		sinks:    sinks,
		interval: interval,
		logger:   l,
	}
}

// Run loops until ctx is cancelled. Shutdown is observed between ticks;
// an emission in progress always completes.
func (p *PublishScheduler) Run(ctx context.Context) {
	p.logger.Infof("Publish loop started (interval %s)", p.interval)
	for p.tick(ctx) {
	}
	p.logger.Infof("Publish loop stopped")
}

// tick runs one iteration and reports whether the loop should continue.
func (p *PublishScheduler) tick(ctx context.Context) bool {
	if p.modes.Mode() == types.ModeHalted {
		// Nothing is ever emitted while halted; wait for the next transition.
		select {
		case <-ctx.Done():
			return false
		case <-p.modes.Changed():
			return true
		}
	}

	timer := time.NewTimer(p.interval)
	select {
	case <-ctx.Done():
		timer.Stop()
		return false
	case <-timer.C:
	}

	// A stop applied during the wait suppresses this tick.
	switch p.modes.Mode() {
	case types.ModeDirectGoal:
		p.emit(p.store.Goal())
	case types.ModeAvoidGuided:
		if cmd, ok := p.store.PopAvoidance(); ok {
			p.emit(cmd)
		}
	}
	return true
}

func (p *PublishScheduler) emit(cmd types.Command) {
	p.logger.Debugf("Publishing command for plane %d: lat=%f lon=%f alt=%f id=%d",
		cmd.PlaneID, cmd.Latitude, cmd.Longitude, cmd.Altitude, cmd.CommandID)
	for _, sink := range p.sinks {
		if err := sink.PublishCommand(cmd); err != nil {
			p.logger.Warnf("Failed to publish command: %v", err)
		}
	}
}
