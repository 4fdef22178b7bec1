// File: internal/core/system.go
package core

import (
	"context"
	"fmt"
	"sync"

	"mover-service/internal/config"
	"mover-service/internal/logger"
	"mover-service/internal/messaging"
	"mover-service/internal/store"
	"mover-service/internal/types"
)

// Mover arbitrates between the operator goal and avoidance corrections and
// publishes the chosen command while the mode allows it.
type Mover struct {
	cfg     config.MoverConfig
	redis   MessagingClient
	io      HardwareIO
	avoider Avoider
	sinks   []CommandSink
	logger  *logger.Logger

	planeID   int
	store     *store.CommandStore
	modes     *ModeController
	publisher *PublishScheduler

	// ctx runs the mode machine; pubCtx runs the publish loop and is
	// cancelled first on shutdown.
	ctx       context.Context
	cancel    context.CancelFunc
	pubCtx    context.Context
	pubCancel context.CancelFunc
	wg        sync.WaitGroup
}

// NewMover wires the components. Emitted commands always go to the bus;
// extra sinks (e.g. the serial link) receive a copy.
func NewMover(cfg config.MoverConfig, redis MessagingClient, io HardwareIO, avoider Avoider, l *logger.Logger, extraSinks ...CommandSink) *Mover {
	ctx, cancel := context.WithCancel(context.Background())
	pubCtx, pubCancel := context.WithCancel(ctx)
	m := &Mover{
		cfg:     cfg,
		redis:   redis,
		io:      io,
		avoider: avoider,
		sinks:   append([]CommandSink{redis}, extraSinks...),
		logger:  l,
		store:   store.New(types.Command{}),
		ctx:       ctx,
		cancel:    cancel,
		pubCtx:    pubCtx,
		pubCancel: pubCancel,
	}
	m.modes = NewModeController(io, redis, l.WithTag("Mode"))

	redis.SetCallbacks(messaging.Callbacks{
		TelemetryCallback: m.handleTelemetry,
		CommandCallback:   m.handleCommand,
	})
	return m
}

func (m *Mover) Start() error {
	m.logger.Infof("Starting mover")

	if err := m.redis.Connect(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if err := m.io.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize hardware: %w", err)
	}

	if err := m.bootstrap(); err != nil {
		m.io.Cleanup()
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	if err := m.modes.Start(m.ctx); err != nil {
		m.io.Cleanup()
		return fmt.Errorf("failed to start mode machine: %w", err)
	}

	if err := m.redis.PublishMode(m.modes.Mode()); err != nil {
		m.logger.Warnf("Failed to publish initial mode: %v", err)
	}

	if err := m.redis.StartListening(); err != nil {
		m.cancel()
		m.io.Cleanup()
		return fmt.Errorf("failed to start listeners: %w", err)
	}

	m.publisher = NewPublishScheduler(m.modes, m.store, m.cfg.PublishInterval, m.logger.WithTag("Publish"), m.sinks...)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.publisher.Run(m.pubCtx)
	}()

	m.logger.Infof("Mover started for plane %d in mode %s", m.planeID, m.modes.Mode())
	return nil
}

func (m *Mover) PlaneID() int {
	return m.planeID
}

func (m *Mover) Mode() types.Mode {
	return m.modes.Mode()
}

// Shutdown stops the publish loop and joins the dispatch path before the
// mode machine is stopped, so no in-flight mode change is left waiting on
// a dead event loop.
func (m *Mover) Shutdown() {
	m.pubCancel()
	m.wg.Wait()

	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			m.logger.Warnf("Error closing Redis client: %v", err)
		}
	}

	m.cancel()

	if m.io != nil {
		m.io.Cleanup()
	}
}
