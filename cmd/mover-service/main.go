package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mover-service/internal/avoidance"
	"mover-service/internal/config"
	"mover-service/internal/core"
	"mover-service/internal/hardware"
	"mover-service/internal/link"
	"mover-service/internal/logger"
	"mover-service/internal/messaging"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (defaults are used when empty)")
	serviceLogLevel := flag.Int("log", -1, "Service log level (0=NONE, 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG); overrides log_level from config")
	testing := flag.Bool("testing", false, "Use the goal waypoint as the avoidance result and skip the identity request")

	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *testing {
		cfg.Mover.Testing = true
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	if *serviceLogLevel >= 0 {
		level = logger.LogLevel(*serviceLogLevel)
	}

	// Create standard logger with appropriate format
	var stdLogger *log.Logger
	if os.Getenv("INVOCATION_ID") != "" {
		// Running under systemd, use minimal format
		stdLogger = log.New(os.Stdout, "", 0)
	} else {
		// Running interactively, use timestamps
		stdLogger = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
	}

	l := logger.NewLogger(stdLogger, level)

	l.Infof("Starting mover service (testing=%v)", cfg.Mover.Testing)

	redis := messaging.NewRedisClient(cfg.RedisAddr(), cfg.Channels, l.WithTag("Redis"))

	var io core.HardwareIO = hardware.NewNopIO()
	if cfg.GPIO.Enabled {
		io = hardware.NewLinuxHardwareIO(cfg.GPIO, l.WithTag("GPIO"))
	}

	var sinks []core.CommandSink
	var serialLink *link.Link
	if cfg.Serial.Enabled {
		serialLink, err = link.Open(cfg.Serial)
		if err != nil {
			l.Fatalf("Failed to open serial link: %v", err)
		}
		l.Infof("Mirroring commands to serial %s at %d baud", serialLink.Device(), cfg.Serial.Baud)
		sinks = append(sinks, serialLink)
	}

	system := core.NewMover(cfg.Mover, redis, io, avoidance.NewGoalTracker(), l.WithTag("Mover"), sinks...)
	if err := system.Start(); err != nil {
		l.Fatalf("Failed to start system: %v", err)
	}

	l.Infof("System started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	l.Infof("Received signal %v, shutting down...", sig)
	system.Shutdown()
	if serialLink != nil {
		if err := serialLink.Close(); err != nil {
			l.Warnf("Failed to close serial link: %v", err)
		}
	}
	l.Infof("Shutdown complete")
}
