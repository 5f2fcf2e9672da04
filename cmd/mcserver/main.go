package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/voxborne/mcserver/internal/config"
	"github.com/voxborne/mcserver/internal/event"
	"github.com/voxborne/mcserver/internal/logger"
	"github.com/voxborne/mcserver/internal/protocol"
	"github.com/voxborne/mcserver/internal/server"
)

const protocolName = "1.16.5"

func main() {
	configPath := flag.String("config", "configs/config.json", "path to the server's JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = loadDefaults()
	}
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewBus()
	bus.Subscribe(event.TopicChat, event.LogChatEvent)
	bus.Subscribe(event.TopicJoin, logJoin)
	bus.Subscribe(event.TopicLeave, logLeave)

	srv, err := server.New(server.Options{
		ListenAddr:           net.JoinHostPort("0.0.0.0", strconv.Itoa(int(cfg.Port))),
		MaxPlayers:           int(cfg.MaxPlayers),
		OnlineMode:           cfg.OnlineMode,
		CompressionThreshold: cfg.CompressionThreshold,
		KeepAliveInterval:    time.Duration(cfg.KeepAliveIntervalMS) * time.Millisecond,
		KeepAliveTimeout:     time.Duration(cfg.KeepAliveTimeoutMS) * time.Millisecond,
		MOTD:                 cfg.MOTD,
		ProtocolVersion:      protocol.Version754,
		ProtocolName:         protocolName,
		StatusJSON:           server.DefaultStatusJSON(protocol.Version754, protocolName),
	}, bus)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer stop()
		if err := srv.Start(ctx); err != nil {
			slog.Error("server stopped with error", "error", err)
		}
	}()

	console := server.NewConsole(srv)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := console.Run(ctx); err != nil {
			slog.Error("console stopped with error", "error", err)
		}
	}()

	<-ctx.Done()
	srv.Stop()
	wg.Wait()
}

func loadDefaults() *config.Config {
	slog.Warn("falling back to default configuration")
	cfg := config.Defaults()
	return &cfg
}

func logJoin(raw any) {
	evt, ok := raw.(*event.JoinEvent)
	if !ok {
		return
	}
	slog.Info("player joined", "username", evt.Username, "uuid", evt.UUID.String())
}

func logLeave(raw any) {
	evt, ok := raw.(*event.LeaveEvent)
	if !ok {
		return
	}
	slog.Info("player left", "username", evt.Username, "uuid", evt.UUID.String(), "reason", evt.Reason)
}
