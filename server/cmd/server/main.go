package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/server/admin"
	"github.com/automoto/netcharacon/server/core"
	"github.com/automoto/netcharacon/shared/protocol"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (empty uses built-in defaults)")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	name := flag.String("name", "", "Server display name (overrides config)")
	level := flag.String("level", "", "TMX level path (overrides config)")
	adminAddr := flag.String("admin", "", "Admin API listen address (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port, *name, *level, *adminAddr); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run(configPath string, port uint, name, level, adminAddr string) error {
	if configPath != "" {
		if err := config.Load(configPath); err != nil {
			return err
		}
	}
	if port != 0 {
		config.Server.Port = port
	}
	if name != "" {
		config.Server.Name = name
	}
	if level != "" {
		config.Server.Level = level
	}
	if adminAddr != "" {
		config.Server.AdminAddr = adminAddr
	}

	if err := logging.Init(config.Log); err != nil {
		return err
	}
	defer logging.Sync()
	log := logging.Named("main")

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("register components: %w", err)
	}

	lvl, err := core.LoadLevel(config.Server.Level)
	if err != nil {
		return err
	}

	server, err := core.NewServer(lvl)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if config.Server.AdminAddr != "" {
		handler := admin.NewRouter(server, config.Server.Name, config.Server.ObserveRate)
		go func() {
			if err := admin.Serve(ctx, config.Server.AdminAddr, handler); err != nil {
				log.Errorw("admin API stopped", "err", err)
			}
		}()
		log.Infow("admin API listening", "addr", config.Server.AdminAddr)
	}

	errc := make(chan error, 1)
	go func() {
		log.Infow("starting server",
			"name", config.Server.Name, "port", config.Server.Port,
			"physicsRate", config.Physics.TickRate, "substeps", config.Physics.Substeps,
			"tickRate", config.Network.TickRate, "maxClients", config.Server.MaxClients)
		errc <- server.Start(config.Server.Port)
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutting down server")
		server.Stop()
		return nil
	case err := <-errc:
		server.Stop()
		if err != nil {
			return fmt.Errorf("transport: %w", err)
		}
		return nil
	}
}
