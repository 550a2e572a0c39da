// Command netcharacon is a headless client: it joins a server, drives its
// character from an input script and predicts it locally.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automoto/netcharacon/assets"
	"github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/input"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/network"
	"github.com/automoto/netcharacon/scenes"
	"github.com/automoto/netcharacon/shared/leveldata"
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/automoto/netcharacon/shared/netconfig"
	"github.com/automoto/netcharacon/shared/protocol"
	"github.com/automoto/netcharacon/systems"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	addr       string
	name       string
	script     string
	level      string
	loop       bool
	duration   time.Duration
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML config file (empty uses built-in defaults)")
	flag.StringVar(&o.addr, "addr", "", "Server address host:port (overrides config)")
	flag.StringVar(&o.name, "name", "", "Player name (overrides config)")
	flag.StringVar(&o.script, "script", "", "Input script, e.g. \"W*20,W+D*10,SPACE,_*5\" (overrides config)")
	flag.StringVar(&o.level, "level", "", "TMX level path, must match the server's (empty uses the embedded arena)")
	flag.BoolVar(&o.loop, "loop", false, "Repeat the input script")
	flag.DurationVar(&o.duration, "duration", 0, "Disconnect after this long (0 runs until interrupted)")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "client:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.configPath != "" {
		if err := config.Load(o.configPath); err != nil {
			return err
		}
	}
	if o.addr != "" {
		config.Client.ServerAddr = o.addr
	}
	if o.name != "" {
		config.Client.PlayerName = o.name
	}
	if o.script != "" {
		config.Client.Script = o.script
	}

	if err := logging.Init(config.Log); err != nil {
		return err
	}
	defer logging.Sync()
	log := logging.Named("main")

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("register components: %w", err)
	}

	level, err := loadLevel(o.level)
	if err != nil {
		return err
	}

	var sampler input.Sampler = input.IdleSampler{}
	if config.Client.Script != "" {
		s, err := input.NewScriptSampler(config.Client.Script, o.loop)
		if err != nil {
			return err
		}
		sampler = s
	}

	identity := loadIdentity(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if o.duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, o.duration)
		defer stop()
	}

	client := network.NewClient()
	defer client.Disconnect()
	client.Connect(config.Client.ServerAddr, messages.JoinRequest{
		Version:    config.Client.Version,
		PlayerName: identity.PlayerName,
		SessionID:  identity.SessionID,
	})

	joinCtx, joinCancel := context.WithTimeout(ctx, config.Client.JoinTimeout)
	err = client.WaitJoined(joinCtx)
	joinCancel()
	if err != nil {
		return fmt.Errorf("join %s: %w", config.Client.ServerAddr, err)
	}
	tickRate, physicsRate, substeps := client.Rates()
	if physicsRate != config.Physics.TickRate || substeps != config.Physics.Substeps || tickRate != config.Network.TickRate {
		log.Warnw("server rates differ from local config, prediction will drift",
			"server", []int{tickRate, physicsRate, substeps},
			"local", []int{config.Network.TickRate, config.Physics.TickRate, config.Physics.Substeps})
	}
	log.Infow("joined", "server", client.ServerName(), "networkId", client.NetworkID(), "session", identity.SessionID)

	scene, err := scenes.NewNetworkedScene(level, client, sampler)
	if err != nil {
		return err
	}
	return drive(ctx, client, scene, log)
}

// drive runs the physics and network tickers on one goroutine until ctx
// ends or the connection drops.
func drive(ctx context.Context, client *network.Client, scene *scenes.NetworkedScene, log *zap.SugaredLogger) error {
	physicsTicker := time.NewTicker(config.Physics.TickInterval())
	defer physicsTicker.Stop()
	networkTicker := time.NewTicker(config.Network.TickInterval())
	defer networkTicker.Stop()
	statusTicker := time.NewTicker(time.Second)
	defer statusTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infow("leaving", "corrections", scene.Reconciler().Corrections())
			return nil
		case <-physicsTicker.C:
			scene.PhysicsTick()
		case <-networkTicker.C:
			if client.State() == netconfig.Disconnected {
				if err := client.LastError(); err != nil {
					return fmt.Errorf("connection lost: %w", err)
				}
				return errors.New("connection lost")
			}
			scene.NetworkTick()
		case <-statusTicker.C:
			for _, v := range scene.Views() {
				log.Debugw("character", "id", v.NetworkID, "local", v.Local,
					"pos", v.Position, "yaw", v.Yaw, "grounded", v.Grounded)
			}
		}
	}
}

func loadLevel(path string) (*leveldata.LevelData, error) {
	if path == "" {
		return assets.LoadLevel(assets.DefaultLevel)
	}
	level, err := leveldata.LoadLevel(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", path, err)
	}
	return level, nil
}

// loadIdentity falls back to a throwaway session id when the data directory
// is unusable.
func loadIdentity(log *zap.SugaredLogger) systems.Identity {
	store, err := systems.OpenStore(config.Client.AppName)
	if err == nil {
		var id systems.Identity
		if id, err = systems.LoadIdentity(store, config.Client.PlayerName); err == nil {
			return id
		}
	}
	log.Warnw("identity not persisted", "err", err)
	return systems.Identity{SessionID: uuid.NewString(), PlayerName: config.Client.PlayerName}
}
