package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Load overlays the YAML file at path on top of the active configuration,
// validates the result and makes it active. Keys missing from the file keep
// their current values.
func Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := Current()
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	Apply(c)
	return nil
}

// Validate reports every setting the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Physics.TickRate <= 0 {
		errs = append(errs, errors.New("physics.tick_rate must be positive"))
	}
	if c.Physics.Substeps <= 0 {
		errs = append(errs, errors.New("physics.substeps must be positive"))
	}
	if c.Physics.CellSize <= 0 || c.Physics.WorldExtent <= 0 {
		errs = append(errs, errors.New("physics.cell_size and physics.world_extent must be positive"))
	}
	if c.Network.TickRate <= 0 {
		errs = append(errs, errors.New("network.tick_rate must be positive"))
	} else if c.Network.TickRate > c.Physics.TickRate {
		errs = append(errs, fmt.Errorf("network.tick_rate %d must not exceed physics.tick_rate %d",
			c.Network.TickRate, c.Physics.TickRate))
	}
	if c.Network.ClientTimeout < 0 {
		errs = append(errs, errors.New("network.client_timeout must not be negative"))
	}
	if c.Network.ActionBufferLimit <= 0 {
		errs = append(errs, errors.New("network.action_buffer_limit must be positive"))
	}
	if c.Movement.DampingFactor <= 0 || c.Movement.DampingFactor >= 1 {
		errs = append(errs, fmt.Errorf("movement.damping_factor %v must be in (0,1)", c.Movement.DampingFactor))
	}
	if c.Movement.CastScale <= 0 || c.Movement.CastScale > 1 {
		errs = append(errs, fmt.Errorf("movement.cast_scale %v must be in (0,1]", c.Movement.CastScale))
	}
	if c.Movement.CastSamples <= 0 {
		errs = append(errs, errors.New("movement.cast_samples must be positive"))
	}
	if c.Character.Radius <= 0 || c.Character.HalfHeight < 0 {
		errs = append(errs, errors.New("character.radius must be positive and character.half_height not negative"))
	}
	if c.Server.MaxClients <= 0 {
		errs = append(errs, errors.New("server.max_clients must be positive"))
	}

	return errors.Join(errs...)
}
