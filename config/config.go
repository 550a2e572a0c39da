package config

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PhysicsConfig contains the fixed-step simulation settings shared by the
// authority and the local predictor. Both sides must agree on these values.
type PhysicsConfig struct {
	TickRate       int        `mapstructure:"tick_rate"` // physics ticks per second
	Substeps       int        `mapstructure:"substeps"`  // substeps per physics tick
	Gravity        mgl64.Vec3 `mapstructure:"gravity"`
	DampingEpsilon float64    `mapstructure:"damping_epsilon"` // horizontal speeds at or below this snap to 0
	KillPlaneY     float64    `mapstructure:"kill_plane_y"`    // characters below this respawn

	// Broad phase grid
	WorldExtent float64 `mapstructure:"world_extent"` // half width of the grid on X and Z
	CellSize    int     `mapstructure:"cell_size"`
}

// MovementConfig holds the default Movement Parameters copied into every
// character at spawn time.
type MovementConfig struct {
	Acceleration    float64 `mapstructure:"acceleration"`
	DampingFactor   float64 `mapstructure:"damping_factor"`
	JumpImpulse     float64 `mapstructure:"jump_impulse"`
	MaxSlopeAngle   float64 `mapstructure:"max_slope_angle"` // radians, 0 disables the slope test
	LookSensitivity float64 `mapstructure:"look_sensitivity"`

	// Ground cast
	CastScale    float64 `mapstructure:"cast_scale"`
	CastDistance float64 `mapstructure:"cast_distance"`
	CastSamples  int     `mapstructure:"cast_samples"`
}

// CharacterConfig contains the capsule dimensions and spawn point.
type CharacterConfig struct {
	Radius     float64    `mapstructure:"radius"`
	HalfHeight float64    `mapstructure:"half_height"` // half length of the capsule's inner segment
	Spawn      mgl64.Vec3 `mapstructure:"spawn"`
}

// NetworkConfig contains network tick and reconciliation tunables.
type NetworkConfig struct {
	TickRate          int `mapstructure:"tick_rate"` // input sampling and replication ticks per second
	ActionBufferLimit int `mapstructure:"action_buffer_limit"`
	CommandQueueSize  int `mapstructure:"command_queue_size"`

	// Intent validation
	MaxAngularDelta float64       `mapstructure:"max_angular_delta"`
	ClientTimeout   time.Duration `mapstructure:"client_timeout"` // silent sessions are evicted after this, 0 disables

	// Reconciliation
	TranslationErrorThreshold     float64 `mapstructure:"translation_error_threshold"`
	RotationErrorThreshold        float64 `mapstructure:"rotation_error_threshold"`
	PredictionErrorCountThreshold int     `mapstructure:"prediction_error_count_threshold"`
}

// ServerConfig contains dedicated server settings.
type ServerConfig struct {
	Name       string `mapstructure:"name"`
	Port       uint   `mapstructure:"port"`
	MaxClients int    `mapstructure:"max_clients"`
	Version    string `mapstructure:"version"` // required client version, empty accepts any
	Level      string `mapstructure:"level"`   // TMX path on disk, empty uses the embedded arena

	AdminAddr   string `mapstructure:"admin_addr"` // empty disables the admin API
	ObserveRate int    `mapstructure:"observe_rate"`
}

// ClientConfig contains headless client settings.
type ClientConfig struct {
	ServerAddr  string        `mapstructure:"server_addr"`
	PlayerName  string        `mapstructure:"player_name"`
	Version     string        `mapstructure:"version"`
	JoinTimeout time.Duration `mapstructure:"join_timeout"`
	Script      string        `mapstructure:"script"` // scripted input, see input.ParseScript
	AppName     string        `mapstructure:"app_name"`
}

// LogConfig controls the zap logger and its rotating file sink.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty logs to stderr only
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Config groups every section. It is the shape of the YAML file read by Load.
type Config struct {
	Physics   PhysicsConfig   `mapstructure:"physics"`
	Movement  MovementConfig  `mapstructure:"movement"`
	Character CharacterConfig `mapstructure:"character"`
	Network   NetworkConfig   `mapstructure:"network"`
	Server    ServerConfig    `mapstructure:"server"`
	Client    ClientConfig    `mapstructure:"client"`
	Log       LogConfig       `mapstructure:"log"`
}

var Physics PhysicsConfig
var Movement MovementConfig
var Character CharacterConfig
var Network NetworkConfig
var Server ServerConfig
var Client ClientConfig
var Log LogConfig

func init() {
	Apply(Defaults())
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Physics: PhysicsConfig{
			TickRate:       64,
			Substeps:       12,
			Gravity:        mgl64.Vec3{0, -9.81, 0},
			DampingEpsilon: 1e-4,
			KillPlaneY:     -20,

			WorldExtent: 64,
			CellSize:    4,
		},
		Movement: MovementConfig{
			Acceleration:    60 * 12,
			DampingFactor:   0.98,
			JumpImpulse:     9.0,
			MaxSlopeAngle:   math.Pi * 0.45,
			LookSensitivity: 0.002,

			CastScale:    0.99,
			CastDistance: 0.2,
			CastSamples:  8,
		},
		Character: CharacterConfig{
			Radius:     0.5,
			HalfHeight: 0.5,
			Spawn:      mgl64.Vec3{0, 2, 0},
		},
		Network: NetworkConfig{
			TickRate:          10,
			ActionBufferLimit: 32,
			CommandQueueSize:  256,

			MaxAngularDelta: 500,
			ClientTimeout:   15 * time.Second,

			TranslationErrorThreshold:     1.0,
			RotationErrorThreshold:        1.0,
			PredictionErrorCountThreshold: 10,
		},
		Server: ServerConfig{
			Name:       "netcharacon",
			Port:       5000,
			MaxClients: 10,

			AdminAddr:   ":8080",
			ObserveRate: 10,
		},
		Client: ClientConfig{
			ServerAddr:  "127.0.0.1:5000",
			PlayerName:  "player",
			JoinTimeout: 15 * time.Second,
			AppName:     "netcharacon",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Current returns a copy of the active configuration.
func Current() Config {
	return Config{
		Physics:   Physics,
		Movement:  Movement,
		Character: Character,
		Network:   Network,
		Server:    Server,
		Client:    Client,
		Log:       Log,
	}
}

// Apply replaces the active configuration.
func Apply(c Config) {
	Physics = c.Physics
	Movement = c.Movement
	Character = c.Character
	Network = c.Network
	Server = c.Server
	Client = c.Client
	Log = c.Log
}

// SubstepDt returns the duration of one physics substep in seconds.
func (p PhysicsConfig) SubstepDt() float64 {
	return 1 / float64(p.TickRate*p.Substeps)
}

// TickInterval returns the wall-clock period of one physics tick.
func (p PhysicsConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(p.TickRate)
}

// TickInterval returns the wall-clock period of one network tick.
func (n NetworkConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(n.TickRate)
}
