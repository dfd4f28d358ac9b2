// Package config loads robosim settings from defaults, an optional YAML
// file, ROBOSIM_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"robosim/internal/sim"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded configuration.
type Config struct {
	Tick   TickConfig   `mapstructure:"tick"`
	Input  InputConfig  `mapstructure:"input"`
	Rates  RatesConfig  `mapstructure:"rates"`
	Bounds BoundsConfig `mapstructure:"bounds"`
	Assets AssetsConfig `mapstructure:"assets"`
	Log    LogConfig    `mapstructure:"log"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Server ServerConfig `mapstructure:"server"`
	Window WindowConfig `mapstructure:"window"`
}

type TickConfig struct {
	Period time.Duration `mapstructure:"period"`
}

// InputConfig tunes the terminal key latch. Terminals send no key-up
// events, so a held key is released once no repeat arrives in time.
type InputConfig struct {
	RepeatDelay time.Duration `mapstructure:"repeatDelay"` // wait after the first press
	HoldWindow  time.Duration `mapstructure:"holdWindow"`  // wait between repeats
}

type RatesConfig struct {
	Forward float64 `mapstructure:"forward"`
	Strafe  float64 `mapstructure:"strafe"`
	Yaw     float64 `mapstructure:"yaw"`
	Pitch   float64 `mapstructure:"pitch"`
}

type BoundsConfig struct {
	Policy string `mapstructure:"policy"`
}

// AssetsConfig overrides the embedded world and texture. Empty means embedded.
type AssetsConfig struct {
	World   string `mapstructure:"world"`
	Texture string `mapstructure:"texture"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	HostKey     string `mapstructure:"hostKey"`
	MaxSessions int    `mapstructure:"maxSessions"`
}

// WindowConfig sizes the desktop window. Scale divides the window size to
// get the resolution the scene is rasterised at.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Scale  int    `mapstructure:"scale"`
	Title  string `mapstructure:"title"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"tick":         "tick.period",
	"bounds":       "bounds.policy",
	"world":        "assets.world",
	"texture":      "assets.texture",
	"log-level":    "log.level",
	"log-file":     "log.file",
	"audio":        "audio.enabled",
	"port":         "server.port",
	"host-key":     "server.hostKey",
	"max-sessions": "server.maxSessions",
}

// SetDefaults installs every default value on v.
func SetDefaults(v *viper.Viper) {
	rates := sim.DefaultRates()

	v.SetDefault("tick.period", 15*time.Millisecond)

	v.SetDefault("input.repeatDelay", 500*time.Millisecond)
	v.SetDefault("input.holdWindow", 150*time.Millisecond)

	v.SetDefault("rates.forward", rates.Forward)
	v.SetDefault("rates.strafe", rates.Strafe)
	v.SetDefault("rates.yaw", rates.Yaw)
	v.SetDefault("rates.pitch", rates.Pitch)

	v.SetDefault("bounds.policy", sim.BoundsLegacy.String())

	v.SetDefault("assets.world", "")
	v.SetDefault("assets.texture", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "robosim.log")

	v.SetDefault("audio.enabled", true)

	v.SetDefault("server.port", 2222)
	v.SetDefault("server.hostKey", "robosim_host_key")
	v.SetDefault("server.maxSessions", 8)

	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 540)
	v.SetDefault("window.scale", 2)
	v.SetDefault("window.title", "RoboSim")
}

// RegisterFlags adds the shared command-line flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a robosim.yaml config file")
	fs.Duration("tick", 15*time.Millisecond, "frame driver tick period")
	fs.String("bounds", sim.BoundsLegacy.String(), "arena bounds policy (legacy|clamp)")
	fs.String("world", "", "world description file (default: embedded)")
	fs.String("texture", "", "wall texture image (default: embedded)")
	fs.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	fs.String("log-file", "robosim.log", "log file path")
	fs.Bool("audio", true, "play a sound on every shot")
}

// RegisterServerFlags adds the SSH server flags to fs.
func RegisterServerFlags(fs *pflag.FlagSet) {
	fs.Int("port", 2222, "SSH listen port")
	fs.String("host-key", "robosim_host_key", "path to the SSH host key (created if missing)")
	fs.Int("max-sessions", 8, "concurrent player sessions")
}

// Load builds the configuration. fs may be nil; only flags that were
// registered on it are bound. The config file comes from the --config
// flag when set, otherwise robosim.yaml is looked up in the working
// directory and $XDG_CONFIG_HOME/robosim. A missing lookup file is not
// an error; a missing explicit one is.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("ROBOSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readFile(v, explicit); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	v.SetConfigName("robosim")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "robosim"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Validate checks values that would break the frame loop or the hosts.
func (c Config) Validate() error {
	if c.Tick.Period <= 0 {
		return fmt.Errorf("%w: tick.period must be positive, got %s", ErrInvalid, c.Tick.Period)
	}
	if c.Input.HoldWindow <= 0 || c.Input.RepeatDelay <= 0 {
		return fmt.Errorf("%w: input windows must be positive", ErrInvalid)
	}
	if _, err := sim.ParseBoundsPolicy(c.Bounds.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("%w: server.maxSessions must be at least 1", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.Scale <= 0 {
		return fmt.Errorf("%w: window size and scale must be positive", ErrInvalid)
	}
	return nil
}

// BoundsPolicy returns the parsed bounds policy. Call after Validate.
func (c Config) BoundsPolicy() sim.BoundsPolicy {
	p, _ := sim.ParseBoundsPolicy(c.Bounds.Policy)
	return p
}

// DriverRates converts the configured rates for the frame driver.
func (c Config) DriverRates() sim.Rates {
	return sim.Rates{
		Forward: c.Rates.Forward,
		Strafe:  c.Rates.Strafe,
		Yaw:     c.Rates.Yaw,
		Pitch:   c.Rates.Pitch,
	}
}
