package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"os"
	"time"
)

const (
	AccumulateOnKeyUp   = "up"
	AccumulateOnKeyDown = "down"

	EngineEspeak = "espeak"
	EngineNone   = "none"

	DriverSqlite = "sqlite"
	DriverJSON   = "json"
	DriverMemory = "memory"
)

type Config struct {
	Enabled   bool    `toml:"enabled"`
	Words     bool    `toml:"words"`
	Sentences bool    `toml:"sentences"`
	Selection bool    `toml:"selection"`
	Letters   bool    `toml:"letters"`
	Speed     float32 `toml:"speed"`
	Volume    float32 `toml:"volume"`
	Layout    string  `toml:"layout"`
	// AccumulateOn picks the key edge that adds typed text to the speech buffers.
	AccumulateOn    string `toml:"accumulate_on"`
	RequireKeyboard bool   `toml:"require_keyboard"`

	Speech Speech `toml:"speech"`
	Device Device `toml:"device"`
	Store  Store  `toml:"store"`
}

type Speech struct {
	Engine string `toml:"engine"`
	Binary string `toml:"binary"`
	Voice  string `toml:"voice"`
}

type Device struct {
	PollInterval Duration `toml:"poll_interval"`
	// Stub skips USB detection and treats the keyboard as always attached.
	Stub bool `toml:"stub"`
}

type Store struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() *Config {
	return &Config{
		Enabled:         true,
		Words:           true,
		Sentences:       true,
		Selection:       true,
		Letters:         true,
		Volume:          1,
		AccumulateOn:    AccumulateOnKeyUp,
		RequireKeyboard: true,
		Speech: Speech{
			Engine: EngineEspeak,
			Voice:  "nl",
		},
		Device: Device{
			PollInterval: Duration{500 * time.Millisecond},
		},
		Store: Store{
			Driver: DriverSqlite,
		},
	}
}

var ErrInvalid = errors.New("invalid configuration")

func (c *Config) Validate() error {
	switch {
	case c.Speed < -1 || c.Speed > 1:
		return fmt.Errorf("speed %v out of range -1..1: %w", c.Speed, ErrInvalid)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("volume %v out of range 0..1: %w", c.Volume, ErrInvalid)
	case c.AccumulateOn != AccumulateOnKeyUp && c.AccumulateOn != AccumulateOnKeyDown:
		return fmt.Errorf("accumulate_on %q: %w", c.AccumulateOn, ErrInvalid)
	case c.Device.PollInterval.Duration <= 0:
		return fmt.Errorf("poll_interval %v: %w", c.Device.PollInterval, ErrInvalid)
	}

	switch c.Speech.Engine {
	case EngineEspeak, EngineNone:
	default:
		return fmt.Errorf("speech engine %q: %w", c.Speech.Engine, ErrInvalid)
	}

	switch c.Store.Driver {
	case DriverSqlite, DriverJSON, DriverMemory:
	default:
		return fmt.Errorf("store driver %q: %w", c.Store.Driver, ErrInvalid)
	}

	return nil
}

// Parse reads a config file over the defaults. A missing file yields the defaults.
func Parse(path string) (*Config, error) {
	cfg := Default()

	_, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
