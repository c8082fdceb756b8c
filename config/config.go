// Package config loads chest-sort settings from file, environment and flags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/chest-sort/parameter"
)

const (
	configFileName = "chest-sort"
	configFileType = "yaml"
	envPrefix      = "CHEST_SORT"
)

// Config keys, dotted for nested sections
const (
	KeyPacks       = "packs"
	KeyPacksDir    = "packs_dir"
	KeySeed        = "seed"
	KeyStrict      = "strict"
	KeyDebug       = "debug"
	KeyQuota       = "round.quota"
	KeySpawnDelay  = "round.spawn_delay"
	KeyAudio       = "audio.enabled"
	KeyBPM         = "audio.bpm"
	KeyBeatsPerBar = "audio.beats_per_bar"
	KeyBuffer      = "audio.buffer"
	KeyKeys        = "keys"
)

// RoundConfig shapes each drawn round
type RoundConfig struct {
	Quota      int           `mapstructure:"quota"`
	SpawnDelay time.Duration `mapstructure:"spawn_delay"`
}

// AudioConfig selects the audio backend and tempo grid
type AudioConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	BPM         float64       `mapstructure:"bpm"`
	BeatsPerBar int           `mapstructure:"beats_per_bar"`
	Buffer      time.Duration `mapstructure:"buffer"`
}

// Config holds all configuration options for chest-sort
type Config struct {
	// Packs are content pack names combined into one session, all of the same game
	Packs []string `mapstructure:"packs"`

	// PacksDir adds or overrides packs from *.yaml files in a directory
	PacksDir string `mapstructure:"packs_dir"`

	// Seed drives draws and respawn positions; 0 picks one from the clock
	Seed int64 `mapstructure:"seed"`

	Strict bool `mapstructure:"strict"`
	Debug  bool `mapstructure:"debug"`

	Round RoundConfig `mapstructure:"round"`
	Audio AudioConfig `mapstructure:"audio"`

	// Keys rebinds single characters to intent names, e.g. {"x": "restart"}
	Keys map[string]string `mapstructure:"keys"`
}

// Defaults returns a Config with the built-in values
func Defaults() Config {
	return Config{
		Packs: []string{"engineering"},
		Round: RoundConfig{
			Quota:      parameter.DefaultQuotaPerCategory,
			SpawnDelay: parameter.DefaultSpawnDelay,
		},
		Audio: AudioConfig{
			Enabled:     true,
			BPM:         parameter.DefaultBPM,
			BeatsPerBar: parameter.BeatsPerBar,
			Buffer:      parameter.AudioBufferDuration,
		},
		Keys: map[string]string{},
	}
}

// New returns a viper instance carrying defaults and CHEST_SORT_* environment lookup
// Callers may bind flags to it before Load
func New() *viper.Viper {
	d := Defaults()

	v := viper.New()
	v.SetDefault(KeyPacks, d.Packs)
	v.SetDefault(KeyPacksDir, d.PacksDir)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyStrict, d.Strict)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyQuota, d.Round.Quota)
	v.SetDefault(KeySpawnDelay, d.Round.SpawnDelay)
	v.SetDefault(KeyAudio, d.Audio.Enabled)
	v.SetDefault(KeyBPM, d.Audio.BPM)
	v.SetDefault(KeyBeatsPerBar, d.Audio.BeatsPerBar)
	v.SetDefault(KeyBuffer, d.Audio.Buffer)
	v.SetDefault(KeyKeys, d.Keys)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result
// With an empty path chest-sort.yaml is searched in the working directory and the user config dir;
// a missing file is not an error, an explicit path that does not exist is
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configFileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
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

// Validate checks ranges and required values
func (c Config) Validate() error {
	if len(c.Packs) == 0 {
		return fmt.Errorf("config: %s: at least one pack is required", KeyPacks)
	}
	for i, name := range c.Packs {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: %s[%d]: empty pack name", KeyPacks, i)
		}
	}
	if c.Round.Quota < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", KeyQuota, c.Round.Quota)
	}
	if c.Round.SpawnDelay < 0 {
		return fmt.Errorf("config: %s must not be negative, got %s", KeySpawnDelay, c.Round.SpawnDelay)
	}
	if c.Audio.BPM < parameter.MinBPM || c.Audio.BPM > parameter.MaxBPM {
		return fmt.Errorf("config: %s %.1f outside [%.0f,%.0f]", KeyBPM, c.Audio.BPM, parameter.MinBPM, parameter.MaxBPM)
	}
	if c.Audio.BeatsPerBar < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", KeyBeatsPerBar, c.Audio.BeatsPerBar)
	}
	if c.Audio.Buffer <= 0 {
		return fmt.Errorf("config: %s must be positive, got %s", KeyBuffer, c.Audio.Buffer)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as commented YAML
func DefaultConfigTemplate() string {
	return `# chest-sort configuration
# Every key can also be set through CHEST_SORT_<SECTION>_<KEY>, e.g. CHEST_SORT_ROUND_QUOTA=3

# Content packs combined into one session (run 'chest-sort packs' to list them)
packs:
  - engineering

# Directory of extra *.yaml packs, same-named packs override the built-in ones
# packs_dir: ./packs

# Seed for draws and respawn positions, 0 picks one from the clock
seed: 0

# Panic instead of logging when a consumed item is submitted again
strict: false

round:
  quota: 2          # Items drawn per category
  spawn_delay: 2s   # Wait before each item appears

audio:
  enabled: true
  bpm: 120
  beats_per_bar: 4
  buffer: 100ms

# Extra key bindings: character (or "space") to intent
# Intents: quit, restart, pause, toggle_mute, cancel_drag, help
keys: {}
`
}
