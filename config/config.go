// Package config loads host settings from mnemo.yaml, MNEMO_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"

	"mnemo/dispatch"
)

const (
	FileName  = "mnemo.yaml"
	EnvPrefix = "MNEMO"

	// NoCombiner disables modifier-prefixed identifiers.
	NoCombiner = "none"
)

// Field is one form row: its label (with an optional & mnemonic), whether
// its shortcut also submits the form, and whether it is a button rather than
// a text input.
type Field struct {
	Label  string `fig:"label" validate:"required"`
	Submit bool   `fig:"submit"`
	Button bool   `fig:"button"`
	Secret bool   `fig:"secret"`
}

type Config struct {
	Policy       string  `fig:"policy" default:"hold"`
	Activator    string  `fig:"activator" default:"alt"`
	ToggleKey    string  `fig:"toggle_key" default:"f10"`
	Combiner     string  `fig:"combiner" default:"ctrl"`
	ToggleSilent bool    `fig:"toggle_silent"`
	LogPath      string  `fig:"log_path"`
	Debug        bool    `fig:"debug"`
	Fields       []Field `fig:"fields"`
}

func DefaultFields() []Field {
	return []Field{
		{Label: "&Name"},
		{Label: "&Email"},
		{Label: "&Password", Secret: true},
		{Label: "Sub&mit", Submit: true, Button: true},
	}
}

// Load reads FileName from path, or from the default search dirs when path
// is empty. A missing file is not an error: defaults and environment apply.
func Load(path string) (Config, error) {
	var cfg Config
	dirs := []string{path}
	if path == "" {
		dirs = searchDirs()
	}
	err := fig.Load(&cfg, fig.File(FileName), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		cfg = Config{}
		err = fig.Load(&cfg, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = DefaultFields()
	}
	return cfg, nil
}

func searchDirs() []string {
	dirs := []string{".", "configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "mnemo"))
	}
	return dirs
}

// AddFlags binds the overridable settings to fs, using the loaded values as
// defaults.
func (c *Config) AddFlags(fs *pflag.FlagSet) *Config {
	fs.StringVar(&c.Policy, "policy", c.Policy, "Hint policy: hold (hold activator) or toggle (press toggle key)")
	fs.StringVar(&c.Activator, "activator", c.Activator, "Modifier held to reveal hints in hold policy")
	fs.StringVar(&c.ToggleKey, "toggle-key", c.ToggleKey, "Key that flips hints in toggle policy")
	fs.StringVar(&c.Combiner, "combiner", c.Combiner, "Secondary modifier prefixed to shortcut ids in toggle policy")
	fs.BoolVar(&c.ToggleSilent, "toggle-silent", c.ToggleSilent, "Never treat the toggle key press itself as a shortcut")
	fs.StringVar(&c.LogPath, "logpath", c.LogPath, "log directory path (default: OS-specific location, use ./ for current dir)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Log unmatched keys and overwritten shortcuts")
	return c
}

func (c Config) Validate() error {
	if _, err := dispatch.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Activator == "" {
		return errors.New("activator must not be empty")
	}
	if c.ToggleKey == "" {
		return errors.New("toggle key must not be empty")
	}
	if c.Combiner != "" && c.Combiner != NoCombiner {
		if _, ok := dispatch.ModifierByName(c.Combiner); !ok {
			return fmt.Errorf("unknown combiner modifier %q", c.Combiner)
		}
	}
	return nil
}

// MachineOptions translates the config into dispatcher options. Call
// Validate first.
func (c Config) MachineOptions() []dispatch.Option {
	policy, _ := dispatch.ParsePolicy(c.Policy)
	opts := []dispatch.Option{
		dispatch.WithPolicy(policy),
		dispatch.WithActivator(c.Activator),
		dispatch.WithToggleKey(c.ToggleKey),
		dispatch.WithToggleTriggers(!c.ToggleSilent),
	}
	if mod, ok := dispatch.ModifierByName(c.Combiner); ok {
		opts = append(opts, dispatch.WithCombiner(mod, c.Combiner))
	} else {
		opts = append(opts, dispatch.WithCombiner(0, ""))
	}
	return opts
}
