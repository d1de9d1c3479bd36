// Package config resolves settings from defaults, TOML files, the
// environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/tasks/internal/store/jsonstore"
)

const (
	DefaultDBPath   = jsonstore.DefaultPath
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	appName        = "todo"
	userConfigName = "config.toml"
)

// projectConfigNames are looked up in the working directory, first match wins.
var projectConfigNames = []string{"todo.toml", ".todo.toml"}

// Config is the resolved configuration for one invocation.
type Config struct {
	DBPath   string `toml:"db_path"`
	Theme    string `toml:"theme"`
	Group    bool   `toml:"group"`
	LogLevel string `toml:"log_level"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file ($XDG_CONFIG_HOME/todo/config.toml)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DBPath = DefaultDBPath
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
}

// loadConfigFile overlays TOML keys present in path onto cfg.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appName, userConfigName)
	if fileExists(p) {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_GROUP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_GROUP: %w", err)
		}
		cfg.Group = b
	}
	return nil
}

// parseFlags registers the root flags on fs and applies any that were set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	db := fs.String("db", "", "path to the todo file (default "+DefaultDBPath+")")
	theme := fs.String("theme", "", "output theme: classic, neon or mono")
	group := fs.Bool("group", false, "group list output by status")
	verbose := fs.Bool("v", false, "verbose diagnostics (debug log level)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["db"] {
		if *db == "" {
			return errors.New("-db must not be empty")
		}
		cfg.DBPath = *db
	}
	if set["theme"] {
		cfg.Theme = *theme
	}
	if set["group"] {
		cfg.Group = *group
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	return nil
}

// expandPath expands ~/ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
