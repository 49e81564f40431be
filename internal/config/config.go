// Package config loads the search engine's run parameters (n, memory
// budget, gzip, verbosity, scratch directory) from defaults, optional
// JSONC config files, and CLI overrides, in that precedence order.
//
// Grounded on the teacher's root config.go: the same global-then-project
// file layering via tailscale/hujson. A config file's zero-valued fields
// count as unset, so a file cannot reset an earlier value to zero, empty
// or false (see merge).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds every run parameter the interactive prompt or CLI flags
// can set.
type Config struct {
	N              int     `json:"n"`
	MemoryLimitGiB float64 `json:"memory_limit_gib"` //nolint:tagliatelle // snake_case for config file
	Gzip           bool    `json:"gzip"`
	Verbose        bool    `json:"verbose"`
	ScratchDir     string  `json:"scratch_dir"` //nolint:tagliatelle // snake_case for config file
}

// Sources tracks which config files were loaded, for diagnostics.
type Sources struct {
	Global  string
	Project string
}

// FileName is the default project config file name.
const FileName = ".leapsbounds.json"

// Default returns the built-in defaults, matching the interactive
// prompt's own defaults.
func Default() Config {
	return Config{
		N:              5,
		MemoryLimitGiB: 12,
		Gzip:           false,
		Verbose:        false,
		ScratchDir:     "scratch-files",
	}
}

// Validate checks that cfg describes a runnable search.
func (c Config) Validate() error {
	if c.N < 1 {
		return errNInvalid
	}

	if c.MemoryLimitGiB <= 0 {
		return errMemoryInvalid
	}

	return nil
}

// Load applies, in increasing precedence: defaults, the global user
// config, the project config (or an explicit configPath), and cliOverrides.
func Load(workDir, configPath string, cliOverrides Config, overridden map[string]bool, env []string) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg = applyOverrides(cfg, cliOverrides, overridden)

	if err := cfg.Validate(); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

func globalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "leapsbounds", "config.json")
		}
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "leapsbounds", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "leapsbounds", "config.json")
	}

	return ""
}

func loadGlobalConfig(env []string) (Config, string, error) {
	path := globalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	cfgFile := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		if _, err := os.Stat(cfgFile); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, cfgFile, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", errConfigInvalid, path, err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSON: %w", errConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// merge overlays non-zero fields of overlay onto base. Unlike explicit
// override application, a config file's zero-valued field is treated as
// "not set" rather than "set to zero" — there is no valid reason to
// configure n=0 or memory=0, so there is no explicit-empty case to track.
func merge(base, overlay Config) Config {
	if overlay.N != 0 {
		base.N = overlay.N
	}

	if overlay.MemoryLimitGiB != 0 {
		base.MemoryLimitGiB = overlay.MemoryLimitGiB
	}

	if overlay.ScratchDir != "" {
		base.ScratchDir = overlay.ScratchDir
	}

	base.Gzip = overlay.Gzip || base.Gzip
	base.Verbose = overlay.Verbose || base.Verbose

	return base
}

// applyOverrides sets exactly the fields the caller marked as explicitly
// provided on the command line, keyed by JSON field name.
func applyOverrides(base, overrides Config, overridden map[string]bool) Config {
	if overridden["n"] {
		base.N = overrides.N
	}

	if overridden["memory_limit_gib"] {
		base.MemoryLimitGiB = overrides.MemoryLimitGiB
	}

	if overridden["gzip"] {
		base.Gzip = overrides.Gzip
	}

	if overridden["verbose"] {
		base.Verbose = overrides.Verbose
	}

	if overridden["scratch_dir"] {
		base.ScratchDir = overrides.ScratchDir
	}

	return base
}

// Format renders cfg as indented JSON, for verbose startup diagnostics.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
