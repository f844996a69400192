// Package config loads the demo harness settings from a YAML file.
//
// Settings are addressed by the dotted keys in package configkeys:
//
//	demo:
//	  expr: fib(30)
//	  runs: 2
//	memo:
//	  concurrent: false
//	log:
//	  level: info
//	metrics:
//	  enabled: false
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/on-the-ground/memo_ive_go/demo/configkeys"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSuchKey = errors.New("config: key not found")
	ErrWrongType = errors.New("config: value has the wrong type")
)

// Config is the resolved demo configuration.
type Config struct {
	Expr       string
	Runs       int
	Concurrent bool
	LogLevel   string
	Metrics    bool
}

// Default times fib(30) twice.
func Default() Config {
	return Config{
		Expr:     "fib(30)",
		Runs:     2,
		LogLevel: "info",
	}
}

// Load reads path and overlays it on Default. An empty path yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	src, err := Parse(bytes)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return src.Resolve(cfg)
}

// Source is a decoded YAML document.
type Source struct {
	Data map[string]any
}

func Parse(bytes []byte) (Source, error) {
	var data map[string]any
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Source{}, err
	}
	return Source{Data: data}, nil
}

// Resolve overlays every key present in s on base.
func (s Source) Resolve(base Config) (Config, error) {
	var err error
	cfg := base
	if cfg.Expr, err = getOr(s, configkeys.DemoExpr, cfg.Expr); err != nil {
		return base, err
	}
	if cfg.Runs, err = getOr(s, configkeys.DemoRuns, cfg.Runs); err != nil {
		return base, err
	}
	if cfg.Concurrent, err = getOr(s, configkeys.MemoConcurrent, cfg.Concurrent); err != nil {
		return base, err
	}
	if cfg.LogLevel, err = getOr(s, configkeys.LogLevel, cfg.LogLevel); err != nil {
		return base, err
	}
	if cfg.Metrics, err = getOr(s, configkeys.MetricsEnabled, cfg.Metrics); err != nil {
		return base, err
	}
	if cfg.Runs < 1 {
		return base, fmt.Errorf("config: %s must be at least 1, got %d", configkeys.DemoRuns, cfg.Runs)
	}
	return cfg, nil
}

// get traverses the document using a dotted key path.
func (s Source) get(path string) (any, error) {
	var current any = s.Data
	for _, k := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchKey, path)
		}
		if current, ok = m[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchKey, path)
		}
	}
	return current, nil
}

// getOr returns the value at key, or def when the key is absent.
func getOr[T any](s Source, key string, def T) (T, error) {
	raw, err := s.get(key)
	if errors.Is(err, ErrNoSuchKey) {
		return def, nil
	}
	v, ok := raw.(T)
	if !ok {
		return def, fmt.Errorf("%w: %s is %T, want %T", ErrWrongType, key, raw, def)
	}
	return v, nil
}
