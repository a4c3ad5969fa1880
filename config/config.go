package config

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

var ErrInvalidConfig = errors.New("invalid cache config")

func (cfg *Cache) AdjustConfig() {
	if cfg.DB.Capacity < 0 {
		cfg.DB.Capacity = 0
	}
	if cfg.DB.MaxKeyLen <= 0 {
		cfg.DB.MaxKeyLen = DefaultMaxKeyLen
	}
	if cfg.DB.OnDuplicate == "" {
		cfg.DB.OnDuplicate = DuplicateModeUpsert
	}
	cfg.DB.IsShadow = cfg.DB.OnDuplicate == DuplicateModeShadow

	if cfg.DB.IsTelemetryLogsEnabled && cfg.DB.TelemetryLogsInterval <= 0 {
		cfg.DB.TelemetryLogsInterval = DefaultTelemetryLogsInterval
	}

	if cfg.Metrics.Enabled() && cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}
}

// Validate reports settings AdjustConfig cannot repair.
func (cfg *Cache) Validate() error {
	switch cfg.DB.OnDuplicate {
	case "", DuplicateModeUpsert, DuplicateModeShadow:
	default:
		return fmt.Errorf("%w: unknown db.on_duplicate mode %q", ErrInvalidConfig, cfg.DB.OnDuplicate)
	}
	return nil
}

// Namespace returns the metric namespace and subsystem for the collector.
func (cfg *Cache) Namespace() (namespace, subsystem string) {
	if cfg.Metrics.Enabled() {
		return cfg.Metrics.Namespace, cfg.Metrics.Subsystem
	}
	return DefaultNamespace, ""
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Cache
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Cache{}
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
