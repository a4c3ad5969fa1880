package config

import "time"

// DuplicateMode defines what Add does with a key that is already resident.
type DuplicateMode string

const (
	// DuplicateModeUpsert destroys the resident entry and replaces it with the new one.
	DuplicateModeUpsert DuplicateMode = "upsert"

	// DuplicateModeShadow keeps the resident entry and inserts a second one in front of it.
	// The newest entry is the visible one; older entries still hold cost until they are evicted.
	DuplicateModeShadow DuplicateMode = "shadow"
)

const (
	// DefaultMaxKeyLen is the key length limit applied when DBCfg.MaxKeyLen is not set.
	DefaultMaxKeyLen = 256

	// DefaultTelemetryLogsInterval is used when stat logs are enabled without an interval.
	DefaultTelemetryLogsInterval = 5 * time.Second
)

type DBCfg struct {
	// Capacity is the maximum total cost the cache may hold. Units are chosen by the caller
	// (bytes, items, vertices...). After every Add the resident cost is strictly below Capacity.
	// Zero is legal: every Add empties the cache.
	Capacity int64 `yaml:"capacity"`

	// MaxKeyLen bounds the key length in bytes. Longer keys are rejected, never truncated.
	MaxKeyLen int `yaml:"max_key_len"`

	// OnDuplicate is either "upsert" (default) or "shadow".
	OnDuplicate DuplicateMode `yaml:"on_duplicate"`

	// IsShadow is derived from OnDuplicate during initialization.
	// This field is not read from YAML.
	IsShadow bool // virtual: computed during init

	IsTelemetryLogsEnabled bool          `yaml:"stat_logs_enabled"`
	TelemetryLogsInterval  time.Duration `yaml:"stat_logs_interval"`
}
