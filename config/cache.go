package config

// Cache groups configuration of all cache subsystems.
// Optional components are disabled (or fall back to defaults) by setting them to nil.
type Cache struct {
	DB DBCfg `yaml:"db"`

	// Metrics configures the Prometheus collector exposed by the cache.
	// If nil, the collector is still available but uses DefaultNamespace and no subsystem.
	Metrics *MetricsCfg `yaml:"metrics"`
}
