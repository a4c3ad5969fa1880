package config

// DefaultNamespace prefixes every exported metric when MetricsCfg is not set.
const DefaultNamespace = "costcache"

// MetricsCfg names the Prometheus series exported by the cache collector.
type MetricsCfg struct {
	Namespace string `yaml:"namespace"`

	// Subsystem distinguishes several caches living in one process (e.g. "meshes", "blocks").
	Subsystem string `yaml:"subsystem"`
}

func (cfg *MetricsCfg) Enabled() bool {
	return cfg != nil
}
