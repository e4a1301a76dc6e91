package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Snapshot.Filename == "" {
		cfg.Snapshot.Filename = ".data.json"
	}
	if cfg.Snapshot.TTLSeconds == 0 {
		// One week; snapshots older than this force a full reindex.
		cfg.Snapshot.TTLSeconds = 604800
	}
	if cfg.Scan.Extension == "" {
		cfg.Scan.Extension = "pdf"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Watch.DebounceMillis == 0 {
		cfg.Watch.DebounceMillis = 400
	}
}
