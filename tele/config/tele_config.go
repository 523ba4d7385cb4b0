// Separate package is workaround to import cycles.
package tele_config

type Config struct { //nolint:maligned
	Enabled           bool   `hcl:"enable"`
	TillId            int    `hcl:"till_id"`
	LogDebug          bool   `hcl:"log_debug"`
	KeepaliveSec      int    `hcl:"keepalive_sec"`
	MqttBroker        string `hcl:"mqtt_broker"`
	MqttLogDebug      bool   `hcl:"mqtt_log_debug"`
	MqttPassword      string `hcl:"mqtt_password"` // secret
	NetworkTimeoutSec int    `hcl:"network_timeout_sec"`
	RetryDelaySec     int    `hcl:"retry_delay_sec"`
	RetryMaxSec       int    `hcl:"retry_max_sec"`
	// spq outbox directory, required when enabled
	PersistPath string `hcl:"persist_path"`
}
