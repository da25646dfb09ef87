// Package engineconfig loads the suggestion engine's tuning knobs from a TOML
// file, falling back to hardcoded defaults when the file is absent.
//
// Grounded on bastiangx-wordserve/pkg/config/config.go's InitConfig/
// LoadConfig split (TOML-backed struct of tunables with sane zero-value
// defaults), adapted from a CLI word-completion server's config to this
// engine's pool/shard/timeout knobs.
package engineconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every engine tuning parameter the spec leaves as "soft
// policy" (§4.5) rather than a correctness property.
type Config struct {
	Engine EngineConfig `toml:"engine"`
}

// EngineConfig groups the dispatcher/session tunables.
type EngineConfig struct {
	PoolSize              int `toml:"pool_size"`
	ShardCount            int `toml:"shard_count"`
	TopKDefault           int `toml:"top_k_default"`
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
	HotCacheSize          int `toml:"hot_cache_size"`
}

// Default returns the spec's built-in defaults: pool size derived from
// available cores at call time (0 here means "let dispatch.PoolSize decide"),
// shard count 4, top-K 5, 30s request timeout.
func Default() Config {
	return Config{Engine: EngineConfig{
		PoolSize:              0,
		ShardCount:            4,
		TopKDefault:           5,
		RequestTimeoutSeconds: 30,
		HotCacheSize:          512,
	}}
}

// Load reads a TOML config file at path, overlaying it on Default(). A
// missing file is not an error — it's the expected case in development,
// matching words.Init's own tolerant env-var fallback.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
