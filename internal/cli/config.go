package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/polycover/polycover/pkg/errors"
)

// configFileName is looked up in the working directory.
const configFileName = "polycover.toml"

// Config holds CLI defaults loaded from polycover.toml. Flags always
// win over the config file; the config file wins over built-ins.
type Config struct {
	CreationCost   int64    `toml:"creation_cost"`
	AreaCost       int64    `toml:"area_cost"`
	Algorithm      string   `toml:"algorithm"`
	Postprocessors []string `toml:"postprocessors"`
	Verify         bool     `toml:"verify"`
	TimeoutSeconds float64  `toml:"timeout_seconds"`
	CacheDir       string   `toml:"cache_dir"`
	RedisAddr      string   `toml:"redis_addr"`
	ListenAddr     string   `toml:"listen_addr"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Algorithm:  "greedy",
		Verify:     true,
		ListenAddr: ":8080",
	}
}

// loadConfig reads polycover.toml from the working directory when it
// exists, otherwise returns the defaults.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(configFileName)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", configFileName)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", configFileName)
	}
	return cfg, nil
}

// cacheDir resolves the result cache directory: the configured path, or
// a polycover directory below the user cache.
func (c Config) cacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".polycover-cache"
	}
	return filepath.Join(base, "polycover")
}
