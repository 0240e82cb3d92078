package main

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/unkn0wn-root/aerocache"
)

const envPrefix = "AEROCACHE"

// fileConfig is the layout of the YAML config file.
type fileConfig struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Backend    string           `mapstructure:"backend" yaml:"backend"`
	Connection aerocache.Config `mapstructure:"connection" yaml:"connection"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Log:        LogConfig{Level: "info"},
		Backend:    backendAerospike,
		Connection: aerocache.DefaultConfig(),
	}
}

// loadConfig reads path (optional) and AEROCACHE_* env vars into v and
// returns the result merged over the defaults.
func loadConfig(v *viper.Viper, path string) (fileConfig, error) {
	def := defaultFileConfig()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("backend", def.Backend)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(path) > 0 {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fileConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg, decoderOpt); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Connection = aerocache.MergeConfig(def.Connection, cfg.Connection)
	return cfg, nil
}

func decoderOpt(cfg *mapstructure.DecoderConfig) {
	cfg.ErrorUnused = true
	cfg.WeaklyTypedInput = true
	cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
