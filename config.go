package aerocache

import (
	"time"

	"github.com/unkn0wn-root/aerocache/store"
)

// Config holds store endpoints and key defaults.
type Config struct {
	Hosts []store.Host `mapstructure:"hosts" yaml:"hosts"`

	// Partition is the default namespace, Segment the default set.
	Partition string `mapstructure:"partition" yaml:"partition"`
	Segment   string `mapstructure:"segment" yaml:"segment"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
	User           string        `mapstructure:"user" yaml:"user,omitempty"`
	Password       string        `mapstructure:"password" yaml:"password,omitempty"`
}

// DefaultConfig points at a local Aerospike node with the "test" namespace.
func DefaultConfig() Config {
	return Config{
		Hosts:     []store.Host{{Addr: "127.0.0.1", Port: 3000}},
		Partition: "test",
		Segment:   "test",
	}
}

// MergeConfig returns def with every non-zero field of user applied on top.
// Hosts are replaced as a whole, never appended. Neither input is modified.
func MergeConfig(def, user Config) Config {
	out := Config{
		Partition:      coalesce(user.Partition, def.Partition),
		Segment:        coalesce(user.Segment, def.Segment),
		ConnectTimeout: coalesce(user.ConnectTimeout, def.ConnectTimeout),
		User:           coalesce(user.User, def.User),
		Password:       coalesce(user.Password, def.Password),
	}
	hosts := def.Hosts
	if len(user.Hosts) > 0 {
		hosts = user.Hosts
	}
	out.Hosts = append([]store.Host(nil), hosts...)
	return out
}

func (c Config) storeConfig() store.Config {
	return store.Config{
		Hosts:    append([]store.Host(nil), c.Hosts...),
		Timeout:  c.ConnectTimeout,
		User:     c.User,
		Password: c.Password,
	}
}
