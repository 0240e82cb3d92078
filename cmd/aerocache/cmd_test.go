package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/aerocache/store"
	"github.com/unkn0wn-root/aerocache/store/ristretto"
)

// keepOpen survives the per-command Stop so several commands share data.
type keepOpen struct{ store.Client }

func (keepOpen) Close() error { return nil }

func sharedMemory(t *testing.T) map[string]store.Dialer {
	t.Helper()
	st, err := ristretto.New(ristretto.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	d := store.DialFunc(func(context.Context, store.Config) (store.Client, error) {
		return keepOpen{st}, nil
	})
	return map[string]store.Dialer{backendMemory: d}
}

func run(t *testing.T, dialers map[string]store.Dialer, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	a.dialers = dialers
	cmd := newRootCmd(a)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "aerocache.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestSetGetDrop(t *testing.T) {
	d := sharedMemory(t)

	out, err := run(t, d, "--backend", "memory", "set", "user:1", "alice", "--ttl", "1m")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = run(t, d, "--backend", "memory", "get", "user:1")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "test/test/user:1", view["key"])
	assert.Equal(t, "alice", view["item"])
	assert.Equal(t, "1m0s", view["ttl"])

	_, err = run(t, d, "--backend", "memory", "drop", "user:1")
	require.NoError(t, err)

	_, err = run(t, d, "--backend", "memory", "get", "user:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNamespaceAndSegmentFlags(t *testing.T) {
	d := sharedMemory(t)

	_, err := run(t, d, "--backend", "memory", "--namespace", "app", "--segment", "sessions", "set", "s1", "v")
	require.NoError(t, err)

	out, err := run(t, d, "--backend", "memory", "--namespace", "app", "--segment", "sessions", "get", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, "key: app/sessions/s1")

	_, err = run(t, d, "--backend", "memory", "get", "s1")
	require.Error(t, err, "default segment must not see the item")
}

func TestSetRejectsBadInput(t *testing.T) {
	d := sharedMemory(t)

	_, err := run(t, d, "--backend", "memory", "set", "k", "v", "--ttl", "0s")
	require.Error(t, err)

	_, err = run(t, d, "--backend", "memory", "set", "k", "")
	require.Error(t, err)

	_, err = run(t, d, "--backend", "memory", "set", "k")
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	out, err := run(t, sharedMemory(t), "--backend", "memory", "ping")
	require.NoError(t, err)
	assert.Equal(t, "ok (memory)\n", out)
}

func TestPingRealMemoryBackends(t *testing.T) {
	for _, b := range []string{backendMemory, backendBigcache} {
		out, err := run(t, nil, "--backend", b, "ping")
		require.NoError(t, err, b)
		assert.Contains(t, out, "ok")
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, nil, "--backend", "etcd", "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestConfigFile(t *testing.T) {
	p := writeConfig(t, `
log:
  level: warn
backend: redis
connection:
  hosts:
    - addr: 10.0.0.5
      port: 6379
  segment: sessions
  connect_timeout: 2s
`)
	a := newApp()
	cfg, err := loadConfig(a.v, p)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	require.Len(t, cfg.Connection.Hosts, 1)
	assert.Equal(t, store.Host{Addr: "10.0.0.5", Port: 6379}, cfg.Connection.Hosts[0])
	assert.Equal(t, "sessions", cfg.Connection.Segment)
	assert.Equal(t, "test", cfg.Connection.Partition)
	assert.Equal(t, 2*time.Second, cfg.Connection.ConnectTimeout)
}

func TestConfigFileUnknownKey(t *testing.T) {
	p := writeConfig(t, "connection:\n  partiton: typo\n")
	_, err := loadConfig(newApp().v, p)
	require.Error(t, err)
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("AEROCACHE_BACKEND", "memory")
	cfg, err := loadConfig(newApp().v, "")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "127.0.0.1", cfg.Connection.Hosts[0].Addr)
}

func TestConfigCmd(t *testing.T) {
	p := writeConfig(t, "connection:\n  partition: cache\n")
	out, err := run(t, nil, "--config", p, "config")
	require.NoError(t, err)

	var got fileConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "cache", got.Connection.Partition)
	assert.Equal(t, "test", got.Connection.Segment)
	assert.Equal(t, "aerospike", got.Backend)
	assert.Equal(t, "error", got.Log.Level)
	require.Len(t, got.Connection.Hosts, 1)
	assert.Equal(t, 3000, got.Connection.Hosts[0].Port)
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := newLogger(LogConfig{Level: "loud"})
	require.Error(t, err)

	l, err := newLogger(LogConfig{Level: "debug", Production: true, File: filepath.Join(t.TempDir(), "a.log")})
	require.NoError(t, err)
	l.Info("x")
	require.NoError(t, l.Sync())
}
