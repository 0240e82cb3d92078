package aerocache

import (
	"testing"
	"time"

	"github.com/unkn0wn-root/aerocache/store"
)

func TestMergeConfigDefaults(t *testing.T) {
	got := MergeConfig(DefaultConfig(), Config{})
	if got.Partition != "test" || got.Segment != "test" {
		t.Fatalf("unexpected defaults %+v", got)
	}
	if len(got.Hosts) != 1 || got.Hosts[0].String() != "127.0.0.1:3000" {
		t.Fatalf("unexpected default hosts %+v", got.Hosts)
	}
}

func TestMergeConfigOverrides(t *testing.T) {
	def := DefaultConfig()
	user := Config{
		Hosts:          []store.Host{{Addr: "10.0.0.1", Port: 3100}, {Addr: "10.0.0.2", Port: 3100}},
		Segment:        "sessions",
		ConnectTimeout: 2 * time.Second,
	}
	got := MergeConfig(def, user)

	if len(got.Hosts) != 2 || got.Hosts[1].Addr != "10.0.0.2" {
		t.Fatalf("hosts must be replaced, got %+v", got.Hosts)
	}
	if got.Partition != "test" || got.Segment != "sessions" || got.ConnectTimeout != 2*time.Second {
		t.Fatalf("unexpected merge %+v", got)
	}
}

func TestMergeConfigIsPure(t *testing.T) {
	def := DefaultConfig()
	user := Config{Hosts: []store.Host{{Addr: "a", Port: 1}}}
	got := MergeConfig(def, user)

	got.Hosts[0].Addr = "changed"
	if user.Hosts[0].Addr != "a" {
		t.Fatalf("merge result aliases user hosts")
	}
	if def.Hosts[0].Addr != "127.0.0.1" || len(def.Hosts) != 1 {
		t.Fatalf("defaults were modified: %+v", def.Hosts)
	}
	if d := DefaultConfig(); d.Hosts[0].Addr != "127.0.0.1" {
		t.Fatalf("DefaultConfig must return a fresh value")
	}
}

func TestEnvelopeExpiry(t *testing.T) {
	stored := time.UnixMilli(1_000)
	e := &Envelope[string]{Stored: stored, TTL: time.Second}
	if !e.ExpiresAt().Equal(time.UnixMilli(2_000)) {
		t.Fatalf("ExpiresAt = %v", e.ExpiresAt())
	}
	if r := e.Remaining(time.UnixMilli(1_500)); r != 500*time.Millisecond {
		t.Fatalf("Remaining = %v", r)
	}
	if r := e.Remaining(time.UnixMilli(5_000)); r != 0 {
		t.Fatalf("Remaining after expiry = %v", r)
	}
	forever := &Envelope[string]{Stored: stored}
	if !forever.ExpiresAt().IsZero() || forever.Remaining(stored) != 0 {
		t.Fatalf("no-ttl envelope must report zero expiry")
	}
}
