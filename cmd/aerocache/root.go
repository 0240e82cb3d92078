package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/aerocache"
	c "github.com/unkn0wn-root/aerocache/codec"
	zaplog "github.com/unkn0wn-root/aerocache/log/zap"
	"github.com/unkn0wn-root/aerocache/store"
	"github.com/unkn0wn-root/aerocache/store/aerospike"
	"github.com/unkn0wn-root/aerocache/store/bigcache"
	"github.com/unkn0wn-root/aerocache/store/redis"
	"github.com/unkn0wn-root/aerocache/store/ristretto"
)

const (
	backendAerospike = "aerospike"
	backendRedis     = "redis"
	backendMemory    = "memory"
	backendBigcache  = "bigcache"
)

type rootFlags struct {
	config    string
	backend   string
	logLevel  string
	namespace string
	segment   string
	timeout   time.Duration
}

type app struct {
	flags rootFlags
	v     *viper.Viper
	cfg   fileConfig
	log   *zap.Logger

	// dialers overrides backend lookup, nil in production.
	dialers map[string]store.Dialer
}

func newApp() *app {
	return &app{v: viper.New()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "aerocache",
		Short:         "Inspect and edit cache items stored by aerocache.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	fs := root.PersistentFlags()
	fs.StringVarP(&a.flags.config, "config", "c", "", "config file (yaml)")
	fs.StringVar(&a.flags.backend, "backend", "", "store backend: aerospike|redis|memory|bigcache")
	fs.StringVar(&a.flags.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	fs.StringVar(&a.flags.namespace, "namespace", "", "item namespace, defaults to the configured partition")
	fs.StringVar(&a.flags.segment, "segment", "", "item segment, defaults to the configured segment")
	fs.DurationVar(&a.flags.timeout, "timeout", 5*time.Second, "per-command timeout")

	_ = a.v.BindPFlag("backend", fs.Lookup("backend"))
	_ = a.v.BindPFlag("log.level", fs.Lookup("log-level"))

	root.AddCommand(
		newPingCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newDropCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := loadConfig(a.v, a.flags.config)
	if err != nil {
		return err
	}
	a.cfg = cfg

	l, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.log = l
	return nil
}

func (a *app) dialer() (store.Dialer, error) {
	if d, ok := a.dialers[a.cfg.Backend]; ok {
		return d, nil
	}
	switch a.cfg.Backend {
	case backendAerospike:
		return aerospike.Dialer, nil
	case backendRedis:
		return redis.Dialer, nil
	case backendMemory:
		return ristretto.Dialer(ristretto.DefaultConfig()), nil
	case backendBigcache:
		return bigcache.Dialer(bigcache.Config{LifeWindow: 10 * time.Minute}), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", a.cfg.Backend)
	}
}

// connect starts a string-valued connection for one command.
func (a *app) connect(ctx context.Context) (aerocache.Conn[string], error) {
	d, err := a.dialer()
	if err != nil {
		return nil, err
	}
	cn, err := aerocache.New[string](aerocache.Options[string]{
		Config: a.cfg.Connection,
		Dialer: d,
		Codec:  c.String{},
		Logger: zaplog.New(a.log),
	})
	if err != nil {
		return nil, err
	}
	if err := cn.Start(ctx); err != nil {
		return nil, err
	}
	a.log.Debug("connected", zap.String("backend", a.cfg.Backend))
	return cn, nil
}

func (a *app) key(id string) aerocache.Key {
	return aerocache.StructuredKey{Namespace: a.flags.namespace, Segment: a.flags.segment, ID: id}
}

// withConn runs f against a started connection and stops it afterwards.
func (a *app) withConn(cmd *cobra.Command, f func(ctx context.Context, cn aerocache.Conn[string]) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.flags.timeout)
	defer cancel()

	cn, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer cn.Stop()
	return f(ctx, cn)
}
