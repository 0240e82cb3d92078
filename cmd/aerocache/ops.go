package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/aerocache"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Connect to the backend and report readiness.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConn(cmd, func(_ context.Context, cn aerocache.Conn[string]) error {
				if !cn.IsReady() {
					return errors.New("connection not ready")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok (%s)\n", a.cfg.Backend)
				return nil
			})
		},
	}
}

// itemView is what get prints.
type itemView struct {
	Key       string        `yaml:"key"`
	Item      string        `yaml:"item"`
	Stored    time.Time     `yaml:"stored"`
	TTL       time.Duration `yaml:"ttl"`
	ExpiresAt time.Time     `yaml:"expires_at"`
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print an item and its envelope.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd, func(ctx context.Context, cn aerocache.Conn[string]) error {
				k := a.key(args[0])
				nk, err := cn.GenerateKey(k)
				if err != nil {
					return err
				}
				env, err := cn.Get(ctx, k)
				if err != nil {
					return err
				}
				if env == nil {
					return fmt.Errorf("%s: not found", nk)
				}
				b, err := yaml.Marshal(itemView{
					Key:       nk.String(),
					Item:      env.Item,
					Stored:    env.Stored.UTC(),
					TTL:       env.TTL,
					ExpiresAt: env.ExpiresAt().UTC(),
				})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			})
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "set <id> <value>",
		Short: "Store a string item.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[1] == "" {
				return errors.New("value must not be empty")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}
			return a.withConn(cmd, func(ctx context.Context, cn aerocache.Conn[string]) error {
				if err := cn.Set(ctx, a.key(args[0]), args[1], ttl); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Minute, "item lifetime")
	return cmd
}

func newDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <id>",
		Short: "Remove an item. Missing items are not an error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd, func(ctx context.Context, cn aerocache.Conn[string]) error {
				if err := cn.Drop(ctx, a.key(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			})
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
