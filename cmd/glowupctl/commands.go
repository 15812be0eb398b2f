package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/glowup/internal/glowup/app"
	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/navigation"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

// withLocalState hydrates a container from the configured store, wired to a
// persister, and hands it to fn. Pending writes are drained before returning.
func withLocalState(ctx context.Context, opts *options, fn func(*state.Container) error) error {
	cfg := opts.config()
	st, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := slogx.Discard()
	p := service.NewPersister(st, logger, cfg.PersistWriteTimeout)
	p.Start()
	defer p.Stop()

	c := state.Open(ctx, state.Options{
		Store:          st,
		Mirror:         p,
		Logger:         logger,
		HydrateTimeout: cfg.HydrateTimeout,
	})
	if c.Hydration().Fallback {
		return errors.New("could not read the store")
	}
	return fn(c)
}

func newStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the hydrated app state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			if client, ok := opts.remote(); ok {
				st, err := client.State(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), st)
			}

			return withLocalState(ctx, opts, func(c *state.Container) error {
				return printJSON(cmd.OutOrStdout(), c.State())
			})
		},
	}
}

func newGateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gate <route>",
		Short: "Show where the navigation gate sends a route",
		Example: `  glowupctl gate /paywall
  glowupctl gate "(tabs)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			if client, ok := opts.remote(); ok {
				g, err := client.Gate(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), g)
			}

			return withLocalState(ctx, opts, func(c *state.Container) error {
				s := c.State()
				d := navigation.Decide(args[0], s.IsAuthenticated(), s.OnboardingComplete)
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"route":    string(d.Route),
					"phase":    string(d.Phase),
					"redirect": string(d.Redirect),
					"next":     string(d.Next),
				})
			})
		},
	}
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted profile and onboarding flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			if client, ok := opts.remote(); ok {
				if _, err := client.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			}

			return withLocalState(ctx, opts, func(c *state.Container) error {
				if err := c.Logout(ctx); err != nil {
					return fmt.Errorf("state reset but storage was not cleared: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newCatalogCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the challenges offered on the explore tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if client, ok := opts.remote(); ok {
				ctx, cancel := opts.context(cmd)
				defer cancel()

				cat, err := client.Catalog(ctx)
				if err != nil {
					return err
				}
				for _, ch := range cat.Challenges {
					if category == "" || ch.Category == category {
						printChallenge(cmd, ch.ID, ch.Category, ch.Duration, ch.Title)
					}
				}
				return nil
			}

			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			for _, t := range cat.InCategory(category) {
				printChallenge(cmd, t.ID, t.Category, t.DurationDays, t.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list one category")
	return cmd
}

func printChallenge(cmd *cobra.Command, id, category string, days int, title string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-12s %3d days  %s\n", id, category, days, title)
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check readiness of a running service (requires --server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok := opts.remote()
			if !ok {
				return errors.New("health needs --server")
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			h, err := client.Readiness(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	}
}
