package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/glowup/internal/glowup/app"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
)

// options are the global flags shared by every subcommand.
type options struct {
	driver      string
	dbFile      string
	databaseURL string
	server      string
	timeout     time.Duration
}

func (o *options) config() app.Config {
	cfg := app.LoadConfig()
	cfg.StoreDriver = o.driver
	cfg.DatabaseFile = o.dbFile
	cfg.DatabaseURL = o.databaseURL
	cfg.LogLevel = "error"
	return cfg
}

// remote returns a client when --server is set.
func (o *options) remote() (*glowupsdk.Client, bool) {
	if o.server == "" {
		return nil, false
	}
	return glowupsdk.NewClient(o.server), true
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd() *cobra.Command {
	defaults := app.LoadConfig()
	opts := &options{}

	root := &cobra.Command{
		Use:           "glowupctl",
		Short:         "Inspect and reset GlowUp app state",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `glowupctl reads the persisted GlowUp state the same way the app does on
cold start.

Without --server it opens the store directly (stop the service first when
using the sqlite driver). With --server it talks to a running service.`,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.driver, "driver", defaults.StoreDriver, "Store driver: sqlite, gorm or memory")
	flags.StringVar(&opts.dbFile, "db", defaults.DatabaseFile, "sqlite database file")
	flags.StringVar(&opts.databaseURL, "database-url", defaults.DatabaseURL, "gorm DSN (postgres://... or a sqlite file)")
	flags.StringVar(&opts.server, "server", "", "Base URL of a running service, e.g. http://127.0.0.1:8080")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Operation timeout")

	root.AddCommand(
		newStateCmd(opts),
		newGateCmd(opts),
		newLogoutCmd(opts),
		newCatalogCmd(opts),
		newHealthCmd(opts),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
