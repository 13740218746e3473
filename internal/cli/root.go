// Package cli implements the invoicectl maintenance commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sangkips/invoice-ticket-api/internal/app"
	"github.com/sangkips/invoice-ticket-api/internal/config"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootOptions holds global state shared by all commands.
// Config and DB are resolved lazily unless preset.
type RootOptions struct {
	Config  *config.Config
	DB      *gorm.DB
	Verbose bool
}

// NewRootCommand creates the root command for invoicectl.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Maintenance commands for the invoice ticket API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTicketCommand(opts))
	cmd.AddCommand(NewPurgeIdempotencyCommand(opts))

	return cmd
}

func (o *RootOptions) config() *config.Config {
	if o.Config == nil {
		o.Config = config.Load()
	}
	return o.Config
}

func (o *RootOptions) database() (*gorm.DB, error) {
	if o.DB != nil {
		return o.DB, nil
	}
	db, err := database.Open(&o.config().Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	o.DB = db
	return db, nil
}

// logger writes to stderr so command output stays clean on stdout
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	appCfg := o.config().App
	appCfg.LogLevel = "debug"
	return app.NewLogger(&appCfg, cmd.ErrOrStderr())
}
