package cli

import (
	"fmt"

	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.database()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			if seed {
				if err := database.SeedDefaultData(db, &rootOpts.config().Admin); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "create the admin account from ADMIN_LOGIN/ADMIN_PASSWORD")

	return cmd
}
