package cli

import (
	"fmt"

	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/jobs"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

// NewPurgeIdempotencyCommand creates the purge-idempotency command.
func NewPurgeIdempotencyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-idempotency",
		Short: "Delete expired idempotency keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.database()
			if err != nil {
				return err
			}

			job := jobs.NewIdempotencyCleanup(repository.NewIdempotencyRepository(db), "", rootOpts.logger(cmd))
			removed, err := job.RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired idempotency key(s)\n", removed)
			return nil
		},
	}
}
