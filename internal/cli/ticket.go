package cli

import (
	"fmt"
	"strconv"

	"github.com/sangkips/invoice-ticket-api/internal/application/service"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

// NewTicketCommand creates the ticket command.
func NewTicketCommand(rootOpts *RootOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "ticket <invoice-id>",
		Short: "Print the plain-text ticket of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 0)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid invoice id %q: must be a positive integer", args[0])
			}

			db, err := rootOpts.database()
			if err != nil {
				return err
			}

			cfg := rootOpts.config()
			opts := service.TicketOptions{
				Width:       cfg.Ticket.Width,
				FooterWidth: cfg.Ticket.FooterWidth,
				Location:    cfg.Ticket.Location(),
			}
			if width > 0 {
				opts.Width = width
			}

			tickets := service.NewTicketService(repository.NewInvoiceRepository(db), opts, rootOpts.logger(cmd))
			text, err := tickets.RenderInvoiceText(cmd.Context(), uint(id))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "ticket width in characters (default TICKET_WIDTH)")

	return cmd
}
