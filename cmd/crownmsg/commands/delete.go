package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

// delete <envelope-id>: soft-delete one of your own messages.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <envelope-id>",
		Short: "Soft-delete a message you sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.EnvelopeID(args[0])
			if err := wire.Send.DeleteMessage(cmd.Context(), id, domain.UserID(user)); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", id)
			return nil
		},
	}
}
