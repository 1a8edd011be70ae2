package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

// send <peer> <message>: encrypt a message to <peer> and store the envelope.
func sendCmd() *cobra.Command {
	var replyTo string
	cmd := &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt and store a message for a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.UserID(args[0])
			env, err := wire.Send.SendMessage(
				cmd.Context(), domain.UserID(user), peer, []byte(args[1]),
				domain.SendOptions{ReplyTo: domain.EnvelopeID(replyTo)})
			if err != nil {
				return err
			}
			fmt.Printf("sent %s\n", env.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "envelope id this message replies to")
	return cmd
}
