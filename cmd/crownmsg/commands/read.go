package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

// read <peer>: decrypt and print the conversation with <peer>.
func readCmd() *cobra.Command {
	var (
		offset int
		limit  int
		mark   bool
	)
	cmd := &cobra.Command{
		Use:   "read <peer>",
		Short: "Decrypt and print your conversation with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.UserID(args[0])
			msgs, err := wire.Send.ReadSession(
				cmd.Context(), domain.UserID(user), peer, secret,
				domain.Page{Offset: offset, Limit: limit})
			if err != nil {
				return err
			}
			for _, m := range msgs {
				flag := ""
				if !m.Verified {
					flag = " (unverified)"
				}
				fmt.Printf("[%s %s]%s %s\n",
					m.SentAt.Local().Format("2006-01-02 15:04"),
					m.SenderID, flag, string(m.Plaintext))
			}
			if mark {
				return wire.Send.MarkRead(cmd.Context(), domain.UserID(user), peer)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many messages")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (0 = store default)")
	cmd.Flags().BoolVar(&mark, "mark-read", true, "stamp fetched messages as read")
	return cmd
}
