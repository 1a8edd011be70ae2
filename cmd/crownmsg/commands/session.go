package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/crypto"
)

// session <peer>: print the deterministic conversation id with <peer>.
func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session <peer>",
		Short: "Print the conversation id shared with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(crypto.SessionID(user, args[0]))
			return nil
		},
	}
}
