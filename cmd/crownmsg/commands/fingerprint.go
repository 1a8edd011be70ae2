package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

// fingerprint [peer]: print a key fingerprint, yours by default.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [peer]",
		Short: "Print a user's key fingerprint for out-of-band comparison",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			who := user
			if len(args) == 1 {
				who = args[0]
			}
			record, err := wire.Keys.FetchPeerPublicKey(cmd.Context(), domain.UserID(who))
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", record.UserID, record.Fingerprint)
			return nil
		},
	}
}
