package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate your message encryption keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := wire.Keys.InitializeUserEncryption(
				cmd.Context(), domain.UserID(user), secret)
			if err != nil {
				return err
			}
			if secret == "" {
				fmt.Println("warning: no secret given, private key stored unprotected")
			}
			fmt.Printf("Encryption initialized.\nFingerprint: %s\n", pair.Fingerprint)
			return nil
		},
	}
}
