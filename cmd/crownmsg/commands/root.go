package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumaruseru/crown-messaging/internal/app"
)

var (
	exchangeURL string
	dbPath      string
	user        string
	secret      string
	host        string

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "crownmsg",
		Short: "End-to-end encrypted direct messages for crown-social",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if host != "native" && host != "web" {
				return fmt.Errorf("unknown host %q (want native or web)", host)
			}

			cfg := app.FromEnv()
			if exchangeURL != "" {
				cfg.ExchangeURL = exchangeURL
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			cfg.WebHost = host == "web"

			var err error
			wire, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire != nil {
				return wire.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&exchangeURL, "exchange", "", "exchange base URL (e.g. http://127.0.0.1:8470)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "local SQLite path (used when no exchange is set)")
	root.PersistentFlags().StringVarP(&user, "user", "u", "", "your user id")
	root.PersistentFlags().StringVarP(&secret, "secret", "s", "", "account secret protecting your private key")
	root.PersistentFlags().StringVar(&host, "host", "native", "primitive suite: native or web")
	_ = root.MarkPersistentFlagRequired("user")

	root.AddCommand(initCmd(), fingerprintCmd(), sessionCmd(), sendCmd(), readCmd(), deleteCmd())
	return root.Execute()
}
