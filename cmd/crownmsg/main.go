package main

import (
	"os"

	"github.com/kumaruseru/crown-messaging/cmd/crownmsg/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
