package main

import (
	"os"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/app"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/cli"
)

func main() {
	if err := cli.NewRootCommand(app.LoadConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}
