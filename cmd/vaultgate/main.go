package main

import (
	"os"

	"github.com/quorumlabs/vaultgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
