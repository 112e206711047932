package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/konstantinfoerster/deck-diff-go/internal/cli"
	logger "github.com/konstantinfoerster/deck-diff-go/internal/log"
)

// set via -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	logger.SetupConsoleLogger()

	if err := cli.NewRootCmd(version).Execute(); err != nil {
		if !errors.Is(err, cli.ErrDecksDiffer) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
