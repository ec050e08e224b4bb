package main

import (
	"errors"
	"os"

	"github.com/sprite-ai/rebuttal/internal/cli"
)

// Set via -ldflags at build time; see Makefile.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cli.Execute(); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		os.Exit(1)
	}
}
