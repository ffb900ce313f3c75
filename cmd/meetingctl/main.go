package main

import (
	"os"

	"github.com/johnquangdev/meeting-summarizer/internal/cli"
	"github.com/johnquangdev/meeting-summarizer/internal/output"
)

var version = "dev"

func main() {
	deps := &cli.Dependencies{Version: version}

	err := cli.NewRootCmd(deps).Execute()
	if closeErr := deps.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
