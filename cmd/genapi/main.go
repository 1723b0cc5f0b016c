package main

import (
	"fmt"
	"os"

	"github.com/Luna88k/msbuild/cmd/genapi/commands"
	"github.com/Luna88k/msbuild/logger"
)

func main() {
	err := commands.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
