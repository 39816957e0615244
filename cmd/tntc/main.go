package main

import (
	"os"

	"github.com/funvibe/tntc/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.DefaultEnv()))
}
