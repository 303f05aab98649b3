// Package main is the entry point for the queue CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		cli.WriteError(os.Stdout, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is the common case
	_ = godotenv.Load()

	container, err := app.New(dirFlag(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// dirFlag extracts --dir from args before the command tree exists, since the
// container it selects is needed to build the commands.
func dirFlag(args []string) string {
	fs := pflag.NewFlagSet("queue", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	dir := fs.String(cli.DirFlag, "", "")
	_ = fs.Parse(args) // the root command reports bad flags
	return *dir
}
