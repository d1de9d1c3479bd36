package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tasks/internal/cli"
	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand) layered over config files and env.
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)

	opts := logging.DefaultOptions()
	if opts.Level, err = logging.ParseLevel(cfg.LogLevel); err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, opts)
	logger.Debug("config", "db", cfg.DBPath, "theme", cfg.Theme, "group", cfg.Group)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		DBPath: cfg.DBPath,
		Group:  cfg.Group,
		Logger: logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
