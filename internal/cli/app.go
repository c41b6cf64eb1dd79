// Package cli assembles the hit command-line tool's urfave/cli/v2 app
// and its subcommands (find, format, diff, common, subtract, merge,
// validate, rewrite, braceexpr), following the global-App/AddSubcommand
// pattern used for the mail server command this core was extracted
// alongside.
package cli

import (
	"os"

	"github.com/hitlang/hit/framework/log"
	"github.com/urfave/cli/v2"
)

var app *cli.App

func init() {
	app = cli.NewApp()
	app.Name = "hit"
	app.Usage = "inspect, format, diff, and rewrite HIT configuration documents"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "log",
			Usage: "logging target(s): comma-separated list of 'off', 'stderr', or file paths",
			Value: "stderr",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		out, err := log.ParseOutputOption(c.String("log"))
		if err != nil {
			return err
		}
		log.DefaultLogger.Out = out
		log.DefaultLogger.Debug = c.Bool("debug")
		return nil
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		cli.HandleExitCoder(err)
		if err != nil {
			log.DefaultLogger.Error("command failed", err)
			cli.OsExiter(1)
		}
	}
}

// AddSubcommand registers cmd with the top-level app.
func AddSubcommand(cmd *cli.Command) {
	app.Commands = append(app.Commands, cmd)
}

// Run executes the app against os.Args.
func Run() {
	if err := app.Run(os.Args); err != nil {
		log.DefaultLogger.Error("app.Run failed", err)
		os.Exit(1)
	}
}
