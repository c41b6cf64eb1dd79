package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hitlang/hit/framework/log"
	"github.com/hitlang/hit/hit/brace"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// debugEnvEvaler wraps brace.EnvEvaler, logging a warning through a
// zap-backed core whenever a referenced environment variable is
// unset, so "-debug" catches a typo'd "${env ...}" reference instead
// of it silently resolving to the empty string.
type debugEnvEvaler struct {
	zl *zap.Logger
}

func (e debugEnvEvaler) Eval(args []string) (string, error) {
	if len(args) > 0 {
		if _, ok := os.LookupEnv(args[0]); !ok {
			e.zl.Warn("environment variable not set", zap.String("name", args[0]))
		}
	}
	return brace.EnvEvaler{}.Eval(args)
}

func newBraceExprCommand() *cli.Command {
	return &cli.Command{
		Name:  "braceexpr",
		Usage: "expand '${env ...}'/'${raw ...}' brace expressions read from stdin",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "warn (via zap) about every unset '${env ...}' variable"},
		},
		Action: func(c *cli.Context) error {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return cli.Exit(err, 1)
			}

			exp := brace.NewExpander()
			if c.Bool("debug") {
				zl := log.Logger{Out: log.DefaultLogger.Out, Debug: true}.Zap()
				exp.Register("env", debugEnvEvaler{zl: zl})
			} else {
				exp.Register("env", brace.EnvEvaler{})
			}
			exp.Register("raw", brace.RawEvaler{})

			out, err := exp.ExpandString(string(data))
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}
}
