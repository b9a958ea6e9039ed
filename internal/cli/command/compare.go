package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/output"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

// CompareCommand returns the compare command.
func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"diff"},
		Usage:     "Compare two saved runs kernel by kernel",
		ArgsUsage: "<baseline-id> [current-id|latest]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 || c.NArg() > 2 {
				return cli.Exit("usage: kernbench compare <baseline-id> [current-id]", exitUsage)
			}
			current := c.Args().Get(1)
			if current == "" {
				current = service.LatestAlias
			}
			cmp, err := getEnv(c).backend().Compare(c.Context, c.Args().First(), current)
			if err != nil {
				return exitError(err)
			}
			return printResult(c, (*output.ComparisonView)(cmp))
		},
	}
}
