package command

import (
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/output"
	"github.com/yndnr/kernbench-go/internal/core/domain"
)

// ListCommand returns the list command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls", "kernels"},
		Usage:   "List available kernels",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "suite",
				Usage: "Only list kernels of this suite: core, extended",
			},
		},
		Action: func(c *cli.Context) error {
			core, extended, err := getEnv(c).backend().Kernels(c.Context)
			if err != nil {
				return exitError(err)
			}

			var kernels []domain.Kernel
			switch c.String("suite") {
			case "", string(domain.SuiteAll):
				kernels = slices.Concat(core, extended)
			case string(domain.SuiteCore):
				kernels = core
			case string(domain.SuiteExtended):
				kernels = extended
			default:
				return cli.Exit("unknown suite: "+c.String("suite"), exitUsage)
			}
			return printResult(c, output.KernelList(kernels))
		},
	}
}
