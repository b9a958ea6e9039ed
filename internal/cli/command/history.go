package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/output"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

// HistoryCommand returns the history command.
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect saved runs",
		Subcommands: []*cli.Command{
			historyListCommand(),
			historyShowCommand(),
			historyDeleteCommand(),
		},
	}
}

func historyListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List saved runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum runs to list (0 for all)",
				Value:   20,
			},
		},
		Action: func(c *cli.Context) error {
			runs, err := getEnv(c).backend().ListRuns(c.Context, c.Int("limit"))
			if err != nil {
				return exitError(err)
			}
			return printResult(c, output.RunList(runs))
		},
	}
}

func historyShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"get"},
		Usage:     "Show a saved run",
		ArgsUsage: "<run-id|latest>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				id = service.LatestAlias
			}
			run, err := getEnv(c).backend().GetRun(c.Context, id)
			if err != nil {
				return exitError(err)
			}
			return printResult(c, (*output.RunView)(run))
		},
	}
}

func historyDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a saved run",
		ArgsUsage: "<run-id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("run id is required", exitUsage)
			}
			if err := getEnv(c).backend().DeleteRun(c.Context, id); err != nil {
				return exitError(err)
			}
			if tableOutput(c) {
				fmt.Fprintf(c.App.Writer, "Deleted run %s\n", id)
			}
			return nil
		},
	}
}
