package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/output"
	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/infra/shutdown"
)

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a benchmark suite or selected kernels",
		ArgsUsage: "[kernel...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "suite",
				Usage: "Suite: core, extended, all, beast",
			},
			&cli.StringSliceFlag{
				Name:    "kernel",
				Aliases: []string{"k"},
				Usage:   "Kernel to run (repeatable); overrides --suite",
			},
			&cli.IntFlag{
				Name:    "trials",
				Aliases: []string{"n"},
				Usage:   "Timed calls per kernel",
			},
			&cli.IntFlag{
				Name:  "warmup",
				Usage: "Untimed calls per kernel before the trials",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Kernels executed concurrently",
			},
			&cli.DurationFlag{
				Name:  "pause",
				Usage: "Delay between kernel starts (e.g. 10ms)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not show progress",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit non-zero when any kernel aborted",
			},
		},
		Action: runAction,
	}
}

func runRequest(c *cli.Context) service.RunRequest {
	req := service.RunRequest{
		Suite:       c.String("suite"),
		Kernels:     append(c.StringSlice("kernel"), c.Args().Slice()...),
		Trials:      c.Int("trials"),
		Parallelism: c.Int("parallel"),
		PauseMillis: int(c.Duration("pause").Milliseconds()),
		NoHistory:   c.Bool("no-history"),
	}
	if c.IsSet("warmup") {
		w := c.Int("warmup")
		req.Warmup = &w
	}
	return req
}

func runAction(c *cli.Context) error {
	e := getEnv(c)
	b := e.backend()

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	var bar *output.ProgressBar
	var progress func(service.Progress)
	if tableOutput(c) && !c.Bool("quiet") && b.Local() {
		bar = output.NewProgressBar(c.App.ErrWriter, "Running")
		progress = func(p service.Progress) {
			bar.Update(p.Done, p.Total, p.Result.Label)
		}
	}

	run, err := b.Run(ctx, runRequest(c), progress)
	if bar != nil {
		bar.Finish()
	}
	if err != nil && !errors.Is(err, domain.ErrRunCancelled) {
		return exitError(err)
	}

	if run != nil {
		if perr := printResult(c, (*output.RunView)(run)); perr != nil {
			return perr
		}
	}
	if err != nil {
		return cli.Exit(err.Error(), exitCancelled)
	}
	if c.Bool("strict") && run.Failures() > 0 {
		return cli.Exit(fmt.Sprintf("%d kernel(s) aborted", run.Failures()), exitFailure)
	}
	return nil
}

// exitError converts err to a cli exit error. Request errors exit with the
// usage code.
func exitError(err error) error {
	code := domain.GetErrorCode(err)
	switch {
	case errors.Is(err, domain.ErrRunCancelled):
		return cli.Exit(err.Error(), exitCancelled)
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4040"):
		return cli.Exit(err.Error(), exitUsage)
	default:
		return cli.Exit(err.Error(), exitFailure)
	}
}
