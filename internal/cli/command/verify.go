package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/output"
)

// VerifyCommand returns the verify command.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check kernel results against the reference values",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "extended",
				Usage: "Also check the extended kernels",
			},
		},
		Action: func(c *cli.Context) error {
			var spin *output.Spinner
			if tableOutput(c) {
				spin = output.NewSpinner(c.App.ErrWriter, "Verifying kernels")
				spin.Start()
			}

			v, err := getEnv(c).backend().Verify(c.Context, c.Bool("extended"))
			if err != nil {
				if spin != nil {
					spin.Fail("verification failed")
				}
				return exitError(err)
			}
			if spin != nil {
				if v.Passed {
					spin.Success("all checks passed")
				} else {
					spin.Fail("parity mismatch")
				}
			}

			if err := printResult(c, (*output.VerificationView)(v)); err != nil {
				return err
			}
			if verr := v.Err(); verr != nil {
				return cli.Exit(verr.Error(), exitFailure)
			}
			return nil
		},
	}
}
