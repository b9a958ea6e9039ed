package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/output"
	"github.com/yndnr/kernbench-go/internal/infra/buildinfo"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "kernbench",
		Usage:                "Deterministic compute kernel benchmarks",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		Commands:             commands(),
		EnableBashCompletion: true,
		Before:               setup,
		After:                teardown,
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		RunCommand(),
		ListCommand(),
		VerifyCommand(),
		HistoryCommand(),
		CompareCommand(),
		ServeCommand(),
		ShellCommand(),
		VersionCommand(),
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.kernbench/kernbench.yaml when present)",
			EnvVars: []string{"KERNBENCH_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml, csv",
			Value:   string(output.FormatTable),
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "Run history directory; empty keeps history in memory",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "Do not save runs",
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Use a kernbench server (e.g. localhost:5090) instead of local storage",
			EnvVars: []string{"KERNBENCH_SERVER"},
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "CA certificate file or directory for an https --server",
		},
	}
}

// GlobalFlags are the parsed global flags.
type GlobalFlags struct {
	Config    string
	Output    output.Format
	Wide      bool
	LogLevel  string
	DataDir   string
	NoHistory bool
	Server    string
	CAFile    string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return &GlobalFlags{
		Config:    c.String("config"),
		Output:    format,
		Wide:      c.Bool("wide"),
		LogLevel:  c.String("log-level"),
		DataDir:   c.String("data-dir"),
		NoHistory: c.Bool("no-history"),
		Server:    c.String("server"),
		CAFile:    c.String("ca-file"),
	}, nil
}

// overrides maps explicitly set flags onto configuration keys.
func (f *GlobalFlags) overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("log-level") {
		m["log.level"] = f.LogLevel
	}
	if c.IsSet("data-dir") {
		m["storage.data_dir"] = f.DataDir
	}
	if c.IsSet("no-history") {
		m["storage.no_history"] = f.NoHistory
	}
	return m
}

func setup(c *cli.Context) error {
	if _, ok := c.App.Metadata[envKey].(*env); ok {
		return nil
	}
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	e, err := newEnv(flags, flags.overrides(c), c.App.ErrWriter)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = e
	return nil
}

func teardown(c *cli.Context) error {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		delete(c.App.Metadata, envKey)
		return e.close()
	}
	return nil
}

// getEnv returns the environment built by setup.
func getEnv(c *cli.Context) *env {
	e, _ := c.App.Metadata[envKey].(*env)
	return e
}

// printResult renders data in the selected output format to stdout.
func printResult(c *cli.Context, data any) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	return output.NewFormatter(flags.Output, flags.Wide).Format(c.App.Writer, data)
}

// tableOutput reports whether output goes to a human.
func tableOutput(c *cli.Context) bool {
	flags, err := ParseGlobalFlags(c)
	return err == nil && flags.Output == output.FormatTable
}

// Exit codes.
const (
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
