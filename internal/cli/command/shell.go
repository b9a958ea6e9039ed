package command

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/cli/repl"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive shell",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "Shell history file; empty keeps history in memory",
				Value: defaultShellHistory(),
			},
		},
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	e := getEnv(c)
	sub := shellApp(c, e)

	h := repl.NewHistory(c.String("history-file"))
	if err := h.Load(); err != nil {
		e.logger.Warn("shell history not loaded", "error", err)
	}
	defer func() {
		if err := h.Save(); err != nil {
			e.logger.Warn("shell history not saved", "error", err)
		}
	}()

	r := repl.New(
		func(ctx context.Context, args []string) error {
			return sub.RunContext(ctx, append([]string{sub.Name}, args...))
		},
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(h),
		repl.WithCompletions(completions(sub.Commands)),
	)
	return r.Run(c.Context)
}

// shellApp builds the application each shell line runs in. It shares the
// parent's environment so storage is opened once per session, and it
// never exits the process.
func shellApp(c *cli.Context, e *env) *cli.App {
	var cmds []*cli.Command
	for _, cmd := range commands() {
		if cmd.Name != "shell" {
			cmds = append(cmds, cmd)
		}
	}
	return &cli.App{
		Name:            c.App.Name,
		Usage:           c.App.Usage,
		Flags:           globalFlags(),
		Commands:        cmds,
		HideVersion:     true,
		Reader:          c.App.Reader,
		Writer:          c.App.Writer,
		ErrWriter:       c.App.ErrWriter,
		Metadata:        map[string]any{envKey: e},
		ExitErrHandler:  func(*cli.Context, error) {},
		CommandNotFound: commandNotFound,
	}
}

func commandNotFound(c *cli.Context, name string) {
	PrintError("unknown command %q, type help", name)
}

// completions lists every command path, such as "history show".
func completions(cmds []*cli.Command) []string {
	var out []string
	for _, cmd := range cmds {
		out = append(out, cmd.Name)
		for _, sub := range cmd.Subcommands {
			out = append(out, cmd.Name+" "+sub.Name)
		}
	}
	return out
}

func defaultShellHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kernbench", "history")
}
