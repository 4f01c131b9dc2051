package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/shlex"
	"github.com/runoshun/planner/internal/app"
	"github.com/spf13/cobra"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)

// newSessionCommand creates the session command.
func newSessionCommand(c *app.Container) *cobra.Command {
	var opts struct {
		NoPrompt bool
	}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run commands against one in-memory session",
		Long: `Read commands from stdin, one per line, and run them against a single
in-memory session. Changes are lost when the session ends.

Besides the calendar commands, the session accepts:
  add-project, update-project, rm-project
  add-task, update-task, rm-task
  schedule-task, complete, toggle-auto, toggle-lock, reset

Lines are split like a shell; quote values containing spaces or '#'.
Type 'help' for details and 'quit' to leave.

Examples:
  printf 'add-task --title "Write report" --hours 2\nagenda\n' | planner session --no-prompt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompt := ""
			if !opts.NoPrompt {
				prompt = promptStyle.Render("planner>") + " "
			}
			return runShell(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt)
		},
	}

	cmd.Flags().BoolVar(&opts.NoPrompt, "no-prompt", false, "Do not print a prompt (for scripts)")
	return cmd
}

// runShell executes one command per input line until EOF or quit.
// A failing line is reported and the loop continues.
func runShell(ctx context.Context, c *app.Container, in io.Reader, out, errOut io.Writer, prompt string) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt != "" {
			_, _ = fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			if prompt != "" {
				_, _ = fmt.Fprintln(out)
			}
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shlex.Split(line)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}

		// Flag values bind to per-command variables, so each line gets a fresh tree.
		shell := newShellCommand(c)
		shell.SetArgs(args)
		shell.SetOut(out)
		shell.SetErr(errOut)
		if err := shell.ExecuteContext(ctx); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
}

// newShellCommand builds the command tree for one session line.
func newShellCommand(c *app.Container) *cobra.Command {
	shell := &cobra.Command{
		Use:           "planner>",
		Short:         "Session commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	shell.CompletionOptions.DisableDefaultCmd = true
	shell.AddGroup(
		&cobra.Group{ID: groupView, Title: "Calendar Commands:"},
		&cobra.Group{ID: groupSession, Title: "Session Commands:"},
	)

	for _, cmd := range viewCommands(c) {
		cmd.GroupID = groupView
		shell.AddCommand(cmd)
	}
	for _, cmd := range mutationCommands(c) {
		cmd.GroupID = groupSession
		shell.AddCommand(cmd)
	}
	return shell
}
