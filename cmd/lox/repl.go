package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/you-not-fish/lox/internal/driver"
)

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read and run lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl()
		},
	}
}

// repl runs each input line against one long-lived session. A line that is
// a bare expression has its value printed. Errors are reported and the
// loop continues.
func (a *app) repl() error {
	sess := a.session(driver.WithMaxSteps(a.cfg.REPL.MaxSteps))
	a.log.Info("repl started", zap.String("session", sess.ID()))

	prompt := ""
	if isTerminal(a.stdin) {
		prompt = a.cfg.REPL.Prompt
	}

	in := bufio.NewScanner(a.stdin)
	for {
		fmt.Fprint(a.stdout, prompt)
		if !in.Scan() {
			break
		}
		line := in.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if _, err := sess.ParseExpr(line); err == nil {
			res, err := sess.Evaluate(line)
			if err != nil {
				a.printErrors(err)
				continue
			}
			fmt.Fprintln(a.stdout, res.Value.String())
			continue
		}

		if _, err := sess.Run(line); err != nil {
			a.printErrors(err)
		}
	}
	if prompt != "" {
		fmt.Fprintln(a.stdout)
	}
	return in.Err()
}

// printErrors reports diagnostics without ending the session.
func (a *app) printErrors(err error) {
	for _, line := range driver.Reports(err) {
		fmt.Fprintln(a.stderr, line)
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
