// Package main implements the lox command-line interpreter.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/you-not-fish/lox/internal/config"
	"github.com/you-not-fish/lox/internal/driver"
	"github.com/you-not-fish/lox/internal/logger"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the streams and settings shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Global flags
	cfgFile string
	debug   bool

	cfg  *config.Config
	log  *zap.Logger
	code int // exit status chosen by the subcommand
}

// run executes the command line args and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return a.code
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lox",
		Short:         "Tree-walking interpreter for the lox language",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Syncing a console writer fails on some platforms; nothing to report.
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.tokenizeCmd(),
		a.parseCmd(),
		a.evaluateCmd(),
		a.runCmd(),
		a.astCmd(),
		a.replCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	a.cfg = config.Default()
	if a.cfgFile != "" {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.debug {
		a.cfg.Log.Level = "debug"
	}

	a.log = logger.New(a.cfg.Log)
	a.log.Debug("config loaded", zap.String("file", a.cfgFile))
	return nil
}

// session starts an interpreter session writing to stdout.
func (a *app) session(opts ...driver.Option) *driver.Session {
	return driver.NewSession(a.stdout, append([]driver.Option{driver.WithLogger(a.log)}, opts...)...)
}

// report prints diagnostics to stderr and records the exit status for err.
func (a *app) report(err error) {
	for _, line := range driver.Reports(err) {
		fmt.Fprintln(a.stderr, line)
	}
	a.code = driver.ExitCode(err, a.cfg.Exit)
}
