package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/lox/internal/syntax"
)

// readSource reads the program file named on the command line.
func readSource(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *app) tokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			res, err := a.session().Tokenize(src)
			// Errors first, then every token; scanning never stops early.
			a.report(err)
			for _, it := range res.Items {
				fmt.Fprintln(a.stdout, it.String())
			}
			return nil
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a single expression and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "prefix", "infix", "json":
			default:
				return fmt.Errorf("unknown format %q (want prefix, infix or json)", format)
			}

			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			res, err := a.session().ParseExpr(src)
			if err != nil {
				a.report(err)
				return nil
			}

			switch format {
			case "infix":
				fmt.Fprintln(a.stdout, syntax.Infix(res.Expr))
			case "json":
				return syntax.FprintJSON(a.stdout, res.Expr)
			default:
				fmt.Fprintln(a.stdout, syntax.Prefix(res.Expr))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "prefix", "output format (prefix, infix or json)")
	return cmd
}

func (a *app) evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <file>",
		Short: "Evaluate a single expression and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			res, err := a.session().Evaluate(src)
			if err != nil {
				a.report(err)
				return nil
			}
			fmt.Fprintln(a.stdout, res.Value.String())
			return nil
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			_, err = a.session().Run(src)
			a.report(err)
			return nil
		},
	}
}

func (a *app) astCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the statement trees of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			res, err := a.session().Program(src)
			if err != nil {
				a.report(err)
				return nil
			}

			if format == "json" {
				return syntax.FprintStmtsJSON(a.stdout, res.Stmts)
			}
			return syntax.FprintStmts(a.stdout, res.Stmts)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text or json)")
	return cmd
}
