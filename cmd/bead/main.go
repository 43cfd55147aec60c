package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bead/pkg/driver"
	"bead/pkg/errors"
	"bead/pkg/source"
	"bead/pkg/types"
)

func main() {
	root := &cobra.Command{
		Use:           "bead",
		Short:         "Bead language front end",
		Long:          "Checks Bead sources: builds the symbol table, links inheritance, and enforces member visibility and construction chains.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd(), newTokensCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(64) // Exit code 64: command line usage error
	}
}

func newCheckCmd() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Resolve one or more Bead source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resolved *types.ResolvedProgram
			var diags []errors.BeadError

			switch {
			case projectDir != "":
				if len(args) != 0 {
					return fmt.Errorf("--project and file arguments are mutually exclusive")
				}
				resolved, diags = driver.CheckProject(projectDir)
			case len(args) == 0:
				return fmt.Errorf("no input files")
			default:
				resolved, diags = driver.CheckFiles(args)
			}

			if len(diags) != 0 {
				errors.DisplayErrors(diags)
				os.Exit(65) // Exit code 65: input data error
			}

			fmt.Printf("ok: %d class(es), %d enum(s)\n", len(resolved.Classes), len(resolved.Enums))
			return nil
		},
	}
	cmd.Flags().StringVarP(&projectDir, "project", "p", "", "check a project directory containing bead.toml")
	return cmd
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a Bead source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := source.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, tok := range driver.Tokenize(src.Content) {
				fmt.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
			}
			return nil
		},
	}
}
