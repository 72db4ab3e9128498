package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/minibrowse/minibrowse/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a local document and print its tree",
	Long:  "Parse markup from a file, or from stdin when no file is given, and print the resulting document tree.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("render", false, "Print re-serialized markup instead of the tree dump")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	render, _ := cmd.Flags().GetBool("render")

	var markup []byte
	var err error
	if len(args) == 1 {
		markup, err = os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading document")
		}
	} else {
		markup, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "reading stdin")
		}
	}

	root, err := parser.Parse(string(markup))
	if err != nil {
		return errors.Wrap(err, "parsing document")
	}

	if render {
		fmt.Fprintln(cmd.OutOrStdout(), root.Render())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), root.String())
	return nil
}
