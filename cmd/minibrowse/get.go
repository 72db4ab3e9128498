package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/minibrowse/minibrowse/fetch"
	"github.com/minibrowse/minibrowse/parser"
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Fetch a document and print its tree",
	Long:  "Fetch a document over the datagram exchange, parse the markup, and print the resulting document tree.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().Bool("render", false, "Print re-serialized markup instead of the tree dump")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	render, _ := cmd.Flags().GetBool("render")

	u, err := fetch.ParseURLWithDefaults(args[0], cfg.DefaultPort, cfg.DefaultPath)
	if err != nil {
		return errors.Wrap(err, "parsing url")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout)
	defer cancel()

	client := &fetch.Client{
		Timeout:    cfg.FetchTimeout,
		BufferSize: cfg.ReadBufferSize,
	}
	resp, err := client.Fetch(ctx, u)
	if err != nil {
		return errors.Wrap(err, "fetching document")
	}

	root, err := parser.Parse(resp.Body)
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
