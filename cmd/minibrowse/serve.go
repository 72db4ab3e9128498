package main

import (
	"github.com/spf13/cobra"

	"github.com/minibrowse/minibrowse/httpd"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve documents to the datagram fetcher",
	Long:  "Run the one-datagram document server over the configured doc root, for exercising the fetch side end to end.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to SERVE_ADDRESS)")
	serveCmd.Flags().String("doc-root", "", "Document root (defaults to DOC_ROOT)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ServeAddress
	}
	docRoot, _ := cmd.Flags().GetString("doc-root")
	if docRoot == "" {
		docRoot = cfg.DocRoot
	}

	return httpd.NewServer(addr, docRoot).ListenAndServe(cmd.Context())
}
