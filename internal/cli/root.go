// Package cli provides the command-line interface for anyhttp.
package cli

import (
	"fmt"
	"os"

	"github.com/anyhttp/anyhttp"
	"github.com/anyhttp/anyhttp/nethttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information (will be set by build flags in production).
var Version = "dev"

// ClientFactory builds the Client used by commands.
type ClientFactory func(buffered bool, logger *zap.SugaredLogger) (anyhttp.Client, error)

// NetHTTPFactory builds a nethttp adapter around http.DefaultClient.
func NetHTTPFactory(buffered bool, logger *zap.SugaredLogger) (anyhttp.Client, error) {
	c, err := nethttp.New(nethttp.Config{Buffered: buffered, Logger: logger})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewRootCmd returns the root command wired to newClient.
func NewRootCmd(newClient ClientFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "anyhttp",
		Short: "Fetch URLs through the anyhttp client abstraction",
		Long: `anyhttp sends a request through an anyhttp.Client and prints the response body.

It exists to exercise the adapters end to end; all HTTP behavior comes from the
wrapped transport.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFetchCmd(newClient))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "anyhttp version %s\n", Version)
		},
	})

	return root
}

// Execute runs the root command and handles errors.
func Execute() {
	if err := NewRootCmd(NetHTTPFactory).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
