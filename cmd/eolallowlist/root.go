package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for eolallowlist.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eolallowlist",
		Short: "Build DNS allowlists from endoflife.date product links",
		Long: `eolallowlist fetches every product tracked by endoflife.date, collects the
website link of each release cycle, and writes three allowlists:

  urls.txt         non-IP URLs without scheme or trailing slash
  ips.txt          IPv4 addresses, sorted numerically
  urls-pihole.txt  lowercased FQDNs for DNS sinkholes such as Pi-hole

Requests are sent one at a time with a fixed delay to respect the API's
rate limits.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
