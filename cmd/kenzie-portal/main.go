// kenzie-portal serves the Kenzie customer portal: phone-number login,
// XP levels, a leaderboard and the admin sync endpoint.
//
// Usage:
//
//	kenzie-portal serve [--config file] [--port n] [--seed-file file] [--verbose]
//	kenzie-portal levels
//	kenzie-portal version
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kenzie-cloud/portal/internal/loyalty"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "kenzie-portal",
	Short:         "Kenzie loyalty customer portal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the reward tiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LEVEL\tNAME\tXP REQUIRED\tREWARD")
		for _, l := range loyalty.Levels() {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", l.Level, l.Name, l.XPRequired, l.Reward)
		}
		return tw.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kenzie-portal %s\n", version)
	},
}

func init() {
	addServeFlags(rootCmd)
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd, levelsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
