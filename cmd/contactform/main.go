// cmd/contactform/main.go
//
// Contact form entry point.
//
// Commands
// --------
//
//	contactform serve    – HTTP front-end on http.listen_addr
//	contactform tui      – terminal front-end on the current TTY
//	contactform version  – build information
//
// Every command shares the --config flag; without it config.Load looks for
// conf/contactform.yaml and falls back to compiled-in defaults.
package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/yanizio/contactform/components/contact" // registers the contact component
)

// version is stamped at build time with -ldflags "-X main.version=…".
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "contactform",
	Short: "Contact form with live validation, served over HTTP or in the terminal",
	Long: `contactform renders a four-field contact form (first name, last name,
email, message), validates it while the user types, and echoes the values
back after a clean submit.

Run it as a web page with "serve" or interactively with "tui".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, tuiCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
