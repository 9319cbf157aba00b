package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"
)

var (
	serviceUrl  string
	logLevel    string
	chromePath  string
	scanTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "a11y-report",
	Short: "Accessibility report dashboard for the scan service",
	Long: `a11y-report asks the accessibility scan service to check a web page and
shows the violations it found together with an accessibility score and the
distribution of violations by impact.

Results can be exported to JSON, PDF and Markdown, and the HTML snippet of any
offending node can be copied to the clipboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)
		return nil
	},
}

func init() {
	defaultServiceUrl := os.Getenv("A11Y_SERVICE_URL")
	if defaultServiceUrl == "" {
		defaultServiceUrl = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVar(&serviceUrl, "server", defaultServiceUrl, "scan service base url")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&chromePath, "chrome-path", os.Getenv("CHROME_PATH"), "browser binary used for PDF export")
	rootCmd.PersistentFlags().DurationVar(&scanTimeout, "timeout", 0, "scan request timeout (0 waits without limit)")

	rootCmd.Version = "0.1.0"
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
