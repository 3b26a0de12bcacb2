package cmd

import (
	"fmt"
	"os"

	"github.com/southpawriter02/rune-rust-sub041/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rune-rust",
	Short: "Rune & Rust rules service",
	Long: `Serves the Rune & Rust rules catalogs (attributes, archetypes, backgrounds,
lineages, specializations and realms) from embedded defaults, a local directory,
an object storage bucket or a SQL table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level gives ISO8601 timestamps on the console encoder.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
