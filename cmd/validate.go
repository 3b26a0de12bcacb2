package cmd

import (
	"fmt"
	"os"

	"github.com/southpawriter02/rune-rust-sub041/feature/integrity/checks"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every rules catalog against the configured source",
	Long:  `Loads each catalog once and prints one line per family. Exits 1 if any family fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		reg := registry.New(e.source, e.logger)
		reports := checks.CheckCatalogs(reg.Loaders())

		out := cmd.OutOrStdout()
		for _, r := range reports {
			if r.OK() {
				fmt.Fprintf(out, "%-16s ok (%d warnings)\n", r.Family, r.Warnings)
				continue
			}
			fmt.Fprintf(out, "%-16s %s: %s\n", r.Family, r.Kind, r.Error)
			for _, v := range r.Violations {
				fmt.Fprintf(out, "  %s\n", v)
			}
		}
		if !checks.Healthy(reports) {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
