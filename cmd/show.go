package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var dumpFlag bool

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <family> <id>",
	Short: "Print one rules entry",
	Long:  `Looks up one entry, e.g. "show realms Midgard", and prints it as JSON, or as a Go value dump with --dump.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		reg := registry.New(e.source, e.logger)

		entry, found, err := reg.Find(args[0], args[1])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s %q not found", args[0], args[1])
		}

		out := cmd.OutOrStdout()
		if dumpFlag {
			spew.Fdump(out, entry)
			return nil
		}
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&dumpFlag, "dump", false, "Dump the Go value instead of JSON")
}
