package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var extractOut string

var extractCmd = &cobra.Command{
	Use:   "extract <archive> [entry...]",
	Short: "Extract entries to a directory",
	Long: `Extract entries from the archive into a directory, recreating the
entry paths below it. Without entry arguments the whole archive is
extracted.

Examples:
  pakbeast extract data0.pak
  pakbeast extract data0.pak scripts/inventory/weapons.scr -o work`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		written, err := application.Extract(ctx, args[0], args[1:], extractOut)
		if err != nil {
			return err
		}
		fmt.Printf("extracted %d files to %s\n", written, extractOut)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", ".", "destination directory")
	rootCmd.AddCommand(extractCmd)
}
