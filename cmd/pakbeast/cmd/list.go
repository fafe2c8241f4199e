package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List archive entries",
	Long: `List every entry in the archive with its decoded size.

Examples:
  pakbeast list data0.pak`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		arc, err := application.OpenArchive(ctx, args[0])
		if err != nil {
			return err
		}

		var total uint64
		for _, e := range arc.Entries() {
			fmt.Printf("%10d  %s\n", e.Size(), e.Name())
			total += e.Size()
		}
		fmt.Printf("%10d  total in %d entries\n", total, arc.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
