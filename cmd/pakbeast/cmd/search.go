package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchExts []string

var searchCmd = &cobra.Command{
	Use:   "search <archive> <keyword>...",
	Short: "Search script entities inside an archive",
	Long: `Search every script file in the archive for entities whose name,
value, or surrounding context matches all keywords. Matching is
case-insensitive and treats underscores as spaces.

Examples:
  pakbeast search data0.pak shovel damage
  pakbeast search data0.pak capacity --ext .scr`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		result, err := application.Search(ctx, args[0], args[1:], searchExts)
		if err != nil {
			return err
		}

		if len(result.Hits) == 0 {
			fmt.Println("No results found")
		}
		for _, h := range result.Hits {
			line := fmt.Sprintf("[%s] %s", h.Kind, h.Address)
			if h.Value != "" {
				line += " = " + h.Value
			}
			if h.Context != "" {
				line += "  (" + h.Context + ")"
			}
			fmt.Println(line)
		}
		if len(result.Skipped) > 0 {
			fmt.Printf("skipped %d unreadable entries\n", len(result.Skipped))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchExts, "ext", "e", nil, "entry extensions to search (defaults to the known script formats)")
	rootCmd.AddCommand(searchCmd)
}
