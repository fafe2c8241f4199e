package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	buildProject string
	buildOut     string
)

var buildCmd = &cobra.Command{
	Use:   "build <archive>",
	Short: "Apply a project and rebuild the archive",
	Long: `Apply the edits of a project file to the archive and write the
rebuilt archive. Entries the project never touches are carried over
byte-for-byte.

Examples:
  pakbeast build data0.pak --project balance.hcl
  pakbeast build data0.pak -p mods/ -o data0_modded.pak`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildProject == "" {
			return errors.New("--project is required")
		}
		ctx := context.Background()

		out := buildOut
		if out == "" {
			ext := filepath.Ext(args[0])
			out = strings.TrimSuffix(args[0], ext) + "_modded" + ext
		}

		applied, err := application.Build(ctx, args[0], buildProject, out)
		if err != nil {
			return err
		}
		fmt.Printf("applied %d edits, wrote %s\n", applied, out)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildProject, "project", "p", "", "project file or directory of project files")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output archive path (defaults next to the input)")
	rootCmd.AddCommand(buildCmd)
}
