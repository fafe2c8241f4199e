package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PakBeast/PakBeast/internal/diff"
	"github.com/PakBeast/PakBeast/internal/project"
	"github.com/PakBeast/PakBeast/internal/script"
)

var (
	diffJSON    bool
	diffProject string
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-archive> <new-archive>",
	Short: "Compare two archives",
	Long: `Compare two archives entry by entry. Script entries are compared as
parsed entities, so formatting-only differences are ignored; other
entries are compared byte-for-byte.

Examples:
  pakbeast diff data0.pak data0_patched.pak
  pakbeast diff data0.pak data0_patched.pak --json
  pakbeast diff data0.pak data0_patched.pak --emit-project patch.hcl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		report, err := application.Diff(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		if diffProject != "" {
			f := &project.File{
				Name:   fmt.Sprintf("changes from %s to %s", filepath.Base(args[0]), filepath.Base(args[1])),
				Source: args[0],
				Edits:  report.Edits(),
			}
			if err := os.WriteFile(diffProject, project.Render(f), 0o644); err != nil {
				return fmt.Errorf("failed to write project %s: %w", diffProject, err)
			}
			fmt.Printf("wrote %s with %d edits\n", diffProject, len(f.Edits))
			return nil
		}

		if diffJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		for _, fd := range report.Files {
			fmt.Printf("%s %s\n", fd.Kind, fd.Path)
			for _, rec := range fd.Records {
				switch rec.Kind {
				case diff.Modified:
					fmt.Printf("  ~ %s: %s -> %s\n", rec.Address.PathString(), joinValues(rec.Old), joinValues(rec.New))
				case diff.Removed:
					fmt.Printf("  - %s\n", rec.Address.PathString())
				case diff.Added:
					line := fmt.Sprintf("  + %s", rec.Address.PathString())
					if len(rec.New) > 0 {
						line += " = " + joinValues(rec.New)
					}
					fmt.Println(line)
				}
			}
		}
		fmt.Printf("%d entries unchanged\n", report.Unchanged)
		return nil
	},
}

func joinValues(values []script.Literal) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Raw
	}
	return strings.Join(parts, ", ")
}

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "emit the report as JSON")
	diffCmd.Flags().StringVar(&diffProject, "emit-project", "", "write the differences as a project file")
	rootCmd.AddCommand(diffCmd)
}
