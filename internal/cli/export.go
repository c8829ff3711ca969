package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garnizeh/estimator/internal/exchange"
)

// fileType resolves the exchange format from an explicit flag or, when the
// flag is empty, from the file extension.
func fileType(explicit, path string) (string, error) {
	t := explicit
	if t == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			t = "csv"
		case ".json":
			t = "json"
		default:
			return "", fmt.Errorf("cannot tell the file type of %q: pass --type csv|json", path)
		}
	}
	if t != "csv" && t != "json" {
		return "", fmt.Errorf("invalid type %q: must be csv or json", t)
	}
	return t, nil
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:           "export <file>",
		Short:         "Write all estimates to a CSV or JSON file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			t, err := fileType(typeFlag, path)
			if err != nil {
				return err
			}

			repo, cleanup, err := openRepo(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			estimates, err := repo.ListEstimates(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer
			if path == "-" {
				w = cmd.OutOrStdout()
			} else {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if t == "csv" {
				err = exchange.ExportCSV(w, estimates)
			} else {
				err = exchange.ExportJSON(w, estimates)
			}
			if err != nil {
				return err
			}

			if path != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d estimates\n", len(estimates))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "file type, csv or json (default: by extension)")
	return cmd
}
