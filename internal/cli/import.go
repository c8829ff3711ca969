package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garnizeh/estimator/internal/exchange"
	"github.com/garnizeh/estimator/pkg/models"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:           "import <file>",
		Short:         "Read estimates from a CSV or JSON file and save them",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			t, err := fileType(typeFlag, path)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			var estimates []models.Estimate
			if t == "csv" {
				estimates, err = exchange.ImportCSV(f)
			} else {
				estimates, err = exchange.ImportJSON(cmd.Context(), f)
			}
			if err != nil {
				return err
			}

			repo, cleanup, err := openRepo(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			for i := range estimates {
				id, err := repo.SaveEstimate(cmd.Context(), &estimates[i])
				if err != nil {
					return fmt.Errorf("save imported estimate %d of %d: %w", i+1, len(estimates), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved estimate %d\n", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d estimates\n", len(estimates))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "file type, csv or json (default: by extension)")
	return cmd
}
