package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List all estimates, most recently updated first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := openRepo(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			estimates, err := repo.ListEstimates(cmd.Context())
			if err != nil {
				return err
			}

			return printEstimates(cmd.OutOrStdout(), rootOpts.Format, estimates)
		},
	}

	return cmd
}
