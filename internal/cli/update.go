package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &estimateFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite an estimate and replace all of its items",
		Long: `Rewrite an estimate's header and replace its entire item set.

The items given here fully replace the stored ones; there is no way to add
or remove a single item in place.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			e, err := flags.build(cmd)
			if err != nil {
				return err
			}
			e.ID = id

			repo, cleanup, err := openRepo(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := repo.UpdateEstimate(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated estimate %d\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
