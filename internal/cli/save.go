package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garnizeh/estimator/pkg/models"
)

// estimateFlags are the fields shared by save and update.
type estimateFlags struct {
	Client  string
	Project string
	Total   float64
	Items   []string
}

func (f *estimateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Client, "client", "", "client name (required)")
	cmd.Flags().StringVar(&f.Project, "project", "", "project name (required)")
	cmd.Flags().Float64Var(&f.Total, "total", 0, "total amount (defaults to the sum of item amounts)")
	cmd.Flags().StringArrayVar(&f.Items, "item", nil, `line item as "description:quantity:unit_price[:amount]" (repeatable)`)
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("project")
}

// build turns the flags into an aggregate. The amount of an item defaults to
// quantity times unit price; the total defaults to the sum of item amounts
// when --total was not given.
func (f *estimateFlags) build(cmd *cobra.Command) (*models.Estimate, error) {
	e := &models.Estimate{
		ClientName:  f.Client,
		ProjectName: f.Project,
		TotalAmount: f.Total,
	}

	var sum float64
	for _, spec := range f.Items {
		it, err := parseItemSpec(spec)
		if err != nil {
			return nil, err
		}
		e.Items = append(e.Items, it)
		sum += it.Amount
	}

	if !cmd.Flags().Changed("total") {
		e.TotalAmount = sum
	}

	return e, nil
}

func parseItemSpec(spec string) (models.EstimateItem, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return models.EstimateItem{}, fmt.Errorf("invalid item %q: want description:quantity:unit_price[:amount]", spec)
	}

	qty, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.EstimateItem{}, fmt.Errorf("invalid item %q: bad quantity %q", spec, parts[1])
	}
	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return models.EstimateItem{}, fmt.Errorf("invalid item %q: bad unit price %q", spec, parts[2])
	}

	amount := qty * price
	if len(parts) == 4 {
		amount, err = strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return models.EstimateItem{}, fmt.Errorf("invalid item %q: bad amount %q", spec, parts[3])
		}
	}

	return models.EstimateItem{
		Description: parts[0],
		Quantity:    qty,
		UnitPrice:   price,
		Amount:      amount,
	}, nil
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &estimateFlags{}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a new estimate",
		Long: `Save a new estimate with its line items.

Example:
  estimator save --client Acme --project Roof --item "Shingles:10:5.0"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.build(cmd)
			if err != nil {
				return err
			}

			repo, cleanup, err := openRepo(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := repo.SaveEstimate(cmd.Context(), e)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved estimate %d\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
