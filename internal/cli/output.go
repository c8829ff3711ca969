package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/garnizeh/estimator/pkg/models"
)

func printEstimates(w io.Writer, format string, estimates []models.Estimate) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(estimates)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tPROJECT\tTOTAL\tITEMS\tUPDATED")
	for _, e := range estimates {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\t%s\n", e.ID, e.ClientName, e.ProjectName, e.TotalAmount, len(e.Items), e.UpdatedAt)
	}
	return tw.Flush()
}

func printEstimate(w io.Writer, format string, e *models.Estimate) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}

	fmt.Fprintf(w, "Estimate %d: %s / %s (total %.2f)\n", e.ID, e.ClientName, e.ProjectName, e.TotalAmount)
	fmt.Fprintf(w, "created %s, updated %s\n", e.CreatedAt, e.UpdatedAt)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESCRIPTION\tQTY\tUNIT PRICE\tAMOUNT")
	for _, it := range e.Items {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", it.Description, it.Quantity, it.UnitPrice, it.Amount)
	}
	return tw.Flush()
}
