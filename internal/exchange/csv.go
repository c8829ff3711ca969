package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/garnizeh/estimator/pkg/models"
)

// csvHeader is the fixed column layout: one row per line item, with the
// header fields repeated and a 1-based estimate sequence number to group
// rows back into aggregates on import.
var csvHeader = []string{"estimate", "client_name", "project_name", "total_amount", "description", "quantity", "unit_price", "amount"}

// ExportCSV writes one row per item. An estimate without items still gets
// one row, with the item columns left empty.
func ExportCSV(w io.Writer, estimates []models.Estimate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	for i, e := range estimates {
		seq := strconv.Itoa(i + 1)
		base := []string{seq, e.ClientName, e.ProjectName, formatFloat(e.TotalAmount)}
		if len(e.Items) == 0 {
			if err := cw.Write(append(base, "", "", "", "")); err != nil {
				return fmt.Errorf("export csv: %w", err)
			}
			continue
		}
		for _, it := range e.Items {
			row := append(base[:4:4], it.Description, formatFloat(it.Quantity), formatFloat(it.UnitPrice), formatFloat(it.Amount))
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("export csv: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// ImportCSV reads rows written by ExportCSV and groups them back into
// estimates by the sequence column, in order of first appearance.
func ImportCSV(r io.Reader) ([]models.Estimate, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected csv header: %v", header)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected csv header: %v", header)
		}
	}

	var out []models.Estimate
	index := map[string]int{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		seq := row[0]
		pos, ok := index[seq]
		if !ok {
			total, err := parseFloat(row[3], "total_amount", line)
			if err != nil {
				return nil, err
			}
			out = append(out, models.Estimate{
				ClientName:  row[1],
				ProjectName: row[2],
				TotalAmount: total,
			})
			pos = len(out) - 1
			index[seq] = pos
		}

		// all four item columns empty means a header-only row
		if row[4] == "" && row[5] == "" && row[6] == "" && row[7] == "" {
			continue
		}

		qty, err := parseFloat(row[5], "quantity", line)
		if err != nil {
			return nil, err
		}
		price, err := parseFloat(row[6], "unit_price", line)
		if err != nil {
			return nil, err
		}
		amount, err := parseFloat(row[7], "amount", line)
		if err != nil {
			return nil, err
		}
		out[pos].Items = append(out[pos].Items, models.EstimateItem{
			Description: row[4],
			Quantity:    qty,
			UnitPrice:   price,
			Amount:      amount,
		})
	}

	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s, col string, line int) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("csv line %d: bad %s %q: %w", line, col, s, err)
	}
	return v, nil
}
