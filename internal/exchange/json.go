// Package exchange moves estimates between the data model and flat files.
// It is a file-format adapter only: imported estimates carry no id or
// timestamps, and persisting them is the caller's job.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/estimator/pkg/models"
)

// documentSchema is what an inbound JSON document must look like. Amounts
// are validated for type only, never cross-checked against quantity times
// unit price.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["client_name", "project_name", "total_amount", "items"],
    "properties": {
      "client_name": {"type": "string", "minLength": 1},
      "project_name": {"type": "string", "minLength": 1},
      "total_amount": {"type": "number"},
      "items": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["description", "quantity", "unit_price", "amount"],
          "properties": {
            "description": {"type": "string"},
            "quantity": {"type": "number"},
            "unit_price": {"type": "number"},
            "amount": {"type": "number"}
          }
        }
      }
    }
  }
}`

// ExportJSON writes the estimates as one indented JSON document.
func ExportJSON(w io.Writer, estimates []models.Estimate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(estimates); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ImportJSON validates the document against the embedded schema and decodes
// it. Ids and timestamps present in the document are discarded; the store
// assigns its own on save.
func ImportJSON(ctx context.Context, r io.Reader) ([]models.Estimate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(documentSchema), rs); err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}

	verrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for i, v := range verrs {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(v.Message)
		}
		return nil, fmt.Errorf("invalid document: %s", sb.String())
	}

	var estimates []models.Estimate
	if err := json.Unmarshal(data, &estimates); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	for i := range estimates {
		estimates[i].ID = 0
		estimates[i].CreatedAt = ""
		estimates[i].UpdatedAt = ""
	}

	return estimates, nil
}
