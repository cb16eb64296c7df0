package compare

import (
	"encoding/json"
	"fmt"
	"io"
)

type summaryOnlyJSON struct {
	Summary Summary `json:"summary"`
}

// RenderJSON writes the result as indented JSON. Change order is kept as
// discovered, so identical inputs always produce identical bytes.
func RenderJSON(out io.Writer, result Result, summaryOnly bool) error {
	var payload any
	if summaryOnly {
		payload = summaryOnlyJSON{Summary: result.Summary}
	} else {
		payload = normalizeForJSON(result)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal compare JSON: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write compare JSON: %w", err)
	}
	return nil
}

func normalizeForJSON(result Result) Result {
	normalized := result
	if normalized.Changes == nil {
		normalized.Changes = []Change{}
	}
	if normalized.BreakingChanges == nil {
		normalized.BreakingChanges = []BreakingChange{}
	}
	return normalized
}
