package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return err
	}

	return nil
}
