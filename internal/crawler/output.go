package crawler

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteResults writes scraped page records as a JSON array compatible
// with the scraped-data import.
func WriteResults(path string, records []PageRecord) error {
	if records == nil {
		records = []PageRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
