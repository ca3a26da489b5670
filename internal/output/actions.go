package output

import (
	"fmt"
	"os"
	"sort"
)

// WriteActionOutputs appends key=value pairs to the file named by
// GITHUB_OUTPUT. Outside of GitHub Actions (no GITHUB_OUTPUT set) the
// pairs are printed to stdout instead so local runs stay inspectable.
func WriteActionOutputs(outputs map[string]string) error {
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, outputs[k])
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()

	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", k, outputs[k]); err != nil {
			return fmt.Errorf("failed to write output %s: %w", k, err)
		}
	}
	return nil
}
