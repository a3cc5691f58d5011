package jobs

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// appendLines appends lines to path, creating the file if needed.
func appendLines(path string, lines ...string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// record appends lines and reports a failure on the process log.
func record(job, path string, lines ...string) {
	if err := appendLines(path, lines...); err != nil {
		log.Printf("Error: %s job could not write its log: %v", job, err)
	}
}
