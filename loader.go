package billing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadEvents reads the event log at path. A missing file is an empty history,
// not an error: the first command simply starts a new log.
func LoadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open event log %q: %w", path, err)
	}
	defer f.Close()

	events, err := DecodeEvents(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode event log %q: %w", path, err)
	}
	return events, nil
}

// SaveEvents persists the whole event log to path in the canonical JSONL
// format. The log is written to a sibling temporary file first and moved into
// place with a rename, so a crash mid-write never truncates the existing log.
func SaveEvents(path string, events []Event) error {
	tmp := path + ".updated"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", tmp, err)
	}

	if err := EncodeEvents(f, events); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not encode event log: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not close %q: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace event log %q: %w", path, err)
	}
	return nil
}
