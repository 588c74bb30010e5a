package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"docquery/internal/core"
)

// FileLedger persists ingested document locators as a JSON array on disk.
// Every check re-reads the file and every record rewrites it, so the file
// stays the source of truth across restarts. A mutex serializes access
// because the read-modify-write cycle is not atomic on its own.
type FileLedger struct {
	mu   sync.Mutex
	path string
}

var _ core.Ledger = (*FileLedger)(nil)

func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Contains reports whether the locator was already recorded.
func (l *FileLedger) Contains(locator string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	locators, err := l.load()
	if err != nil {
		return false, err
	}
	return slices.Contains(locators, locator), nil
}

// Record appends the locator and rewrites the ledger file. Recording an
// already-known locator is a no-op.
func (l *FileLedger) Record(locator string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	locators, err := l.load()
	if err != nil {
		return err
	}
	if slices.Contains(locators, locator) {
		return nil
	}
	locators = append(locators, locator)

	data, err := json.MarshalIndent(locators, "", "    ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// load reads the full ledger. A missing file means an empty ledger.
func (l *FileLedger) load() ([]string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var locators []string
	if err := json.Unmarshal(data, &locators); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", l.path, err)
	}
	return locators, nil
}
