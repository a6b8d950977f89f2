package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store persists the whole account database as a single JSON document. Every
// purchase field is serialized as computed, including the derived fees and
// billing cycle, so a later change to the fee tables never rewrites history
// on load.
type Store struct {
	Path string
}

// NewStore returns a store backed by the file at path. The file does not need
// to exist yet.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// storeFile is the on-disk shape. Accounts are kept as a list sorted by
// username so saves are deterministic and diffs stay readable.
type storeFile struct {
	Accounts []*Account `json:"accounts"`
}

// Load reads the account database, keyed by username. A missing file is not
// an error; it yields an empty database.
func (s *Store) Load() (map[string]*Account, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*Account{}, nil
		}
		return nil, fmt.Errorf("reading account data: %w", err)
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing account data: %w", err)
	}

	accounts := make(map[string]*Account, len(f.Accounts))
	for _, a := range f.Accounts {
		if a.Log == nil {
			a.Log = NewPurchaseLog()
		}
		accounts[a.Username] = a
	}
	return accounts, nil
}

// Save writes the account database atomically: the document is written to a
// temp file in the same directory and renamed over the target, so a crash
// mid-write cannot leave a truncated database behind.
func (s *Store) Save(accounts map[string]*Account) error {
	f := storeFile{Accounts: make([]*Account, 0, len(accounts))}
	for _, a := range accounts {
		f.Accounts = append(f.Accounts, a)
	}
	sort.Slice(f.Accounts, func(i, j int) bool {
		return f.Accounts[i].Username < f.Accounts[j].Username
	})

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling account data: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing account data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing account data: %w", err)
	}
	return nil
}
