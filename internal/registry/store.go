// Package registry owns the on-disk JSON ledger of installed packages.
//
// The whole file is the unit of read and write: Load parses the complete
// mapping and Save replaces it. There is no locking; two processes hooking the
// same name concurrently can both pass the Contains check and the later Save
// wins.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tinyhook/tinyhook/internal/debug"
)

// DefaultPath is the well-known registry location relative to the working directory.
const DefaultPath = "data/installed.json"

// emptyRegistry is written by Initialize.
var emptyRegistry = []byte("{}\n")

// Initialize creates path containing an empty mapping when no file exists.
// An existing file is never touched, whatever its contents.
func Initialize(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return NewRegistryError(IOError, path, "failed to create registry directory", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			debug.Debug("[registry] %s already exists, leaving it untouched", path)
			return nil
		}
		return NewRegistryError(IOError, path, "failed to create registry file", err)
	}

	if _, err := f.Write(emptyRegistry); err != nil {
		f.Close()
		return NewRegistryError(IOError, path, "failed to write empty registry", err)
	}
	if err := f.Close(); err != nil {
		return NewRegistryError(IOError, path, "failed to close registry file", err)
	}

	debug.Debug("[registry] initialized empty registry at %s", path)
	return nil
}

// Load reads and parses the registry at path.
// The returned Registry is never nil: on error it is empty and the error
// says why (NotFound, ParseError or IOError).
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Registry{}, NewRegistryError(NotFound, path, "registry file not found", err)
		}
		return Registry{}, NewRegistryError(IOError, path, "failed to read registry file", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Registry{}, NewRegistryError(ParseError, path, "registry file is empty", nil)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Registry{}, NewRegistryError(ParseError, path, "registry is not a JSON object", err)
		}
		return Registry{}, NewRegistryError(ParseError, path, "invalid JSON syntax", err)
	}
	// A bare `null` decodes without error but is not a mapping.
	if raw == nil {
		return Registry{}, NewRegistryError(ParseError, path, "registry is not a JSON object", nil)
	}

	reg := make(Registry, len(raw))
	for name, entry := range raw {
		rec, err := decodeRecord(entry)
		if err != nil {
			problem, cause := entryProblem(err)
			return Registry{}, NewRegistryError(ParseError, path, fmt.Sprintf("registry entry %q %s", name, problem), cause)
		}
		reg[name] = rec
	}

	debug.DebugValue("registry.entries", len(reg))
	return reg, nil
}

// errNotObject marks a registry entry that is not a JSON object.
var errNotObject = errors.New("entry is not a JSON object")

func decodeRecord(entry json.RawMessage) (Record, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(entry), []byte("{")) {
		return Record{}, errNotObject
	}
	var rec Record
	if err := json.Unmarshal(entry, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// entryProblem describes why an entry failed to decode and returns the
// cause worth reporting.
func entryProblem(err error) (string, error) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, errNotObject):
		return "is not a JSON object", nil
	case errors.As(err, &typeErr):
		return "has a non-string field", err
	default:
		return "is malformed", err
	}
}

// Save serializes reg as indented JSON and replaces the file at path.
// The write goes through a temp file and rename so a failed write leaves the
// previous contents in place. Failures are returned, never retried.
func Save(reg Registry, path string) error {
	if reg == nil {
		reg = Registry{}
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return NewRegistryError(IOError, path, "failed to marshal registry", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return NewRegistryError(IOError, path, "failed to create registry directory", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return NewRegistryError(IOError, path, "failed to write registry", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return NewRegistryError(IOError, path, "failed to replace registry", err)
	}

	debug.Debug("[registry] saved %d entries to %s", len(reg), path)
	return nil
}

// Store binds the registry operations to one well-known path.
type Store struct {
	path string
}

// NewStore creates a Store for the registry at path.
// An empty path selects DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the registry file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates the registry file if it does not exist.
func (s *Store) Initialize() error {
	return Initialize(s.path)
}

// Load reads the registry.
func (s *Store) Load() (Registry, error) {
	return Load(s.path)
}

// Save replaces the registry file with reg.
func (s *Store) Save(reg Registry) error {
	return Save(reg, s.path)
}

// Contains reports whether name is installed.
// A missing or unreadable registry counts as not installed; the cause is only
// visible in debug output.
func (s *Store) Contains(name string) bool {
	reg, err := s.Load()
	if err != nil {
		debug.Debug("[registry] contains(%q): treating registry as empty: %v", name, err)
		return false
	}
	return reg.Has(name)
}
