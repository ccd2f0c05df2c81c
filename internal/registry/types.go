package registry

import (
	"encoding/json"
	"sort"
)

// SourceType tags where an installed package came from.
// Stored as a free string; values outside the known set are kept as-is.
type SourceType string

const (
	// SourceLocalPath is a package copied from the local filesystem.
	SourceLocalPath SourceType = "local_path"
	// SourceRemoteURL is a package downloaded from a URL.
	SourceRemoteURL SourceType = "remote_url"
	// SourceGitRepo is a package cloned from a git repository.
	SourceGitRepo SourceType = "git_repo"
)

// Known reports whether s is one of the recognized source types.
func (s SourceType) Known() bool {
	switch s {
	case SourceLocalPath, SourceRemoteURL, SourceGitRepo:
		return true
	default:
		return false
	}
}

// Record is one installed package. The package name is the registry key,
// not a field.
type Record struct {
	// Version is free-form; it is never parsed or compared.
	Version string `json:"version"`
	// InstalledAt is set by the producer and never parsed.
	InstalledAt string `json:"installed_at"`
	// SourceType is the origin kind (local_path, remote_url, git_repo).
	SourceType SourceType `json:"source_type"`
	// SourceValue locates the origin (path or URL).
	SourceValue string `json:"source_value"`
	// InstallPath is the destination path. It is not checked on disk.
	InstallPath string `json:"install_path"`

	// Extra holds fields written by other tools so a rewrite does not drop them.
	Extra map[string]json.RawMessage `json:"-"`
}

// recordFields are the keys decoded into Record's typed fields.
var recordFields = []string{"version", "installed_at", "source_type", "source_value", "install_path"}

type recordAlias Record

// UnmarshalJSON decodes the known fields and keeps any others in Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var known recordAlias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range recordFields {
		delete(all, k)
	}
	if len(all) == 0 {
		all = nil
	}

	*r = Record(known)
	r.Extra = all
	return nil
}

// MarshalJSON encodes the known fields followed by any preserved extras.
func (r Record) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(recordAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(r.Extra)+len(recordFields))
	for k, v := range r.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Registry maps package name to its installation record.
// Presence of a key means installed; absence means not installed.
type Registry map[string]Record

// Has reports whether name is installed.
func (r Registry) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Names returns the installed package names sorted alphabetically.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
