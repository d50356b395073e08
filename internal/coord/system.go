// Package coord implements genomic regions on linear and circular
// reference sequences, including the two-half decomposition used for
// every per-base operation against a circular reference.
package coord

import "fmt"

// System identifies a coordinate system: a named, versioned space of
// positions (e.g. chromosome-level GRCh38 vs contig-level).
type System struct {
	ID      int64  // storage identifier, 0 if not database-backed
	Name    string // e.g. "chromosome", "contig"
	Version string // assembly version, may be empty
	Rank    int    // 1 = top-level assembly
}

// Equal reports whether two coordinate system identities are the same
// space. Version is part of the identity; rank and ID are not.
func (s *System) Equal(o *System) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Name == o.Name && s.Version == o.Version
}

// String renders "name:version" or just "name" when unversioned.
func (s *System) String() string {
	if s == nil {
		return ""
	}
	if s.Version == "" {
		return s.Name
	}
	return fmt.Sprintf("%s:%s", s.Name, s.Version)
}
