package coord

// SequenceStore fetches reference sequence for a 1-based inclusive
// interval on a named sequence. Strand -1 returns the reverse
// complement.
type SequenceStore interface {
	Fetch(name string, start, end int64, strand int) (string, error)
}

// Attribute is a (code, value) annotation on a reference sequence.
type Attribute struct {
	Code  string
	Value string
}

// AttributeStore fetches annotations for a named reference sequence,
// optionally filtered to the given codes.
type AttributeStore interface {
	Attributes(name string, codes ...string) ([]Attribute, error)
}

// Source bundles the external collaborators a region delegates to.
// A region holds at most one Source and does not own it; a nil Source
// (or a nil store inside it) means the region is detached and the
// operation falls back to padding or defaults.
type Source struct {
	Sequences  SequenceStore
	Attributes AttributeStore
}

// hasSequences reports whether delegated sequence fetches are possible.
func (s *Source) hasSequences() bool {
	return s != nil && s.Sequences != nil
}

// hasAttributes reports whether attribute lookups are possible.
func (s *Source) hasAttributes() bool {
	return s != nil && s.Attributes != nil
}
