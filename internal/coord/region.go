package coord

import (
	"errors"
	"fmt"
)

// ErrAttachedSequence is returned by operations that would resize a
// region carrying a literal attached sequence; the sequence would no
// longer describe the resized interval.
var ErrAttachedSequence = errors.New("region has an attached sequence")

// Region is an immutable, 1-based inclusive interval [Start, End] on a
// named reference sequence. On a circular reference Start > End is a
// legal state meaning the interval crosses the origin (wraps from near
// the reference end back through position 1).
//
// All transforming operations return a new Region; an instance is never
// mutated after construction, apart from the instance-local circular
// topology memo.
type Region struct {
	name   string
	length int64 // total reference length
	start  int64
	end    int64
	strand int
	system *System

	circular bool   // reference declared circular at construction
	seq      string // literal attached sequence, "" = none
	src      *Source

	// circular-attribute memo, loaded once per instance
	attrKnown bool
	attrVal   bool
}

// Config carries the construction parameters for a Region.
// Strand defaults to +1 and Length to End when unset.
type Config struct {
	Name     string
	Start    int64
	End      int64
	Strand   int
	Length   int64 // total reference length
	System   *System
	Circular bool   // reference wraps at Length
	Sequence string // literal attached sequence instead of a fetched one
	Source   *Source
}

// New validates cfg and constructs a Region.
func New(cfg Config) (*Region, error) {
	if cfg.Name == "" {
		return nil, errors.New("region: reference name is required")
	}
	strand := cfg.Strand
	if strand == 0 {
		strand = 1
	}
	if strand != 1 && strand != -1 {
		return nil, fmt.Errorf("region: strand must be +1 or -1, got %d", cfg.Strand)
	}
	length := cfg.Length
	if length == 0 {
		length = cfg.End
	}
	if length <= 0 {
		return nil, fmt.Errorf("region: reference length must be positive, got %d", length)
	}
	// On a linear reference Start may exceed End only by one, the
	// zero-length insertion point between two adjacent bases.
	if !cfg.Circular && cfg.Start > cfg.End+1 {
		return nil, fmt.Errorf("region: start %d > end %d on a linear reference", cfg.Start, cfg.End)
	}
	return &Region{
		name:     cfg.Name,
		length:   length,
		start:    cfg.Start,
		end:      cfg.End,
		strand:   strand,
		system:   cfg.System,
		circular: cfg.Circular,
		seq:      cfg.Sequence,
		src:      cfg.Source,
	}, nil
}

// Name returns the reference sequence name.
func (r *Region) Name() string { return r.name }

// Start returns the 1-based inclusive start position.
func (r *Region) Start() int64 { return r.start }

// End returns the 1-based inclusive end position.
func (r *Region) End() int64 { return r.end }

// Strand returns +1 or -1.
func (r *Region) Strand() int { return r.strand }

// ReferenceLength returns the total length of the reference sequence.
func (r *Region) ReferenceLength() int64 { return r.length }

// System returns the coordinate system identity, or nil if detached.
func (r *Region) System() *System { return r.system }

// Source returns the collaborator bundle, or nil if detached.
func (r *Region) Source() *Source { return r.src }

// HasAttachedSequence reports whether a literal sequence was attached
// at construction.
func (r *Region) HasAttachedSequence() bool { return r.seq != "" }

// IsWrapped reports whether the interval crosses the reference origin.
func (r *Region) IsWrapped() bool { return r.circular && r.start > r.end }

// IsInsertionPoint reports whether the interval is the zero-length
// point between two adjacent bases.
func (r *Region) IsInsertionPoint() bool { return r.start == r.end+1 }

// Length returns the number of bases covered by the interval. A
// wrapping interval measures the run from start to the reference end
// plus the run from the origin to end.
func (r *Region) Length() int64 {
	if r.IsWrapped() {
		return (r.length - r.start) + r.end + 1
	}
	return r.end - r.start + 1
}

// Midpoint returns the centre of the interval, possibly at a half-base
// boundary. For a wrapping interval the midpoint is computed on the
// circle and folded back into [1, reference length].
func (r *Region) Midpoint() float64 {
	if r.IsWrapped() {
		mid := float64(r.start) + (float64(r.length-r.start)+float64(r.end))/2
		if mid > float64(r.length) {
			mid -= float64(r.length)
		}
		return mid
	}
	return float64(r.start+r.end) / 2
}

// String renders the region as name:start-end:strand, prefixed by the
// coordinate system when one is attached.
func (r *Region) String() string {
	base := fmt.Sprintf("%s:%d-%d:%d", r.name, r.start, r.end, r.strand)
	if r.system != nil {
		return r.system.String() + ":" + base
	}
	return base
}

// derive builds a new Region from r with a different interval. The
// attached sequence never survives a derivation: it described the old
// interval. The circular-attribute memo carries over because it is a
// property of the reference, not the interval.
func (r *Region) derive(start, end int64, strand int) *Region {
	nr := *r
	nr.start = start
	nr.end = end
	nr.strand = strand
	nr.seq = ""
	return &nr
}

// Expand returns a new Region grown (or shrunk, for negative deltas) by
// the given number of basepairs on each side. The deltas are biological
// directions: on strand -1 the five-prime delta moves the numeric end
// and the three-prime delta the numeric start.
//
// No floor is enforced: deltas that invert the interval past the
// insertion-point state produce a degenerate region the caller is
// responsible for avoiding. On a circular reference coordinates that
// leave [1, reference length] wrap around the origin.
func (r *Region) Expand(fivePrime, threePrime int64) (*Region, error) {
	if r.seq != "" {
		return nil, fmt.Errorf("expand %s: %w", r.name, ErrAttachedSequence)
	}
	var newStart, newEnd int64
	if r.strand == 1 {
		newStart = r.start - fivePrime
		newEnd = r.end + threePrime
	} else {
		newStart = r.start - threePrime
		newEnd = r.end + fivePrime
	}
	if r.circular {
		if newStart <= 0 {
			newStart += r.length
		}
		if newEnd > r.length {
			newEnd -= r.length
		}
	}
	return r.derive(newStart, newEnd, r.strand), nil
}

// SubRegion returns a new Region restricted to the window
// [relStart, relEnd] of this region's own 1-based numbering, oriented
// by strand relative to this region (the absolute strand is the product
// of both). A window outside [1, Length()] is not a fault: it returns
// (nil, nil), distinguishable from any valid region.
func (r *Region) SubRegion(relStart, relEnd int64, strand int) (*Region, error) {
	if strand != 1 && strand != -1 {
		return nil, fmt.Errorf("sub-region %s: strand must be +1 or -1, got %d", r.name, strand)
	}
	if relStart < 1 || relStart > r.Length() || relEnd < relStart || relEnd > r.Length() {
		return nil, nil
	}
	absStart, absEnd := r.relToAbs(relStart, relEnd)
	return r.derive(absStart, absEnd, r.strand*strand), nil
}

// WholeReferenceView returns a new Region spanning the entire reference
// [1, reference length] on strand +1.
func (r *Region) WholeReferenceView() (*Region, error) {
	if r.seq != "" {
		return nil, fmt.Errorf("whole-reference view of %s: %w", r.name, ErrAttachedSequence)
	}
	return r.derive(1, r.length, 1), nil
}

// ClipToReference returns a copy of the region clamped to
// [1, reference length], with ok=false when the interval lies entirely
// outside the reference. A wrapping interval is already within the
// reference by definition and is returned unclipped.
func (r *Region) ClipToReference() (*Region, bool) {
	if r.IsWrapped() {
		return r, true
	}
	start, end := r.start, r.end
	if start < 1 {
		start = 1
	}
	if end > r.length {
		end = r.length
	}
	if start > end {
		return nil, false
	}
	if start == r.start && end == r.end {
		return r, true
	}
	return r.derive(start, end, r.strand), true
}

// relToAbs maps a window of the region's own numbering to absolute
// reference coordinates, honouring the region's orientation. On a
// circular reference the result is folded into [1, reference length],
// so the absolute window may itself wrap (absStart > absEnd).
func (r *Region) relToAbs(relStart, relEnd int64) (int64, int64) {
	var absStart, absEnd int64
	if r.strand == 1 {
		absStart = r.start + relStart - 1
		absEnd = r.start + relEnd - 1
	} else {
		absStart = r.end - relEnd + 1
		absEnd = r.end - relStart + 1
	}
	if r.circular {
		absStart = r.foldPosition(absStart)
		absEnd = r.foldPosition(absEnd)
	}
	return absStart, absEnd
}

// foldPosition brings a position onto the circle, into [1, length].
func (r *Region) foldPosition(pos int64) int64 {
	for pos > r.length {
		pos -= r.length
	}
	for pos < 1 {
		pos += r.length
	}
	return pos
}

// IsCircularTopology reports whether the reference sequence carries the
// "circular" annotation in the attribute store. The answer is loaded at
// most once per instance and memoized; a change to the underlying
// attribute during the lifetime of the instance goes unnoticed. With no
// attribute store attached the construction-time topology is reported.
func (r *Region) IsCircularTopology() bool {
	if !r.attrKnown {
		r.attrVal = r.lookupCircular()
		r.attrKnown = true
	}
	return r.attrVal
}

func (r *Region) lookupCircular() bool {
	if !r.src.hasAttributes() {
		return r.circular
	}
	attrs, err := r.src.Attributes.Attributes(r.name, "circular")
	if err != nil {
		return r.circular
	}
	for _, a := range attrs {
		if a.Code == "circular" && a.Value != "" && a.Value != "0" {
			return true
		}
	}
	return false
}
