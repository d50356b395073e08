// Package feature provides in-memory overlap queries for annotated
// features on reference sequences, backed by an interval tree per
// reference.
package feature

import (
	"fmt"
	"math"

	"github.com/biogo/store/interval"

	"github.com/swingingsimian/ensembl/internal/coord"
)

// Feature is one annotated interval, 1-based inclusive on its
// reference.
type Feature struct {
	ID     string
	Name   string
	Start  int64
	End    int64
	Strand int
}

// intInterval adapts a Feature to the half-open integer intervals of
// biogo's interval tree.
type intInterval struct {
	start, end int
	uid        uintptr
	feat       Feature
}

func (i intInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.end > b.Start && i.start < b.End
}

func (i intInterval) ID() uintptr { return i.uid }

func (i intInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.start, End: i.end}
}

// Store indexes features by reference name for overlap queries against
// regions, including wrapping regions on circular references.
type Store struct {
	trees  map[string]*interval.IntTree
	serial uintptr
	dirty  map[string]bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		trees: make(map[string]*interval.IntTree),
		dirty: make(map[string]bool),
	}
}

// Add indexes a feature on the named reference. Coordinates must fit
// in the tree's int key space, so references longer than math.MaxInt32
// cannot be indexed on 32-bit platforms.
func (s *Store) Add(reference string, f Feature) error {
	if f.Start < math.MinInt || f.End > math.MaxInt-1 {
		return fmt.Errorf("index feature %s on %s: coordinates %d-%d exceed tree key range",
			f.ID, reference, f.Start, f.End)
	}
	tree, ok := s.trees[reference]
	if !ok {
		tree = &interval.IntTree{}
		s.trees[reference] = tree
	}
	iv := intInterval{
		// Convert 1-based inclusive to half-open.
		start: int(f.Start),
		end:   int(f.End) + 1,
		uid:   s.serial,
		feat:  f,
	}
	s.serial++
	if err := tree.Insert(iv, true); err != nil {
		return fmt.Errorf("index feature %s on %s: %w", f.ID, reference, err)
	}
	s.dirty[reference] = true
	return nil
}

// FetchOverlapping returns the features overlapping the region, in
// query order. The region is decomposed into its two halves and both
// are queried; for a wrapping region the halves are the two arcs
// around the origin, for a non-wrapping region the over-covering
// portions of the halves are filtered back out against the parent
// interval. Features reached through both halves appear once.
func (s *Store) FetchOverlapping(r *coord.Region) []Feature {
	tree, ok := s.trees[r.Name()]
	if !ok {
		return nil
	}
	if s.dirty[r.Name()] {
		tree.AdjustRanges()
		s.dirty[r.Name()] = false
	}

	first, second := r.Split()
	seen := make(map[uintptr]bool)
	var out []Feature
	for _, half := range []*coord.Region{first, second} {
		query := intInterval{start: int(half.Start()), end: int(half.End()) + 1}
		for _, iv := range tree.Get(query) {
			hit := iv.(intInterval)
			if seen[hit.uid] || !overlapsRegion(r, hit.feat) {
				continue
			}
			seen[hit.uid] = true
			out = append(out, hit.feat)
		}
	}
	return out
}

// overlapsRegion reports whether the feature intersects the parent
// interval itself, wrapping included.
func overlapsRegion(r *coord.Region, f Feature) bool {
	if r.IsWrapped() {
		return f.End >= r.Start() || f.Start <= r.End()
	}
	return f.Start <= r.End() && f.End >= r.Start()
}
