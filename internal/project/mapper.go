// Package project composes a source region, a target coordinate system
// and an assembly-mapping collaborator into an ordered list of
// projection segments.
package project

import "github.com/swingingsimian/ensembl/internal/coord"

// MappingResult is one element of a mapper's ordered answer: either a
// Mapped range in some coordinate system or a Gap with no mapping. The
// two cases are matched exhaustively; no other implementations exist.
type MappingResult interface {
	// ResultLength returns the number of source bases the result
	// consumes.
	ResultLength() int64

	mappingResult()
}

// Mapped is a resolved coordinate range in a coordinate system.
type Mapped struct {
	Name   string // target seq region name
	Start  int64
	End    int64
	Strand int
	System *coord.System
}

func (m Mapped) mappingResult() {}

// ResultLength returns the length of the mapped range.
func (m Mapped) ResultLength() int64 { return m.End - m.Start + 1 }

// Gap is a source sub-range with no mapping in the target system.
type Gap struct {
	Start int64 // source coordinates
	End   int64
}

func (g Gap) mappingResult() {}

// ResultLength returns the length of the unmapped range.
func (g Gap) ResultLength() int64 { return g.End - g.Start + 1 }

// Mapper maps an absolute interval on a named reference from its own
// coordinate system into another, returning results in source order
// with explicit gaps for unmapped stretches.
type Mapper interface {
	Map(name string, start, end int64, strand int, sys *coord.System) []MappingResult
}

// MapperProvider looks up the mapper between two coordinate systems.
// (nil, nil) means no mapping path exists between the pair.
type MapperProvider interface {
	Mapper(src, dst *coord.System) (Mapper, error)
}

// Registry resolves a coordinate system by name and version.
// (nil, nil) means no such system is known.
type Registry interface {
	Resolve(name, version string) (*coord.System, error)
}

// RegionResolver turns a mapped range into a concrete region in the
// given coordinate system, with reference length and collaborators
// attached.
type RegionResolver interface {
	ResolveRegion(sys *coord.System, name string, start, end int64, strand int) (*coord.Region, error)
}

// Component is one piece of a normalized region: the sub-range
// [Start, End] of the input region's own numbering together with the
// equivalent region it is aliased to.
type Component struct {
	Start  int64
	End    int64
	Region *coord.Region
}

// Normalizer decomposes a region into its symlinked alias components
// (haplotypes, pseudo-autosomal regions). For most regions the answer
// is the region itself.
type Normalizer interface {
	Normalize(r *coord.Region) ([]Component, error)
}

// IdentityNormalizer is the no-alias Normalizer: every region is its
// own single component.
type IdentityNormalizer struct{}

// Normalize returns r as a single component spanning its whole length.
func (IdentityNormalizer) Normalize(r *coord.Region) ([]Component, error) {
	return []Component{{Start: 1, End: r.Length(), Region: r}}, nil
}
