package project

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/swingingsimian/ensembl/internal/coord"
)

// Segment maps the sub-range [Start, End] of the original query
// region's own 1-based numbering to Region in the target coordinate
// system. Segments are emitted left to right; their logical ranges are
// monotonically increasing and gaps between them are implicit.
type Segment struct {
	Start  int64
	End    int64
	Region *coord.Region
}

// String renders "start-end -> region".
func (s Segment) String() string {
	return fmt.Sprintf("%d-%d -> %s", s.Start, s.End, s.Region)
}

// Projector maps regions between coordinate systems. All collaborators
// are injected at construction; there is no ambient registry.
type Projector struct {
	registry   Registry
	mappers    MapperProvider
	resolver   RegionResolver
	normalizer Normalizer
	logger     *zap.Logger
}

// NewProjector builds a projector over the given collaborators, with no
// alias normalization and a no-op logger.
func NewProjector(registry Registry, mappers MapperProvider, resolver RegionResolver) *Projector {
	return &Projector{
		registry:   registry,
		mappers:    mappers,
		resolver:   resolver,
		normalizer: IdentityNormalizer{},
		logger:     zap.NewNop(),
	}
}

// SetNormalizer replaces the alias normalizer.
func (p *Projector) SetNormalizer(n Normalizer) {
	p.normalizer = n
}

// SetLogger sets the logger for warning messages.
func (p *Projector) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Project maps r onto the named target coordinate system and returns
// the ordered projection segments.
//
// An unknown target system is an error: the caller asked for something
// that does not exist. A region with no coordinate system identity, or
// a projector constructed without collaborators, is a soft fault: a
// warning is logged and an empty list returned so that batch callers
// can continue past individually unsupported regions. A missing mapper
// for a component turns the whole component into an implicit gap.
func (p *Projector) Project(r *coord.Region, targetName, targetVersion string) ([]Segment, error) {
	if p.registry == nil || p.mappers == nil || p.resolver == nil {
		p.logger.Warn("projector has missing collaborators, returning empty projection",
			zap.String("region", r.String()))
		return nil, nil
	}
	if r.System() == nil {
		p.logger.Warn("region has no coordinate system, returning empty projection",
			zap.String("region", r.String()))
		return nil, nil
	}

	target, err := p.registry.Resolve(targetName, targetVersion)
	if err != nil {
		return nil, fmt.Errorf("resolve coordinate system %s:%s: %w", targetName, targetVersion, err)
	}
	if target == nil {
		return nil, fmt.Errorf("unknown coordinate system %s:%s", targetName, targetVersion)
	}

	// Already in the target system: no mapping, just clip out of range.
	if r.System().Equal(target) {
		return clipped(r), nil
	}

	var segments []Segment
	cursor := int64(1)

	first, second := r.Split()
	for _, half := range []*coord.Region{first, second} {
		components, err := p.normalizer.Normalize(half)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", half, err)
		}

		for _, comp := range components {
			src := comp.Region.System()
			mapper, err := p.mappers.Mapper(src, target)
			if err != nil {
				p.logger.Warn("mapper lookup failed, treating component as gap",
					zap.String("component", comp.Region.String()),
					zap.Error(err))
				mapper = nil
			}
			if mapper == nil {
				cursor += comp.Region.Length()
				continue
			}

			results := mapper.Map(comp.Region.Name(), comp.Region.Start(), comp.Region.End(),
				comp.Region.Strand(), src)
			for _, res := range results {
				switch m := res.(type) {
				case Mapped:
					if m.System.Equal(src) {
						// The mapping degenerated to identity (an alias
						// resolving back to its own system); the
						// whole-region clip takes precedence over any
						// partial segments already built.
						return clipped(r), nil
					}
					region, err := p.resolver.ResolveRegion(m.System, m.Name, m.Start, m.End, m.Strand)
					if err != nil {
						return nil, fmt.Errorf("resolve region %s:%d-%d in %s: %w",
							m.Name, m.Start, m.End, m.System, err)
					}
					length := m.ResultLength()
					segments = append(segments, Segment{
						Start:  cursor,
						End:    cursor + length - 1,
						Region: region,
					})
					cursor += length
				case Gap:
					// Gaps consume logical space without a segment.
					cursor += m.ResultLength()
				}
			}
		}
	}

	return segments, nil
}

// clipped is the identity projection: at most one segment pointing back
// to a bounds-clipped copy of the region, zero if it lies entirely off
// the reference.
func clipped(r *coord.Region) []Segment {
	c, ok := r.ClipToReference()
	if !ok {
		return nil
	}
	return []Segment{{Start: 1, End: c.Length(), Region: c}}
}
