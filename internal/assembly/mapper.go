// Package assembly implements offset-arithmetic mapping between two
// coordinate systems of a genome assembly, built from the pairwise
// alignment blocks of the assembly table.
package assembly

import (
	"sort"

	"github.com/swingingsimian/ensembl/internal/coord"
	"github.com/swingingsimian/ensembl/internal/project"
)

// Block is one alignment between a range on an assembled ("asm")
// sequence and a range of equal length on a component ("cmp") sequence.
// Ori -1 means the component is reverse-complemented relative to the
// assembled sequence.
type Block struct {
	AsmName  string
	AsmStart int64
	AsmEnd   int64
	CmpName  string
	CmpStart int64
	CmpEnd   int64
	Ori      int
}

// Mapper maps intervals from one coordinate system to another through a
// set of non-overlapping blocks. Blocks are indexed by source sequence
// name and held sorted by source start; mapping is a left-to-right walk
// emitting Mapped results for covered ranges and Gap results for
// uncovered ones.
type Mapper struct {
	from   *coord.System
	to     *coord.System
	blocks map[string][]Block
}

// NewMapper builds a mapper for the (from, to) coordinate system pair.
// Blocks are given in assembled-sequence orientation; pass them through
// Invert first to build the reverse mapper.
func NewMapper(from, to *coord.System, blocks []Block) *Mapper {
	m := &Mapper{
		from:   from,
		to:     to,
		blocks: make(map[string][]Block),
	}
	for _, b := range blocks {
		m.blocks[b.AsmName] = append(m.blocks[b.AsmName], b)
	}
	for name := range m.blocks {
		bs := m.blocks[name]
		sort.Slice(bs, func(i, j int) bool { return bs[i].AsmStart < bs[j].AsmStart })
	}
	return m
}

// From returns the source coordinate system.
func (m *Mapper) From() *coord.System { return m.from }

// To returns the target coordinate system.
func (m *Mapper) To() *coord.System { return m.to }

// Map maps the interval [start, end] on the named source sequence into
// the target coordinate system. Results come back in source order; any
// stretch not covered by a block becomes an explicit Gap. Strand
// composes with each block's orientation.
func (m *Mapper) Map(name string, start, end int64, strand int, _ *coord.System) []project.MappingResult {
	var out []project.MappingResult
	cursor := start

	for _, b := range m.blocks[name] {
		if b.AsmEnd < cursor {
			continue
		}
		if b.AsmStart > end {
			break
		}
		if b.AsmStart > cursor {
			out = append(out, project.Gap{Start: cursor, End: b.AsmStart - 1})
			cursor = b.AsmStart
		}
		ovEnd := min(end, b.AsmEnd)

		var cmpStart, cmpEnd int64
		if b.Ori == -1 {
			cmpEnd = b.CmpEnd - (cursor - b.AsmStart)
			cmpStart = b.CmpEnd - (ovEnd - b.AsmStart)
		} else {
			cmpStart = b.CmpStart + (cursor - b.AsmStart)
			cmpEnd = b.CmpStart + (ovEnd - b.AsmStart)
		}
		ori := b.Ori
		if ori == 0 {
			ori = 1
		}
		out = append(out, project.Mapped{
			Name:   b.CmpName,
			Start:  cmpStart,
			End:    cmpEnd,
			Strand: strand * ori,
			System: m.to,
		})
		cursor = ovEnd + 1
		if cursor > end {
			break
		}
	}

	if cursor <= end {
		out = append(out, project.Gap{Start: cursor, End: end})
	}
	return out
}

// Invert swaps the assembled and component sides of each block, giving
// the block set of the reverse mapper.
func Invert(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = Block{
			AsmName:  b.CmpName,
			AsmStart: b.CmpStart,
			AsmEnd:   b.CmpEnd,
			CmpName:  b.AsmName,
			CmpStart: b.AsmStart,
			CmpEnd:   b.AsmEnd,
			Ori:      b.Ori,
		}
	}
	return out
}
