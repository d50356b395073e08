package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swingingsimian/ensembl/internal/coord"
	"github.com/swingingsimian/ensembl/internal/project"
)

var (
	chromCS  = &coord.System{ID: 1, Name: "chromosome", Version: "ASM1", Rank: 1}
	contigCS = &coord.System{ID: 2, Name: "contig", Rank: 2}
)

// chr1 is assembled from two contigs with a 100bp gap between them:
//
//	chr1 1-1000    = ctg1 1-1000
//	chr1 1101-2100 = ctg2 1-1000 (reverse orientation)
func testMapper() *Mapper {
	return NewMapper(chromCS, contigCS, []Block{
		{AsmName: "chr1", AsmStart: 1, AsmEnd: 1000, CmpName: "ctg1", CmpStart: 1, CmpEnd: 1000, Ori: 1},
		{AsmName: "chr1", AsmStart: 1101, AsmEnd: 2100, CmpName: "ctg2", CmpStart: 1, CmpEnd: 1000, Ori: -1},
	})
}

func TestMapInsideOneBlock(t *testing.T) {
	m := testMapper()

	out := m.Map("chr1", 101, 200, 1, chromCS)
	require.Len(t, out, 1)
	mapped, ok := out[0].(project.Mapped)
	require.True(t, ok)
	assert.Equal(t, "ctg1", mapped.Name)
	assert.Equal(t, int64(101), mapped.Start)
	assert.Equal(t, int64(200), mapped.End)
	assert.Equal(t, 1, mapped.Strand)
	assert.True(t, mapped.System.Equal(contigCS))
}

func TestMapReverseOrientation(t *testing.T) {
	m := testMapper()

	// chr1:1101 is the last base of ctg2 (1000); chr1:1110 is 991.
	out := m.Map("chr1", 1101, 1110, 1, chromCS)
	require.Len(t, out, 1)
	mapped := out[0].(project.Mapped)
	assert.Equal(t, "ctg2", mapped.Name)
	assert.Equal(t, int64(991), mapped.Start)
	assert.Equal(t, int64(1000), mapped.End)
	assert.Equal(t, -1, mapped.Strand)

	// Query strand composes with block orientation.
	out = m.Map("chr1", 1101, 1110, -1, chromCS)
	mapped = out[0].(project.Mapped)
	assert.Equal(t, 1, mapped.Strand)
}

func TestMapAcrossGap(t *testing.T) {
	m := testMapper()

	out := m.Map("chr1", 901, 1200, 1, chromCS)
	require.Len(t, out, 3)

	first := out[0].(project.Mapped)
	assert.Equal(t, "ctg1", first.Name)
	assert.Equal(t, int64(901), first.Start)
	assert.Equal(t, int64(1000), first.End)

	gap := out[1].(project.Gap)
	assert.Equal(t, int64(1001), gap.Start)
	assert.Equal(t, int64(1100), gap.End)
	assert.Equal(t, int64(100), gap.ResultLength())

	second := out[2].(project.Mapped)
	assert.Equal(t, "ctg2", second.Name)
	assert.Equal(t, int64(901), second.Start, "block end maps back from the component end")
	assert.Equal(t, int64(1000), second.End)
	assert.Equal(t, -1, second.Strand)

	// The results consume exactly the query length, in order.
	var total int64
	for _, r := range out {
		total += r.ResultLength()
	}
	assert.Equal(t, int64(300), total)
}

func TestMapLeadingAndTrailingGaps(t *testing.T) {
	m := NewMapper(chromCS, contigCS, []Block{
		{AsmName: "chr1", AsmStart: 501, AsmEnd: 600, CmpName: "ctg1", CmpStart: 1, CmpEnd: 100, Ori: 1},
	})

	out := m.Map("chr1", 401, 700, 1, chromCS)
	require.Len(t, out, 3)
	assert.Equal(t, project.Gap{Start: 401, End: 500}, out[0])
	assert.Equal(t, int64(100), out[1].(project.Mapped).ResultLength())
	assert.Equal(t, project.Gap{Start: 601, End: 700}, out[2])
}

func TestMapUnknownReferenceIsOneGap(t *testing.T) {
	m := testMapper()
	out := m.Map("chrMT", 1, 100, 1, chromCS)
	require.Len(t, out, 1)
	assert.Equal(t, project.Gap{Start: 1, End: 100}, out[0])
}

func TestInvertRoundTrip(t *testing.T) {
	blocks := []Block{
		{AsmName: "chr1", AsmStart: 1101, AsmEnd: 2100, CmpName: "ctg2", CmpStart: 1, CmpEnd: 1000, Ori: -1},
	}
	m := NewMapper(contigCS, chromCS, Invert(blocks))

	// ctg2:991-1000 came from chr1:1101-1110 in reverse orientation.
	out := m.Map("ctg2", 991, 1000, 1, contigCS)
	require.Len(t, out, 1)
	mapped := out[0].(project.Mapped)
	assert.Equal(t, "chr1", mapped.Name)
	assert.Equal(t, int64(1101), mapped.Start)
	assert.Equal(t, int64(1110), mapped.End)
	assert.Equal(t, -1, mapped.Strand)
}
