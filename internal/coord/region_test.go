package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRegion(t *testing.T, cfg Config) *Region {
	t.Helper()
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{Name: "chr1", Start: 1, End: 100}, false},
		{"missing name", Config{Start: 1, End: 100}, true},
		{"bad strand", Config{Name: "chr1", Start: 1, End: 100, Strand: 2}, true},
		{"strand zero defaults", Config{Name: "chr1", Start: 1, End: 100, Strand: 0}, false},
		{"negative length", Config{Name: "chr1", Start: 1, End: 100, Length: -5}, true},
		{"zero length zero end", Config{Name: "chr1", Start: 1, End: 0}, true},
		{"linear inverted", Config{Name: "chr1", Start: 10, End: 5, Length: 100}, true},
		{"linear insertion point", Config{Name: "chr1", Start: 6, End: 5, Length: 100}, false},
		{"circular wrap", Config{Name: "p1", Start: 90, End: 10, Length: 100, Circular: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 5, End: 100})
	assert.Equal(t, 1, r.Strand())
	assert.Equal(t, int64(100), r.ReferenceLength(), "length defaults to end")
}

func TestLength(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int64
	}{
		{"non-wrapping", Config{Name: "chr1", Start: 100, End: 200, Length: 1000}, 101},
		{"single base", Config{Name: "chr1", Start: 7, End: 7, Length: 1000}, 1},
		{"insertion point", Config{Name: "chr1", Start: 8, End: 7, Length: 1000}, 0},
		{"wrapping", Config{Name: "p1", Start: 999990, End: 10, Length: 1000000, Circular: true}, 21},
		{"wrap boundary", Config{Name: "p1", Start: 1000000, End: 1, Length: 1000000, Circular: true}, 2},
		{"small wrap", Config{Name: "p1", Start: 48, End: 5, Length: 50, Circular: true}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRegion(t, tt.cfg).Length())
		})
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"non-wrapping", Config{Name: "chr1", Start: 100, End: 200, Length: 1000}, 150},
		{"half-base", Config{Name: "chr1", Start: 1, End: 2, Length: 1000}, 1.5},
		{"wrapping centred on origin", Config{Name: "p1", Start: 999990, End: 10, Length: 1000000, Circular: true}, 1000000},
		{"wrapping past origin", Config{Name: "p1", Start: 95, End: 15, Length: 100, Circular: true}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, mustRegion(t, tt.cfg).Midpoint(), 1e-9)
		})
	}
}

func TestExpandStrandAware(t *testing.T) {
	// Five prime and three prime are biological directions: on strand
	// -1 they apply to the opposite numeric ends.
	minus := mustRegion(t, Config{Name: "chr1", Start: 200, End: 300, Strand: -1, Length: 10000})
	got, err := minus.Expand(100, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Start())
	assert.Equal(t, int64(400), got.End())
	assert.Equal(t, -1, got.Strand())

	asym := mustRegion(t, Config{Name: "chr1", Start: 200, End: 300, Strand: -1, Length: 10000})
	got, err = asym.Expand(10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(180), got.Start(), "three prime moves numeric start on strand -1")
	assert.Equal(t, int64(310), got.End(), "five prime moves numeric end on strand -1")

	plus := mustRegion(t, Config{Name: "chr1", Start: 200, End: 300, Length: 10000})
	got, err = plus.Expand(10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(190), got.Start())
	assert.Equal(t, int64(320), got.End())
}

func TestExpandLeavesOriginalUnchanged(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 200, End: 300, Length: 10000})
	_, err := r.Expand(50, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(200), r.Start())
	assert.Equal(t, int64(300), r.End())
}

func TestExpandAttachedSequence(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 1, End: 4, Length: 100, Sequence: "ACGT"})
	_, err := r.Expand(1, 1)
	assert.ErrorIs(t, err, ErrAttachedSequence)
}

func TestExpandWrapsOnCircularReference(t *testing.T) {
	r := mustRegion(t, Config{Name: "p1", Start: 5, End: 95, Length: 100, Circular: true})
	got, err := r.Expand(10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(95), got.Start(), "start below 1 wraps to the far end")
	assert.Equal(t, int64(5), got.End(), "end past the length wraps to the near end")
	assert.True(t, got.IsWrapped())
}

func TestSubRegionRoundTrip(t *testing.T) {
	for _, strand := range []int{1, -1} {
		r := mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Strand: strand, Length: 1000})
		sub, err := r.SubRegion(1, r.Length(), 1)
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, r.Start(), sub.Start())
		assert.Equal(t, r.End(), sub.End())
		assert.Equal(t, r.Strand(), sub.Strand())
	}
}

func TestSubRegion(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Length: 1000})

	sub, err := r.SubRegion(11, 20, 1)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(110), sub.Start())
	assert.Equal(t, int64(119), sub.End())
	assert.Equal(t, 1, sub.Strand())

	// Requested strand composes with the parent's.
	sub, err = r.SubRegion(11, 20, -1)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(110), sub.Start())
	assert.Equal(t, int64(119), sub.End())
	assert.Equal(t, -1, sub.Strand())

	minus := mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Strand: -1, Length: 1000})
	sub, err = minus.SubRegion(1, 10, 1)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(191), sub.Start(), "window measured from the biological start")
	assert.Equal(t, int64(200), sub.End())
	assert.Equal(t, -1, sub.Strand())
}

func TestSubRegionOutOfRange(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Length: 1000})

	tests := []struct {
		name             string
		relStart, relEnd int64
	}{
		{"start below one", 0, 10},
		{"start past length", 102, 110},
		{"end before start", 10, 5},
		{"end past length", 1, 102},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := r.SubRegion(tt.relStart, tt.relEnd, 1)
			assert.NoError(t, err, "out of range is not a fault")
			assert.Nil(t, sub)
		})
	}

	_, err := r.SubRegion(1, 10, 3)
	assert.Error(t, err, "strand outside {+1,-1} is a fault")
}

func TestWholeReferenceView(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Strand: -1, Length: 1000})
	whole, err := r.WholeReferenceView()
	require.NoError(t, err)
	assert.Equal(t, int64(1), whole.Start())
	assert.Equal(t, int64(1000), whole.End())
	assert.Equal(t, 1, whole.Strand())

	attached := mustRegion(t, Config{Name: "chr1", Start: 1, End: 4, Length: 100, Sequence: "ACGT"})
	_, err = attached.WholeReferenceView()
	assert.ErrorIs(t, err, ErrAttachedSequence)
}

func TestClipToReference(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: -10, End: 2000, Length: 1000})
	c, ok := r.ClipToReference()
	require.True(t, ok)
	assert.Equal(t, int64(1), c.Start())
	assert.Equal(t, int64(1000), c.End())

	in := mustRegion(t, Config{Name: "chr1", Start: 10, End: 20, Length: 1000})
	c, ok = in.ClipToReference()
	require.True(t, ok)
	assert.Same(t, in, c, "already in bounds")

	out := mustRegion(t, Config{Name: "chr1", Start: 2000, End: 3000, Length: 1000})
	_, ok = out.ClipToReference()
	assert.False(t, ok)

	wrapped := mustRegion(t, Config{Name: "p1", Start: 90, End: 10, Length: 100, Circular: true})
	c, ok = wrapped.ClipToReference()
	require.True(t, ok)
	assert.Same(t, wrapped, c, "wrapping interval needs no clipping")
}

// countingAttrs counts lookups to verify the topology memo.
type countingAttrs struct {
	attrs []Attribute
	err   error
	calls int
}

func (s *countingAttrs) Attributes(name string, codes ...string) ([]Attribute, error) {
	s.calls++
	return s.attrs, s.err
}

func TestIsCircularTopologyMemoized(t *testing.T) {
	attrs := &countingAttrs{attrs: []Attribute{{Code: "circular", Value: "1"}}}
	r := mustRegion(t, Config{
		Name: "p1", Start: 1, End: 100, Length: 100,
		Source: &Source{Attributes: attrs},
	})

	assert.True(t, r.IsCircularTopology())
	assert.True(t, r.IsCircularTopology())
	assert.True(t, r.IsCircularTopology())
	assert.Equal(t, 1, attrs.calls, "attribute loaded once per instance")
}

func TestIsCircularTopologyFallbacks(t *testing.T) {
	detached := mustRegion(t, Config{Name: "p1", Start: 1, End: 100, Length: 100, Circular: true})
	assert.True(t, detached.IsCircularTopology(), "no store falls back to construction topology")

	linear := mustRegion(t, Config{
		Name: "chr1", Start: 1, End: 100, Length: 100,
		Source: &Source{Attributes: &countingAttrs{}},
	})
	assert.False(t, linear.IsCircularTopology(), "no circular attribute")

	failing := mustRegion(t, Config{
		Name: "p1", Start: 1, End: 100, Length: 100, Circular: true,
		Source: &Source{Attributes: &countingAttrs{err: assert.AnError}},
	})
	assert.True(t, failing.IsCircularTopology(), "lookup error falls back to construction topology")
}

func TestString(t *testing.T) {
	r := mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Length: 1000})
	assert.Equal(t, "chr1:100-200:1", r.String())

	sys := &System{Name: "chromosome", Version: "GRCh38"}
	r = mustRegion(t, Config{Name: "chr1", Start: 100, End: 200, Length: 1000, System: sys})
	assert.Equal(t, "chromosome:GRCh38:chr1:100-200:1", r.String())
}
