package coord

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FetchSequence returns the sequence covered by the region.
//
// An insertion point yields the empty string. A literal attached
// sequence is returned verbatim. A wrapping interval is decomposed into
// its two halves, fetched independently (concurrently) and
// concatenated in split order. A detached region yields a run of 'N'
// placeholders of the interval's length.
func (r *Region) FetchSequence() (string, error) {
	if r.IsInsertionPoint() {
		return "", nil
	}
	if r.seq != "" {
		return r.seq, nil
	}
	if r.IsWrapped() {
		first, second := r.Split()
		var head, tail string
		var g errgroup.Group
		g.Go(func() error {
			var err error
			head, err = first.FetchSequence()
			return err
		})
		g.Go(func() error {
			var err error
			tail, err = second.FetchSequence()
			return err
		})
		if err := g.Wait(); err != nil {
			return "", err
		}
		return head + tail, nil
	}
	if r.src.hasSequences() {
		seq, err := r.src.Sequences.Fetch(r.name, r.start, r.end, r.strand)
		if err != nil {
			return "", fmt.Errorf("fetch %s:%d-%d: %w", r.name, r.start, r.end, err)
		}
		return seq, nil
	}
	return strings.Repeat("N", int(r.Length())), nil
}

// FetchSubsequence returns the sequence of the window
// [relStart, relEnd] of the region's own 1-based numbering, oriented by
// strand relative to the region.
//
// With a sequence store attached, a window whose end precedes its start
// wraps around the reference origin at the storage layer and is fetched
// as [relStart, reference length] plus [1, relEnd]. Without a store,
// positions outside [1, Length()] pad with 'N' around the in-range
// slice of FetchSequence.
func (r *Region) FetchSubsequence(relStart, relEnd int64, strand int) (string, error) {
	if strand != 1 && strand != -1 {
		return "", fmt.Errorf("subsequence %s: strand must be +1 or -1, got %d", r.name, strand)
	}
	if relStart == relEnd+1 {
		return "", nil
	}
	if r.src.hasSequences() {
		if relEnd < relStart {
			// The window itself crosses the origin.
			head, err := r.src.Sequences.Fetch(r.name, relStart, r.length, strand)
			if err != nil {
				return "", fmt.Errorf("fetch %s:%d-%d: %w", r.name, relStart, r.length, err)
			}
			tail, err := r.src.Sequences.Fetch(r.name, 1, relEnd, strand)
			if err != nil {
				return "", fmt.Errorf("fetch %s:%d-%d: %w", r.name, 1, relEnd, err)
			}
			return head + tail, nil
		}
		absStart, absEnd := r.relToAbs(relStart, relEnd)
		if r.circular && absStart > absEnd {
			// The absolute window wraps even though the relative one
			// does not; fetch the two arcs separately.
			head, err := r.src.Sequences.Fetch(r.name, absStart, r.length, r.strand*strand)
			if err != nil {
				return "", fmt.Errorf("fetch %s:%d-%d: %w", r.name, absStart, r.length, err)
			}
			tail, err := r.src.Sequences.Fetch(r.name, 1, absEnd, r.strand*strand)
			if err != nil {
				return "", fmt.Errorf("fetch %s:%d-%d: %w", r.name, 1, absEnd, err)
			}
			return head + tail, nil
		}
		seq, err := r.src.Sequences.Fetch(r.name, absStart, absEnd, r.strand*strand)
		if err != nil {
			return "", fmt.Errorf("fetch %s:%d-%d: %w", r.name, absStart, absEnd, err)
		}
		return seq, nil
	}

	// Detached: slice out of the region's own sequence, padding any
	// out-of-range flank with 'N'.
	whole, err := r.FetchSequence()
	if err != nil {
		return "", err
	}
	n := int64(len(whole))
	var b strings.Builder
	b.Grow(int(relEnd - relStart + 1))
	for pos := relStart; pos <= relEnd; pos++ {
		if pos < 1 || pos > n {
			b.WriteByte('N')
		} else {
			b.WriteByte(whole[pos-1])
		}
	}
	out := b.String()
	if strand == -1 {
		out = ReverseComplement(out)
	}
	return out, nil
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence, preserving case. Ambiguity codes map to 'N'; non-nucleotide
// characters pass through unchanged.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complementBase(seq[i])
	}
	return string(out)
}

func complementBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T', 'U':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	case 'a':
		return 't'
	case 't', 'u':
		return 'a'
	case 'g':
		return 'c'
	case 'c':
		return 'g'
	case 'N':
		return 'N'
	case 'n':
		return 'n'
	case '-':
		return '-'
	default:
		if b >= 'a' && b <= 'z' {
			return 'n'
		}
		if b >= 'A' && b <= 'Z' {
			return 'N'
		}
		return b
	}
}
