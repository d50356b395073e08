// Package store provides the file-backed collaborators for region
// operations: a FASTA sequence store and a DuckDB-backed coordinate
// system registry.
package store

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/swingingsimian/ensembl/internal/coord"
)

// FASTA is an in-memory sequence store loaded from a FASTA file.
// Record names are the first whitespace-delimited token of each header.
type FASTA struct {
	sequences map[string]string
}

// NewFASTA wraps an already-loaded name -> sequence map.
func NewFASTA(sequences map[string]string) *FASTA {
	return &FASTA{sequences: sequences}
}

// OpenFASTA reads a FASTA file, transparently decompressing .gz paths.
func OpenFASTA(path string) (*FASTA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	fa := &FASTA{sequences: make(map[string]string)}
	if err := fa.parse(reader); err != nil {
		return nil, err
	}
	return fa, nil
}

func (f *FASTA) parse(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	var name string
	var seq strings.Builder

	flush := func() {
		if name != "" {
			f.sequences[name] = seq.String()
		}
		seq.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return fmt.Errorf("fasta: empty header line")
			}
			flush()
			name = fields[0]
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read FASTA: %w", err)
	}
	return nil
}

// Length returns the length of the named sequence and whether it is
// present.
func (f *FASTA) Length(name string) (int64, bool) {
	seq, ok := f.sequences[name]
	return int64(len(seq)), ok
}

// Fetch returns the 1-based inclusive interval [start, end] of the
// named sequence, reverse-complemented for strand -1. Positions outside
// the stored sequence pad with 'N', so fetches against expanded regions
// do not fail at the store.
func (f *FASTA) Fetch(name string, start, end int64, strand int) (string, error) {
	seq, ok := f.sequences[name]
	if !ok {
		return "", fmt.Errorf("fasta: unknown sequence %q", name)
	}
	if end < start {
		return "", fmt.Errorf("fasta: inverted interval %d-%d on %q", start, end, name)
	}
	if strand != 1 && strand != -1 {
		return "", fmt.Errorf("fasta: strand must be +1 or -1, got %d", strand)
	}

	n := int64(len(seq))
	var b strings.Builder
	b.Grow(int(end - start + 1))
	for pos := start; pos <= end; pos++ {
		if pos < 1 || pos > n {
			b.WriteByte('N')
		} else {
			b.WriteByte(seq[pos-1])
		}
	}
	out := b.String()
	if strand == -1 {
		out = coord.ReverseComplement(out)
	}
	return out, nil
}
