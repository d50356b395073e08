package coord

import "testing"

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec       string
		name       string
		start, end int64
		strand     int
		wantErr    bool
	}{
		{spec: "chr1:100-200", name: "chr1", start: 100, end: 200, strand: 1},
		{spec: "chr1:100-200:1", name: "chr1", start: 100, end: 200, strand: 1},
		{spec: "chr1:100-200:-1", name: "chr1", start: 100, end: 200, strand: -1},
		{spec: "chr1:100-200:+", name: "chr1", start: 100, end: 200, strand: 1},
		{spec: "chr1:100-200:-", name: "chr1", start: 100, end: 200, strand: -1},
		{spec: "pPCP1:9500-100", name: "pPCP1", start: 9500, end: 100, strand: 1},
		{spec: "pPCP1:9500-1", name: "pPCP1", start: 9500, end: 1, strand: 1},
		{spec: "HSCHR6_MHC:1:100-200", name: "HSCHR6_MHC:1", start: 100, end: 200, strand: 1},
		{spec: "chr1:-5-10", name: "chr1", start: -5, end: 10, strand: 1},
		{spec: "chr1", wantErr: true},
		{spec: "chr1:100", wantErr: true},
		{spec: ":100-200", wantErr: true},
		{spec: "chr1:x-200", wantErr: true},
		{spec: "chr1:100-y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			name, start, end, strand, err := ParseSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSpec(%q): want error, got %s:%d-%d:%d", tt.spec, name, start, end, strand)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpec(%q): %v", tt.spec, err)
			}
			if name != tt.name || start != tt.start || end != tt.end || strand != tt.strand {
				t.Errorf("ParseSpec(%q) = %s:%d-%d:%d, want %s:%d-%d:%d",
					tt.spec, name, start, end, strand, tt.name, tt.start, tt.end, tt.strand)
			}
		})
	}
}
