package coord

// Split decomposes the region into its two halves: [start, reference
// length] and [1, end]. Their union in that order reconstitutes a
// wrapping interval for any per-base operation; for a non-wrapping
// interval one half over-covers and the caller intersects results back
// against the parent.
//
// Both halves live on the same reference as the parent and share its
// name, reference length, strand, coordinate system and collaborators.
// Neither half wraps, so splitting a half again is a no-op
// decomposition.
func (r *Region) Split() (first, second *Region) {
	first = r.derive(r.start, r.length, r.strand)
	second = r.derive(1, r.end, r.strand)
	return first, second
}
