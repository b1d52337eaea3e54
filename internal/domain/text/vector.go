package text

// Vector maps a term to how many times it occurs. Missing terms count as 0.
type Vector map[string]int

// Vectorize counts tokens. Counts are raw; cosine similarity does not
// need length normalisation.
func Vectorize(tokens []string) Vector {
	v := make(Vector, len(tokens))
	for _, tok := range tokens {
		v[tok]++
	}
	return v
}

// Norm2 returns the squared Euclidean norm of v.
func (v Vector) Norm2() int64 {
	var n int64
	for _, c := range v {
		n += int64(c) * int64(c)
	}
	return n
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) int64 {
	// Walk the smaller map; the result is the same either way.
	small, large := v, o
	if len(large) < len(small) {
		small, large = large, small
	}
	var d int64
	for term, c := range small {
		if oc, ok := large[term]; ok {
			d += int64(c) * int64(oc)
		}
	}
	return d
}
