package text

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, in
// [0, 1]. If either vector is empty or all zero the result is 0.
//
// Sums are taken in integers, so the result is exact up to the final
// division and does not depend on map iteration order.
func CosineSimilarity(a, b Vector) float64 {
	na, nb := a.Norm2(), b.Norm2()
	if na == 0 || nb == 0 {
		return 0
	}
	dot := a.Dot(b)
	if dot <= 0 {
		return 0
	}

	score := float64(dot) / math.Sqrt(float64(na)*float64(nb))
	return math.Min(1, score)
}
