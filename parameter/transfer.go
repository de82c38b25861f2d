package parameter

import "math"

// foldDouble implements the folding transfer function for continuous
// parameters bounded to [lo, hi). It maps an unrestricted internal value
// onto the bounded range as if the number line were folded accordion-
// style at the boundaries: the mapping is continuous, its own inverse on
// the fundamental domain, and does not bias a symmetric perturbation
// distribution toward either boundary. Inputs an odd multiple of hi-lo
// away from lo (v == hi among them) fold to hi itself, the one result
// outside [lo, hi).
func foldDouble(v, lo, hi float64) float64 {
	if lo <= v && v < hi {
		return v
	}
	width := hi - lo
	r := math.Floor((v - lo) / width)
	if math.Mod(r, 2) == 0 {
		return v - r*width
	}
	return -v + (r-1)*width + 2*hi
}

// foldInt32 implements the integer variant of the folding transfer, where
// the range [lo, hi] is upper-inclusive, so the range size is hi-lo+1.
func foldInt32(v, lo, hi int32) int32 {
	if lo <= v && v <= hi {
		return v
	}
	width := int64(hi) - int64(lo) + 1
	shifted := int64(v) - int64(lo)
	r := shifted / width
	if shifted < 0 && shifted%width != 0 {
		r--
	}
	if r%2 == 0 {
		return int32(int64(v) - r*width)
	}
	vShifted := int64(v) - r*width
	return int32(int64(hi) - (vShifted - int64(lo)))
}
