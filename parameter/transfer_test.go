package parameter

import "testing"

func TestFoldDoubleBoundaryScenario(t *testing.T) {
	const lo, hi = -1.0, 3.0
	cases := []struct{ in, want float64 }{
		{-5, 3},
		{-1, -1},
		{0, 0},
		{3, 3},
		{7, -1},
		{11, 3},
	}
	for _, c := range cases {
		if got := foldDouble(c.in, lo, hi); got != c.want {
			t.Errorf("foldDouble(%g, %g, %g) = %g, want %g", c.in, lo, hi, got, c.want)
		}
	}
}

func TestFoldDoubleIsIdempotentInsideRange(t *testing.T) {
	for _, v := range []float64{-1, 0, 1.5, 2.999} {
		if got := foldDouble(v, -1, 3); got != v {
			t.Errorf("foldDouble(%g) = %g, want unchanged", v, got)
		}
	}
}

func TestFoldDoubleAlwaysWithinHalfOpenRange(t *testing.T) {
	for v := -50.0; v <= 50.0; v += 0.37 {
		got := foldDouble(v, -1, 3)
		if got < -1 || got >= 3 {
			t.Fatalf("foldDouble(%g) = %g, out of [-1, 3)", v, got)
		}
	}
}

func TestFoldInt32WithinInclusiveRange(t *testing.T) {
	for v := int32(-50); v <= 50; v++ {
		got := foldInt32(v, -1, 3)
		if got < -1 || got > 3 {
			t.Fatalf("foldInt32(%d) = %d, out of [-1, 3]", v, got)
		}
	}
}

func TestFoldInt32FixedPointsInsideRange(t *testing.T) {
	for _, v := range []int32{-1, 0, 1, 2, 3} {
		if got := foldInt32(v, -1, 3); got != v {
			t.Errorf("foldInt32(%d) = %d, want unchanged", v, got)
		}
	}
}
