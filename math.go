package gadfly

import "math"

// minMax returns the smallest and largest value in xs. It must not be
// called with an empty slice.
func minMax(xs []float64) (min, max float64) {
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		} else if x > max {
			max = x
		}
	}
	return min, max
}

// isIntegral reports whether x is a finite exact integer.
func isIntegral(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x == math.Trunc(x)
}

// quantile computes the q-quantile of the ascending sorted values vs
// with linear interpolation between closest ranks (type 7, the R
// default): for h = (n-1)*q the result interpolates between the
// values at rank floor(h) and floor(h)+1.
func quantile(vs []float64, q float64) float64 {
	n := len(vs)
	if n == 1 {
		return vs[0]
	}
	h := float64(n-1) * q
	i := int(math.Floor(h))
	if i >= n-1 {
		return vs[n-1]
	}
	return vs[i] + (h-float64(i))*(vs[i+1]-vs[i])
}
