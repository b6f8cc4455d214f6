package fu

import "math"

func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	c := 0.0
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	c := 0.0
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

func Mind(a []float64) float64 {
	r := math.Inf(1)
	for _, x := range a {
		if x < r {
			r = x
		}
	}
	return r
}

func Maxd(a []float64) float64 {
	r := math.Inf(-1)
	for _, x := range a {
		if x > r {
			r = x
		}
	}
	return r
}

// Indmaxd returns the index of the maximal value, -1 for an empty slice.
func Indmaxd(a []float64) int {
	j := -1
	r := math.Inf(-1)
	for i, x := range a {
		if x > r {
			r, j = x, i
		}
	}
	return j
}

func Mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Fnzi returns the first non-zero integer of the arguments.
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

// Fnzd returns the first non-zero float of the arguments.
func Fnzd(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}
