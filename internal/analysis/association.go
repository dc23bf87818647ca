package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// targetBins is the number of equal-width bins the target is cut into for
// mutual information
const targetBins = 10

// PearsonCorrelation returns the linear correlation of x and y, or 0 when
// either side is constant or the lengths differ
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0
	}
	return stat.Correlation(x, y, nil)
}

// MutualInformation measures how much knowing the category tells about the
// binned target, normalized to [0, 1] by min(H(category), H(target))
func MutualInformation(categories []string, target []float64) float64 {
	if len(categories) != len(target) || len(categories) == 0 {
		return 0
	}

	codes := make(map[string]int)
	xs := make([]int, len(categories))
	for i, c := range categories {
		code, ok := codes[c]
		if !ok {
			code = len(codes)
			codes[c] = code
		}
		xs[i] = code
	}
	ys := discretize(target, targetBins)

	joint := make(map[[2]int]float64)
	px := make(map[int]float64)
	py := make(map[int]float64)
	n := float64(len(xs))
	for i := range xs {
		joint[[2]int{xs[i], ys[i]}] += 1 / n
		px[xs[i]] += 1 / n
		py[ys[i]] += 1 / n
	}

	mi := 0.0
	for key, pxy := range joint {
		mi += pxy * math.Log2(pxy/(px[key[0]]*py[key[1]]))
	}

	maxMI := math.Min(entropy(px), entropy(py))
	if maxMI == 0 {
		return 0
	}
	return math.Max(0, math.Min(1, mi/maxMI))
}

// discretize assigns each value to one of numBins equal-width bins
func discretize(values []float64, numBins int) []int {
	bins := make([]int, len(values))
	if len(values) == 0 {
		return bins
	}

	minVal, maxVal := floats.Min(values), floats.Max(values)
	width := (maxVal - minVal) / float64(numBins)
	if width == 0 {
		return bins
	}

	for i, v := range values {
		bin := int((v - minVal) / width)
		if bin >= numBins {
			bin = numBins - 1
		}
		bins[i] = bin
	}
	return bins
}

func entropy(prob map[int]float64) float64 {
	h := 0.0
	for _, p := range prob {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
