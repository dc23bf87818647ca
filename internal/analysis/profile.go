package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"student-score-predictor/internal/dataset"
	"student-score-predictor/internal/models"
)

// Profiler summarizes the columns of a training frame
type Profiler struct{}

func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile builds a column-by-column summary in schema order
func (p *Profiler) Profile(frame *dataset.Frame) (models.DatasetProfile, error) {
	result := models.DatasetProfile{
		Source:  frame.Source(),
		Rows:    frame.Len(),
		Columns: []models.ColumnProfile{},
	}

	target, err := frame.Floats(frame.Schema().Target())
	if err != nil {
		return models.DatasetProfile{}, err
	}

	for _, col := range frame.Schema().Columns {
		var profile models.ColumnProfile
		switch col.Kind {
		case models.KindNumeric, models.KindTarget:
			profile, err = p.profileNumeric(frame, col, target)
		default:
			profile, err = p.profileCategorical(frame, col, target)
		}
		if err != nil {
			return models.DatasetProfile{}, err
		}
		result.Columns = append(result.Columns, profile)
	}
	return result, nil
}

func (p *Profiler) profileNumeric(frame *dataset.Frame, col models.Column, target []float64) (models.ColumnProfile, error) {
	values, err := frame.Floats(col.Name)
	if err != nil {
		return models.ColumnProfile{}, err
	}

	profile := models.ColumnProfile{
		Name:          col.Name,
		Kind:          col.Kind,
		TotalRows:     len(values),
		DistinctCount: countDistinct(values),
	}

	min, max, mean, median, err := CalculateStats(values)
	if err != nil {
		return models.ColumnProfile{}, fmt.Errorf("column %q: %w", col.Name, err)
	}
	std := popStdDev(values)

	profile.Min = &min
	profile.Max = &max
	profile.Mean = &mean
	profile.Median = &median
	profile.StdDev = &std
	if col.Kind == models.KindNumeric {
		r := PearsonCorrelation(values, target)
		profile.TargetCorrelation = &r
	}
	return profile, nil
}

func (p *Profiler) profileCategorical(frame *dataset.Frame, col models.Column, target []float64) (models.ColumnProfile, error) {
	values, err := frame.Strings(col.Name)
	if err != nil {
		return models.ColumnProfile{}, err
	}
	domain, err := frame.Domain(col.Name)
	if err != nil {
		return models.ColumnProfile{}, err
	}

	counts := make(map[string]int, len(domain))
	for _, v := range values {
		counts[v]++
	}

	profile := models.ColumnProfile{
		Name:          col.Name,
		Kind:          col.Kind,
		TotalRows:     len(values),
		DistinctCount: len(domain),
		Entropy:       calculateEntropy(counts, len(values)),
	}
	// identifiers are unique per row; listing them is noise
	if col.Kind == models.KindCategorical {
		profile.Domain = domain
		profile.Counts = counts
		mi := MutualInformation(values, target)
		profile.TargetMutualInfo = &mi
	}
	return profile, nil
}

// CalculateStats computes basic stats for a numeric column
func CalculateStats(values []float64) (min, max, mean, median float64, err error) {
	if len(values) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("no numeric values")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	min = floats.Min(sorted)
	max = floats.Max(sorted)
	mean = stat.Mean(sorted, nil)

	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}
	return
}

// calculateEntropy computes Shannon entropy in bits
func calculateEntropy(valueCounts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, count := range valueCounts {
		if count > 0 {
			p := float64(count) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

func countDistinct(values []float64) int {
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	return len(seen)
}

func popStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	_, variance := stat.PopMeanVariance(values, nil)
	return math.Sqrt(variance)
}
