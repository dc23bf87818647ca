package pipeline

import "fmt"

type memTable struct {
	n    int
	strs map[string][]string
	nums map[string][]float64
}

func newMemTable(n int) *memTable {
	return &memTable{n: n, strs: map[string][]string{}, nums: map[string][]float64{}}
}

func (m *memTable) Len() int { return m.n }

func (m *memTable) Strings(column string) ([]string, error) {
	if v, ok := m.strs[column]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
}

func (m *memTable) Floats(column string) ([]float64, error) {
	if v, ok := m.nums[column]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
}

// jobTable returns exam = 50 + 10*[part_time_job=Yes] + 3*study_hours
func jobTable() *memTable {
	t := newMemTable(8)
	t.strs["part_time_job"] = []string{"Yes", "No", "No", "Yes", "No", "Yes", "No", "Yes"}
	t.nums["study_hours_per_day"] = []float64{0, 1, 2, 3, 4, 5, 6, 7}
	exam := make([]float64, t.n)
	for i := range exam {
		exam[i] = 50 + 3*t.nums["study_hours_per_day"][i]
		if t.strs["part_time_job"][i] == "Yes" {
			exam[i] += 10
		}
	}
	t.nums["exam_score"] = exam
	return t
}

var jobSpec = Spec{
	Categorical: []string{"part_time_job"},
	Numeric:     []string{"study_hours_per_day"},
	Target:      "exam_score",
}
