package models

import "fmt"

// ColumnKind classifies how a dataset column takes part in training
type ColumnKind string

const (
	KindIdentifier  ColumnKind = "identifier"
	KindTarget      ColumnKind = "target"
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column is one declared dataset column
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Schema is the declared, ordered column layout of a training dataset.
// It must contain exactly one target column; the identifier is optional.
type Schema struct {
	Columns []Column `json:"columns"`
}

// StudentHabitsSchema describes student_habits_performance.csv
var StudentHabitsSchema = Schema{
	Columns: []Column{
		{Name: "student_id", Kind: KindIdentifier},
		{Name: "age", Kind: KindNumeric},
		{Name: "gender", Kind: KindCategorical},
		{Name: "study_hours_per_day", Kind: KindNumeric},
		{Name: "social_media_hours", Kind: KindNumeric},
		{Name: "netflix_hours", Kind: KindNumeric},
		{Name: "part_time_job", Kind: KindCategorical},
		{Name: "attendance_percentage", Kind: KindNumeric},
		{Name: "sleep_hours", Kind: KindNumeric},
		{Name: "diet_quality", Kind: KindCategorical},
		{Name: "exercise_frequency", Kind: KindNumeric},
		{Name: "parental_education_level", Kind: KindCategorical},
		{Name: "internet_quality", Kind: KindCategorical},
		{Name: "mental_health_rating", Kind: KindNumeric},
		{Name: "extracurricular_participation", Kind: KindCategorical},
		{Name: "exam_score", Kind: KindTarget},
	},
}

// Validate checks that the schema has a single target and no duplicate names
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Columns))
	targets := 0
	for _, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("schema: empty column name")
		}
		if seen[c.Name] {
			return fmt.Errorf("schema: duplicate column %q", c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case KindTarget:
			targets++
		case KindIdentifier, KindNumeric, KindCategorical:
		default:
			return fmt.Errorf("schema: column %q has unknown kind %q", c.Name, c.Kind)
		}
	}
	if targets != 1 {
		return fmt.Errorf("schema: expected exactly one target column, got %d", targets)
	}
	return nil
}

// Names returns every declared column name in order
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Features returns the feature columns (everything but identifier and target)
func (s Schema) Features() []Column {
	var out []Column
	for _, c := range s.Columns {
		if c.Kind == KindNumeric || c.Kind == KindCategorical {
			out = append(out, c)
		}
	}
	return out
}

// Categorical returns the names of categorical features in schema order
func (s Schema) Categorical() []string {
	return s.namesOf(KindCategorical)
}

// Numeric returns the names of numeric features in schema order
func (s Schema) Numeric() []string {
	return s.namesOf(KindNumeric)
}

// Target returns the target column name, or "" if none is declared
func (s Schema) Target() string {
	if names := s.namesOf(KindTarget); len(names) > 0 {
		return names[0]
	}
	return ""
}

// Lookup finds a column by name
func (s Schema) Lookup(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (s Schema) namesOf(kind ColumnKind) []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}
