package models

// ControlKind is the input widget used for a feature
type ControlKind string

const (
	ControlSlider ControlKind = "slider"
	ControlNumber ControlKind = "number"
	ControlSelect ControlKind = "select"
)

// Control describes one input on the predictor page.
// Slider and number controls carry an inclusive range and a default;
// select controls get their Options from the training data.
type Control struct {
	Feature string      `json:"feature"`
	Label   string      `json:"label"`
	Kind    ControlKind `json:"kind"`
	Integer bool        `json:"integer,omitempty"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Default float64     `json:"default"`
	Step    float64     `json:"step,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// DefaultOption is the value a select control starts with
func (c Control) DefaultOption() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[0]
}

// InRange reports whether v lies within the control's inclusive bounds
func (c Control) InRange(v float64) bool {
	return v >= c.Min && v <= c.Max
}

// StudentHabitsControls lists the page inputs in display order
var StudentHabitsControls = []Control{
	{Feature: "age", Label: "Age", Kind: ControlSlider, Integer: true, Min: 16, Max: 30, Default: 21, Step: 1},
	{Feature: "gender", Label: "Gender", Kind: ControlSelect},
	{Feature: "study_hours_per_day", Label: "Study Hours per Day", Kind: ControlNumber, Min: 0, Max: 12, Default: 3, Step: 0.01},
	{Feature: "social_media_hours", Label: "Social Media Hours", Kind: ControlNumber, Min: 0, Max: 10, Default: 2, Step: 0.01},
	{Feature: "netflix_hours", Label: "Netflix Hours", Kind: ControlNumber, Min: 0, Max: 10, Default: 1, Step: 0.01},
	{Feature: "part_time_job", Label: "Part-time Job", Kind: ControlSelect},
	{Feature: "attendance_percentage", Label: "Attendance (%)", Kind: ControlSlider, Min: 0, Max: 100, Default: 85, Step: 0.01},
	{Feature: "sleep_hours", Label: "Sleep Hours", Kind: ControlNumber, Min: 0, Max: 12, Default: 7, Step: 0.01},
	{Feature: "diet_quality", Label: "Diet Quality", Kind: ControlSelect},
	{Feature: "exercise_frequency", Label: "Exercise Frequency (per week)", Kind: ControlSlider, Integer: true, Min: 0, Max: 14, Default: 3, Step: 1},
	{Feature: "parental_education_level", Label: "Parental Education Level", Kind: ControlSelect},
	{Feature: "internet_quality", Label: "Internet Quality", Kind: ControlSelect},
	{Feature: "mental_health_rating", Label: "Mental Health Rating (1–10)", Kind: ControlSlider, Integer: true, Min: 1, Max: 10, Default: 5, Step: 1},
	{Feature: "extracurricular_participation", Label: "Extracurricular Participation", Kind: ControlSelect},
}
