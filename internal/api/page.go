package api

import (
	"embed"
	"html/template"
	"net/url"
	"strings"

	"student-score-predictor/internal/models"
	"student-score-predictor/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

const pageTitle = "Student Exam Score Predictor"

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Title  string
	Fields []fieldView
	Result string
	Error  string
}

type fieldView struct {
	models.Control
	IsSelect bool
	IsSlider bool
	Value    string
	Choices  []choiceView
}

type choiceView struct {
	Value    string
	Selected bool
}

// buildFields pairs every control with the submitted value, falling back to
// the control default
func buildFields(controls []models.Control, form url.Values) []fieldView {
	fields := make([]fieldView, len(controls))
	for i, c := range controls {
		value := strings.TrimSpace(form.Get(c.Feature))
		f := fieldView{
			Control:  c,
			IsSelect: c.Kind == models.ControlSelect,
			IsSlider: c.Kind == models.ControlSlider,
		}

		if f.IsSelect {
			if value == "" {
				value = c.DefaultOption()
			}
			for _, opt := range c.Options {
				f.Choices = append(f.Choices, choiceView{Value: opt, Selected: opt == value})
			}
		} else if value == "" {
			value = service.FormatControlValue(c, c.Default)
		}

		f.Value = value
		fields[i] = f
	}
	return fields
}
