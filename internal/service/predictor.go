package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"student-score-predictor/internal/analysis"
	"student-score-predictor/internal/dataset"
	"student-score-predictor/internal/metrics"
	"student-score-predictor/internal/models"
	"student-score-predictor/internal/pipeline"
)

var (
	ErrNotTrained   = errors.New("predictor has no fitted model")
	ErrInvalidInput = errors.New("invalid input")
	ErrOutOfRange   = errors.New("value out of range")
)

// Prediction is one scored row
type Prediction struct {
	ID      string
	Value   float64
	Raw     float64
	Clamped bool
}

// Display renders the prediction the way the page shows it
func (p Prediction) Display() string {
	return FormatScore(p.Value)
}

// FormatScore formats a predicted exam score
func FormatScore(v float64) string {
	return fmt.Sprintf("%.2f out of 100", v)
}

// FormatControlValue renders a numeric control value for a form field
func FormatControlValue(c models.Control, v float64) string {
	if c.Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type trainedModel struct {
	frame    *dataset.Frame
	pipeline *pipeline.Pipeline
	controls []models.Control
	r2       float64
	fittedAt time.Time
}

// Predictor owns the fitted pipeline and turns control values into scores
type Predictor struct {
	schema   models.Schema
	controls []models.Control
	source   dataset.Source
	clamp    ClampPolicy
	metrics  *metrics.Metrics
	profiler *analysis.Profiler

	mu    sync.RWMutex
	model *trainedModel
}

func NewPredictor(schema models.Schema, controls []models.Control, source dataset.Source, clamp ClampPolicy, m *metrics.Metrics) *Predictor {
	return &Predictor{
		schema:   schema,
		controls: controls,
		source:   source,
		clamp:    clamp,
		metrics:  m,
		profiler: analysis.NewProfiler(),
	}
}

// Train loads the dataset from the source, fits the pipeline and swaps it
// in. On failure the previous model, if any, stays in place.
func (p *Predictor) Train(ctx context.Context) error {
	start := time.Now()
	model, err := p.fit(ctx)
	p.metrics.FitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.Fits.WithLabelValues("error").Inc()
		return err
	}
	p.metrics.Fits.WithLabelValues("ok").Inc()
	p.metrics.TrainingRows.Set(float64(model.frame.Len()))
	p.metrics.ModelR2.Set(model.r2)

	p.mu.Lock()
	p.model = model
	p.mu.Unlock()

	slog.Info("model fitted",
		"source", model.frame.Source(),
		"rows", model.frame.Len(),
		"features", len(model.pipeline.FeatureNames()),
		"r2", model.r2,
		"duration", time.Since(start).String(),
	)
	return nil
}

func (p *Predictor) fit(ctx context.Context) (*trainedModel, error) {
	if err := p.schema.Validate(); err != nil {
		return nil, err
	}
	frame, err := p.source.Load(ctx, p.schema)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	controls, err := p.bindControls(frame)
	if err != nil {
		return nil, err
	}
	pl, err := pipeline.Fit(frame, frame.PipelineSpec())
	if err != nil {
		return nil, err
	}
	r2, err := pl.Score(frame)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	return &trainedModel{
		frame:    frame,
		pipeline: pl,
		controls: controls,
		r2:       r2,
		fittedAt: time.Now(),
	}, nil
}

// bindControls fills select options from the data and checks that the
// controls cover exactly the schema's features
func (p *Predictor) bindControls(frame *dataset.Frame) ([]models.Control, error) {
	features := make(map[string]models.ColumnKind)
	for _, c := range p.schema.Features() {
		features[c.Name] = c.Kind
	}

	bound := make([]models.Control, len(p.controls))
	for i, c := range p.controls {
		kind, ok := features[c.Feature]
		if !ok {
			return nil, fmt.Errorf("control %q is not a schema feature", c.Feature)
		}
		delete(features, c.Feature)

		if (c.Kind == models.ControlSelect) != (kind == models.KindCategorical) {
			return nil, fmt.Errorf("control %q (%s) does not fit a %s feature", c.Feature, c.Kind, kind)
		}
		if c.Kind == models.ControlSelect {
			domain, err := frame.Domain(c.Feature)
			if err != nil {
				return nil, err
			}
			c.Options = domain
		}
		bound[i] = c
	}
	if len(features) > 0 {
		missing := make([]string, 0, len(features))
		for name := range features {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("features without a control: %s", strings.Join(missing, ", "))
	}
	return bound, nil
}

func (p *Predictor) current() (*trainedModel, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.model == nil {
		return nil, ErrNotTrained
	}
	return p.model, nil
}

// Controls returns the page controls with their options bound
func (p *Predictor) Controls() ([]models.Control, error) {
	m, err := p.current()
	if err != nil {
		return nil, err
	}
	return m.controls, nil
}

// Schema returns the declared dataset schema
func (p *Predictor) Schema() models.Schema {
	return p.schema
}

// RowFromForm builds a row from form values. Missing values take the
// control default.
func (p *Predictor) RowFromForm(values url.Values) (pipeline.Row, error) {
	controls, err := p.Controls()
	if err != nil {
		return nil, err
	}

	row := pipeline.Row{}
	for _, c := range controls {
		raw := strings.TrimSpace(values.Get(c.Feature))
		if c.Kind == models.ControlSelect {
			if raw == "" {
				raw = c.DefaultOption()
			}
			row[c.Feature] = raw
			continue
		}
		if raw == "" {
			row[c.Feature] = c.Default
			continue
		}
		v, err := p.numeric(c, raw)
		if err != nil {
			return nil, err
		}
		row[c.Feature] = v
	}
	return row, nil
}

// RowFromFeatures builds a row from a JSON feature object. Every feature
// must be present; unknown keys are passed on and rejected by the pipeline.
func (p *Predictor) RowFromFeatures(features map[string]interface{}) (pipeline.Row, error) {
	controls, err := p.Controls()
	if err != nil {
		return nil, err
	}
	byFeature := make(map[string]models.Control, len(controls))
	for _, c := range controls {
		byFeature[c.Feature] = c
	}

	row := pipeline.Row{}
	for name, value := range features {
		c, ok := byFeature[name]
		if !ok || c.Kind == models.ControlSelect {
			row[name] = value
			continue
		}
		v, err := p.numeric(c, value)
		if err != nil {
			return nil, err
		}
		row[name] = v
	}
	return row, nil
}

func (p *Predictor) numeric(c models.Control, value interface{}) (float64, error) {
	if _, ok := value.(bool); ok {
		p.metrics.Predictions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return 0, fmt.Errorf("%w: %s must be a number, got %v", ErrInvalidInput, c.Label, value)
	}
	v, err := cast.ToFloat64E(value)
	if err != nil {
		p.metrics.Predictions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, c.Label, err)
	}
	if math.IsNaN(v) || !c.InRange(v) {
		p.metrics.Predictions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return 0, fmt.Errorf("%w: %s must be between %g and %g", ErrOutOfRange, c.Label, c.Min, c.Max)
	}
	if c.Integer && v != math.Trunc(v) {
		p.metrics.Predictions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrInvalidInput, c.Label)
	}
	return v, nil
}

// Predict scores one row with the current model and applies the clamp policy
func (p *Predictor) Predict(row pipeline.Row) (Prediction, error) {
	m, err := p.current()
	if err != nil {
		return Prediction{}, err
	}

	raw, err := m.pipeline.PredictRow(row)
	if err != nil {
		p.metrics.Predictions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return Prediction{}, err
	}

	value, clamped := p.clamp.Apply(raw)
	outcome := metrics.OutcomeOK
	if clamped {
		outcome = metrics.OutcomeClamped
	}
	p.metrics.Predictions.WithLabelValues(outcome).Inc()

	return Prediction{
		ID:      uuid.NewString(),
		Value:   value,
		Raw:     raw,
		Clamped: clamped,
	}, nil
}

// ModelInfo describes the current model
func (p *Predictor) ModelInfo() (models.ModelInfo, error) {
	m, err := p.current()
	if err != nil {
		return models.ModelInfo{}, err
	}

	weights := m.pipeline.Weights()
	coefs := make([]models.Coefficient, len(weights))
	for i, w := range weights {
		coefs[i] = models.Coefficient{Feature: w.Feature, Weight: w.Value}
	}

	return models.ModelInfo{
		Source:       m.frame.Source(),
		TrainingRows: m.frame.Len(),
		Intercept:    m.pipeline.Model.Intercept,
		Coefficients: coefs,
		R2:           m.r2,
		ClampPolicy:  string(p.clamp),
		FittedAt:     m.fittedAt,
	}, nil
}

// Profile summarizes the dataset the current model was fitted on
func (p *Predictor) Profile() (models.DatasetProfile, error) {
	m, err := p.current()
	if err != nil {
		return models.DatasetProfile{}, err
	}
	return p.profiler.Profile(m.frame)
}
