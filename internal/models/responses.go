package models

import "time"

// PredictRequest is the body of POST /api/predict
type PredictRequest struct {
	Features map[string]interface{} `json:"features"`
}

// PredictionResponse is returned by /api/predict
type PredictionResponse struct {
	ID         string  `json:"id"`
	Prediction float64 `json:"prediction"`
	Raw        float64 `json:"raw"`
	Clamped    bool    `json:"clamped"`
	Display    string  `json:"display"`
}

// SchemaResponse is returned by /api/schema
type SchemaResponse struct {
	Columns  []Column  `json:"columns"`
	Controls []Control `json:"controls"`
}

// Coefficient is one learned weight of the linear model
type Coefficient struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// ModelInfo is returned by /api/model
type ModelInfo struct {
	Source       string        `json:"source"`
	TrainingRows int           `json:"training_rows"`
	Intercept    float64       `json:"intercept"`
	Coefficients []Coefficient `json:"coefficients"`
	R2           float64       `json:"r2"`
	ClampPolicy  string        `json:"clamp_policy"`
	FittedAt     time.Time     `json:"fitted_at"`
}

// ColumnProfile summarizes one dataset column
type ColumnProfile struct {
	Name          string     `json:"name"`
	Kind          ColumnKind `json:"kind"`
	TotalRows     int        `json:"total_rows"`
	DistinctCount int        `json:"distinct_count"`
	Entropy       float64    `json:"entropy,omitempty"`
	Min           *float64   `json:"min,omitempty"`
	Max           *float64   `json:"max,omitempty"`
	Mean          *float64   `json:"mean,omitempty"`
	Median        *float64   `json:"median,omitempty"`
	StdDev        *float64   `json:"std_dev,omitempty"`
	// Pearson correlation with the target, numeric features only
	TargetCorrelation *float64 `json:"target_correlation,omitempty"`
	// Normalized mutual information with the binned target, categorical
	// features only
	TargetMutualInfo *float64       `json:"target_mutual_info,omitempty"`
	Domain           []string       `json:"domain,omitempty"`
	Counts           map[string]int `json:"counts,omitempty"`
}

// DatasetProfile is returned by /api/dataset/summary
type DatasetProfile struct {
	Source  string          `json:"source"`
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// ErrorResponse is the JSON body of a failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}
