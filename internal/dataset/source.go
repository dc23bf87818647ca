package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"

	"student-score-predictor/internal/models"
)

// Source loads a training frame
type Source interface {
	Name() string
	Load(ctx context.Context, schema models.Schema) (*Frame, error)
}

// ReadCSV parses CSV with a header row into a frame checked against schema
func ReadCSV(r io.Reader, schema models.Schema, source string) (*Frame, error) {
	df := dataframe.ReadCSV(r, loadOptions(schema)...)
	return newFrame(df, schema, source)
}

// CSVSource reads the dataset from a file
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the CSV file at path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// Load opens and parses the file
func (s *CSVSource) Load(ctx context.Context, schema models.Schema) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, schema, s.Name())
}
