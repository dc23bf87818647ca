package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-score-predictor/internal/dataset"
	"student-score-predictor/internal/metrics"
	"student-score-predictor/internal/models"
	"student-score-predictor/internal/pipeline"
	"student-score-predictor/internal/service"
	"student-score-predictor/internal/testutil"
)

func setupRouter(t *testing.T) (*chi.Mux, *service.Predictor) {
	t.Helper()
	path := testutil.WriteFile(t, "students.csv", testutil.StudentHabitsCSV(200, 9))
	p := service.NewPredictor(models.StudentHabitsSchema, models.StudentHabitsControls,
		dataset.NewCSVSource(path), service.ClampNone, metrics.New())
	require.NoError(t, p.Train(context.Background()))

	r := chi.NewRouter()
	NewHandler(p).RegisterRoutes(r)
	return r, p
}

func defaultFeatures(t *testing.T, p *service.Predictor) map[string]interface{} {
	t.Helper()
	row, err := p.RowFromForm(url.Values{})
	require.NoError(t, err)
	features := map[string]interface{}{}
	for k, v := range row {
		features[k] = v
	}
	return features
}

func postJSON(r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestIndexRendersDefaults(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "<h1>Student Exam Score Predictor</h1>")
	assert.Contains(t, body, "Predicted Exam Score")
	assert.Regexp(t, `<p id="prediction">-?\d+\.\d{2} out of 100</p>`, body)
	assert.Contains(t, body, `<option value="Female" selected>`)
	assert.Contains(t, body, `name="age" min="16" max="30" step="1" value="21"`)
	assert.Contains(t, body, `name="study_hours_per_day" min="0" max="12" step="0.01" value="3.00"`)
	assert.Equal(t, 14, strings.Count(body, "<label for="))
}

func TestIndexKeepsSubmittedValues(t *testing.T) {
	r, _ := setupRouter(t)

	w := postForm(r, url.Values{"gender": {"Male"}, "sleep_hours": {"8.5"}})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<option value="Male" selected>`)
	assert.Contains(t, body, `value="8.5"`)
	assert.Contains(t, body, "out of 100")
}

func TestIndexRejectsOutOfRange(t *testing.T) {
	r, _ := setupRouter(t)

	w := postForm(r, url.Values{"age": {"99"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Age must be between 16 and 30")
	assert.NotContains(t, w.Body.String(), `id="prediction"`)
}

func TestIndexUnknownCategory(t *testing.T) {
	r, _ := setupRouter(t)

	w := postForm(r, url.Values{"diet_quality": {"Excellent"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "unknown category")
}

func TestPredictJSON(t *testing.T) {
	r, p := setupRouter(t)

	w := postJSON(r, "/api/predict", models.PredictRequest{Features: defaultFeatures(t, p)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.PredictionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.Clamped)
	assert.Equal(t, resp.Raw, resp.Prediction)
	assert.Equal(t, fmt.Sprintf("%.2f out of 100", resp.Prediction), resp.Display)
}

func TestPredictJSONMatchesPage(t *testing.T) {
	r, p := setupRouter(t)

	row, err := p.RowFromForm(url.Values{})
	require.NoError(t, err)
	direct, err := p.Predict(row)
	require.NoError(t, err)

	w := postJSON(r, "/api/predict", models.PredictRequest{Features: defaultFeatures(t, p)})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PredictionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, direct.Value, resp.Prediction, 1e-9)
}

func TestPredictJSONErrors(t *testing.T) {
	r, p := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/predict", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	features := defaultFeatures(t, p)
	delete(features, "gender")
	w = postJSON(r, "/api/predict", models.PredictRequest{Features: features})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Contains(t, errResp.Error, "gender")

	features = defaultFeatures(t, p)
	features["internet_quality"] = "Fiber"
	w = postJSON(r, "/api/predict", models.PredictRequest{Features: features})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	features = defaultFeatures(t, p)
	features["exercise_frequency"] = 15
	w = postJSON(r, "/api/predict", models.PredictRequest{Features: features})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	features = defaultFeatures(t, p)
	features["mental_health_rating"] = true
	w = postJSON(r, "/api/predict", models.PredictRequest{Features: features})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSchema(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schema", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SchemaResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Columns, 16)
	require.Len(t, resp.Controls, 14)
	assert.Equal(t, []string{"Female", "Male", "Other"}, resp.Controls[1].Options)
}

func TestGetSchemaKeepsZeroBounds(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schema", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var raw struct {
		Controls []map[string]interface{} `json:"controls"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))

	byFeature := map[string]map[string]interface{}{}
	for _, c := range raw.Controls {
		byFeature[c["feature"].(string)] = c
	}
	for _, name := range []string{"study_hours_per_day", "social_media_hours", "netflix_hours", "attendance_percentage", "sleep_hours", "exercise_frequency"} {
		c := byFeature[name]
		require.Contains(t, c, "min", name)
		assert.Equal(t, 0.0, c["min"], name)
	}
	assert.Equal(t, 12.0, byFeature["study_hours_per_day"]["max"])
	assert.Equal(t, 3.0, byFeature["study_hours_per_day"]["default"])
	assert.Contains(t, w.Body.String(), `"feature":"study_hours_per_day","label":"Study Hours per Day","kind":"number","min":0`)
}

func TestGetModelAndReload(t *testing.T) {
	r, p := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/model", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var before models.ModelInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&before))
	controls, err := p.Controls()
	require.NoError(t, err)
	width := 0
	for _, c := range controls {
		if c.Kind == models.ControlSelect {
			width += len(c.Options) - 1
		} else {
			width++
		}
	}
	assert.Len(t, before.Coefficients, width)
	assert.Equal(t, 200, before.TrainingRows)
	assert.Equal(t, "none", before.ClampPolicy)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/model/reload", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var after models.ModelInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&after))
	assert.Equal(t, before.Coefficients, after.Coefficients)
	assert.Equal(t, before.Intercept, after.Intercept)
}

func TestGetDatasetSummary(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dataset/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DatasetProfile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 200, resp.Rows)
	assert.Len(t, resp.Columns, 16)
}

func TestUntrainedPredictorIsUnavailable(t *testing.T) {
	p := service.NewPredictor(models.StudentHabitsSchema, models.StudentHabitsControls,
		dataset.NewCSVSource("missing.csv"), service.ClampNone, metrics.New())
	r := chi.NewRouter()
	NewHandler(p).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/model", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/model/reload", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("wrap: %w", service.ErrOutOfRange):        http.StatusBadRequest,
		fmt.Errorf("wrap: %w", service.ErrInvalidInput):      http.StatusBadRequest,
		fmt.Errorf("wrap: %w", pipeline.ErrInvalidValue):     http.StatusBadRequest,
		fmt.Errorf("wrap: %w", pipeline.ErrUnknownCategory):  http.StatusUnprocessableEntity,
		fmt.Errorf("wrap: %w", pipeline.ErrMissingColumn):    http.StatusUnprocessableEntity,
		fmt.Errorf("wrap: %w", pipeline.ErrUnexpectedColumn): http.StatusUnprocessableEntity,
		service.ErrNotTrained:                                http.StatusServiceUnavailable,
		fmt.Errorf("disk on fire"):                           http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
