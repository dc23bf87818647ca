package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"student-score-predictor/internal/models"
	"student-score-predictor/internal/pipeline"
	"student-score-predictor/internal/service"
)

type Handler struct {
	Predictor *service.Predictor
}

func NewHandler(predictor *service.Predictor) *Handler {
	return &Handler{Predictor: predictor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	// Predictor page
	r.Get("/", h.Index)
	r.Post("/", h.Index)

	// JSON API
	r.Post("/api/predict", h.Predict)
	r.Get("/api/schema", h.GetSchema)
	r.Get("/api/model", h.GetModel)
	r.Post("/api/model/reload", h.ReloadModel)
	r.Get("/api/dataset/summary", h.GetDatasetSummary)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Page
// ============================================================================

// Index renders the form and the prediction for the submitted (or default)
// control values
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	controls, err := h.Predictor.Controls()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	data := pageData{
		Title:  pageTitle,
		Fields: buildFields(controls, r.Form),
	}

	status := http.StatusOK
	pred, err := h.predictForm(r)
	if err != nil {
		status = statusFor(err)
		data.Error = err.Error()
		slog.Warn("prediction rejected", "error", err, "status", status)
	} else {
		data.Result = pred.Display()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("render page", "error", err)
	}
}

func (h *Handler) predictForm(r *http.Request) (service.Prediction, error) {
	row, err := h.Predictor.RowFromForm(r.Form)
	if err != nil {
		return service.Prediction{}, err
	}
	return h.Predictor.Predict(row)
}

// ============================================================================
// JSON API
// ============================================================================

// Predict scores the feature object in the request body
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Features) == 0 {
		renderError(w, r, http.StatusBadRequest, "features is required")
		return
	}

	row, err := h.Predictor.RowFromFeatures(req.Features)
	if err != nil {
		renderError(w, r, statusFor(err), err.Error())
		return
	}
	pred, err := h.Predictor.Predict(row)
	if err != nil {
		renderError(w, r, statusFor(err), err.Error())
		return
	}

	render.JSON(w, r, models.PredictionResponse{
		ID:         pred.ID,
		Prediction: pred.Value,
		Raw:        pred.Raw,
		Clamped:    pred.Clamped,
		Display:    pred.Display(),
	})
}

// GetSchema returns the declared columns and the bound controls
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	controls, err := h.Predictor.Controls()
	if err != nil {
		renderError(w, r, statusFor(err), err.Error())
		return
	}
	render.JSON(w, r, models.SchemaResponse{
		Columns:  h.Predictor.Schema().Columns,
		Controls: controls,
	})
}

// GetModel returns the fitted coefficients
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	info, err := h.Predictor.ModelInfo()
	if err != nil {
		renderError(w, r, statusFor(err), err.Error())
		return
	}
	render.JSON(w, r, info)
}

// ReloadModel reloads the dataset and refits the pipeline
func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	if err := h.Predictor.Train(r.Context()); err != nil {
		slog.Error("reload model", "error", err)
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	h.GetModel(w, r)
}

// GetDatasetSummary profiles the training dataset
func (h *Handler) GetDatasetSummary(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Predictor.Profile()
	if err != nil {
		renderError(w, r, statusFor(err), err.Error())
		return
	}
	render.JSON(w, r, profile)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, models.ErrorResponse{Error: msg})
}

// statusFor maps predictor and pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrOutOfRange),
		errors.Is(err, pipeline.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrUnknownCategory),
		errors.Is(err, pipeline.ErrMissingColumn),
		errors.Is(err, pipeline.ErrUnexpectedColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotTrained):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
