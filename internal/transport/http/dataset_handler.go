package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "estatcli/internal/errors"
	"estatcli/internal/services"
)

// DatasetHandler serves the dataset listing and cleaning endpoints.
type DatasetHandler struct {
	service   *services.DatasetService
	logger    *slog.Logger
	errors    *apierrors.ErrorHandler
	validator *validator.Validate
}

// NewDatasetHandler creates a handler backed by the dataset service.
func NewDatasetHandler(service *services.DatasetService, logger *slog.Logger) *DatasetHandler {
	return &DatasetHandler{
		service:   service,
		logger:    logger,
		errors:    apierrors.NewErrorHandler(logger, false),
		validator: validator.New(),
	}
}

// Routes returns the dataset route tree.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/clean", h.Clean)
	r.Get("/{dataset}/aggregates", h.Aggregates)
	r.Get("/flags", h.Flags)
	return r
}

// List handles GET /api/datasets.
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.ListDatasets(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, apierrors.FileSystemError("list datasets", err))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"datasets": infos,
		"count":    len(infos),
	})
}

// Clean handles POST /api/datasets/clean.
func (h *DatasetHandler) Clean(w http.ResponseWriter, r *http.Request) {
	var req services.CleanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errors.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errors.HandleError(w, r, apierrors.ErrValidation("dataset", "dataset name is required"))
		return
	}

	resp, err := h.service.Clean(r.Context(), req)
	if err != nil {
		h.errors.HandleError(w, r, h.classifyCleanError(req.Dataset, err))
		return
	}
	render.JSON(w, r, resp)
}

// Aggregates handles GET /api/datasets/{dataset}/aggregates. It runs the
// pipeline without writing reports and returns only the statistics.
func (h *DatasetHandler) Aggregates(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")

	resp, err := h.service.Aggregate(r.Context(), dataset)
	if err != nil {
		h.errors.HandleError(w, r, h.classifyCleanError(dataset, err))
		return
	}
	render.JSON(w, r, resp)
}

// Flags handles GET /api/datasets/flags.
func (h *DatasetHandler) Flags(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"flags": h.service.Flags(),
	})
}

func (h *DatasetHandler) classifyCleanError(dataset string, err error) error {
	switch {
	case os.IsNotExist(err) || strings.Contains(err.Error(), "not found"):
		return apierrors.DatasetNotFoundError(dataset)
	case strings.Contains(err.Error(), "invalid dataset name"):
		return apierrors.ErrValidation("dataset", err.Error())
	case strings.Contains(err.Error(), "period"):
		return apierrors.MalformedDatasetError(err)
	default:
		return apierrors.CleanFailedError(err)
	}
}
