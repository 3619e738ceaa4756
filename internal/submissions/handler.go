package submissions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/consulting-site/pkg/logging"
)

// Handler serves the operator submission log.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new submissions handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListResponse is the response for listing submissions
type ListResponse struct {
	Submissions []*Submission `json:"submissions"`
	Count       int           `json:"count"`
	Offset      int           `json:"offset"`
	Limit       int           `json:"limit"`
}

// List handles GET /admin/submissions requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
		Status: r.URL.Query().Get("status"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	items, err := h.repo.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to list submissions", "error", err)
		http.Error(w, "failed to list submissions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ListResponse{
		Submissions: items,
		Count:       len(items),
		Offset:      filter.Offset,
		Limit:       filter.Limit,
	})
}

// Get handles GET /admin/submissions/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load submission", "error", err, "id", id)
		http.Error(w, "failed to load submission", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}
