package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wolfman30/consulting-site/pkg/logging"
)

const maxBodyBytes = 64 << 10

// Handler serves the JSON contact endpoint used by the browser script.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a contact API handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// SubmitResponse is returned by POST /api/contact.
type SubmitResponse struct {
	Status  Status   `json:"status"`
	Form    FormData `json:"form"`
	Missing []Field  `json:"missing,omitempty"`
}

// Submit handles POST /api/contact requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var form FormData
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.Warn("failed to decode contact submission", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if missing := form.Missing(); len(missing) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, SubmitResponse{
			Status:  StatusIdle,
			Form:    form,
			Missing: missing,
		})
		return
	}

	ctrl := h.service.NewForm(form)
	status, err := ctrl.Submit(r.Context())
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("contact submission refused", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, HTTPStatus(status), SubmitResponse{
		Status: status,
		Form:   ctrl.Form(),
	})
}

// HTTPStatus maps a terminal submission status onto a response code.
func HTTPStatus(status Status) int {
	switch status {
	case StatusSuccess:
		return http.StatusOK
	case StatusConfigError:
		return http.StatusServiceUnavailable
	case StatusError:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
