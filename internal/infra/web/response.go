package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/infra/logging"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Field   string            `json:"field,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func views(jobs []*model.Job, now time.Time) []model.JobView {
	out := make([]model.JobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.View(now))
	}
	return out
}

func (s *Server) notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "Job not found"})
}

// writeError maps use case errors onto status codes and bodies. Anything
// unrecognised is logged and answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr *domain.ValidationError
		cErr *domain.ConflictError
	)
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: vErr.Message, Errors: vErr.Fields})
	case errors.As(err, &cErr):
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Duplicate value for " + cErr.Field, Field: cErr.Field})
	case errors.Is(err, domain.ErrNotFound):
		s.notFound(w)
	case errors.Is(err, errBadBody):
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Invalid request body"})
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		body := envelope{Success: false, Message: "Server Error"}
		if s.opts.Dev {
			body.Error = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
