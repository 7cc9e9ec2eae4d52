package web

import (
	"context"
	"net/http"

	"job-tracker/internal/infra/logging"
)

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.usedAlias() {
		logging.With(r.Context(), s.log).Debug().Msg("create: capitalised Location/Note keys accepted")
	}

	job, err := s.jobUC.Create(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	logging.With(logging.WithJobID(r.Context(), job.ID), s.log).Info().Str("company", job.Company).Msg("job created")
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: "Job created successfully", Data: job.View(s.now())})
}

// listJobs answers with a bare array, not an envelope.
func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobUC.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views(jobs, s.now()))
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	ctx, id := s.withJobID(r)
	job, err := s.jobUC.Get(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job.View(s.now()))
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	id, wellFormed := jobIDParam(r)
	ctx := logging.WithJobID(r.Context(), id)
	var req jobRequest
	if err := decodeBody(w, r, &req); err != nil {
		// an unknown record is reported ahead of an unreadable body
		if wellFormed {
			if _, getErr := s.jobUC.Get(ctx, id); getErr != nil {
				err = getErr
			}
		}
		s.writeError(w, r, err)
		return
	}
	if req.usedAlias() {
		logging.With(ctx, s.log).Debug().Msg("update: capitalised Location/Note keys accepted")
	}

	job, err := s.jobUC.Update(ctx, id, req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Job updated successfully", Data: job.View(s.now())})
}

func (s *Server) updateJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, id := s.withJobID(r)
	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.jobUC.UpdateStatus(ctx, id, req.status())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	logging.With(ctx, s.log).Info().Str("status", string(job.Status)).Msg("job status changed")
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Job status updated successfully", Data: job.View(s.now())})
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	ctx, id := s.withJobID(r)
	if err := s.jobUC.Delete(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	logging.With(ctx, s.log).Info().Msg("job deleted")
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Job deleted successfully"})
}

func (s *Server) jobStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsUC.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: stats})
}

func (s *Server) withJobID(r *http.Request) (context.Context, string) {
	id, _ := jobIDParam(r)
	return logging.WithJobID(r.Context(), id), id
}
