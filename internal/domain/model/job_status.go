package model

import "job-tracker/internal/domain"

type JobStatus string

const (
	JobStatusApplied   JobStatus = "Applied"
	JobStatusInterview JobStatus = "Interview"
	JobStatusOffer     JobStatus = "Offer"
	JobStatusRejected  JobStatus = "Rejected"
)

// JobStatuses lists every status in display order.
var JobStatuses = []JobStatus{
	JobStatusApplied,
	JobStatusInterview,
	JobStatusOffer,
	JobStatusRejected,
}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusApplied, JobStatusInterview, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

// ParseJobStatus matches the enum exactly; "applied" is rejected.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(raw)
	if !s.IsValid() {
		return "", domain.NewValidationError("Invalid status value")
	}
	return s, nil
}
