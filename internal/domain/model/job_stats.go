package model

import "time"

// StatusCounts uses "pending" for the Applied bucket; clients depend on that key.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Interview int `json:"interview"`
	Offer     int `json:"offer"`
	Rejected  int `json:"rejected"`
}

// NewStatusCounts folds a per-status count map into buckets. Missing
// statuses count as zero.
func NewStatusCounts(byStatus map[JobStatus]int) StatusCounts {
	return StatusCounts{
		Pending:   byStatus[JobStatusApplied],
		Interview: byStatus[JobStatusInterview],
		Offer:     byStatus[JobStatusOffer],
		Rejected:  byStatus[JobStatusRejected],
	}
}

// RecentApplication is the projection of the most recently dated job.
type RecentApplication struct {
	JobTitle        string    `json:"jobTitle"`
	Company         string    `json:"company"`
	Status          JobStatus `json:"status"`
	ApplicationDate time.Time `json:"applicationDate"`
}

type JobStats struct {
	TotalJobs         int                `json:"totalJobs"`
	StatusCounts      StatusCounts       `json:"statusCounts"`
	RecentApplication *RecentApplication `json:"recentApplication"`
}
