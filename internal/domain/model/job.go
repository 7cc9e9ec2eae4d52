package model

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"job-tracker/internal/domain"

	"github.com/google/uuid"
)

const (
	MaxNoteLength     = 500
	MaxPositionLength = 100

	formattedDateLayout = "Jan 2, 2006"
)

// jobLinkPattern accepts scheme-optional http(s) links with a dotted host.
var jobLinkPattern = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

// Job is one tracked job application.
type Job struct {
	ID              string
	JobTitle        string
	ApplicationDate time.Time
	JobLink         string
	Location        string
	Note            string
	Company         string
	Position        string
	Status          JobStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// JobInput carries caller-supplied fields. Nil pointers mean the field was
// not supplied, which matters for update's merge semantics.
type JobInput struct {
	JobTitle        string
	Company         string
	Position        string
	ApplicationDate *string
	JobLink         *string
	Location        *string
	Note            *string
	Status          *string
	// CastErrors holds per-field messages for values that could not be
	// read as text at all.
	CastErrors map[string]string
}

// NewJob validates input and constructs a Job with defaults applied.
func NewJob(in JobInput, now time.Time) (*Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	j := &Job{
		ID:              uuid.NewString(),
		ApplicationDate: now,
		Status:          JobStatusApplied,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	in.applyTo(j)
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// Merge applies in onto j. Required fields are always overwritten; optional
// ones only when supplied.
func (j *Job) Merge(in JobInput, now time.Time) error {
	if err := in.validate(); err != nil {
		return err
	}
	merged := *j
	in.applyTo(&merged)
	if err := merged.Validate(); err != nil {
		return err
	}
	merged.UpdatedAt = now
	*j = merged
	return nil
}

// SetStatus changes the status. Any status may move to any other status.
func (j *Job) SetStatus(raw string, now time.Time) error {
	s, err := ParseJobStatus(raw)
	if err != nil {
		return err
	}
	j.Status = s
	j.UpdatedAt = now
	return nil
}

// Validate checks the schema rules on an assembled record.
func (j *Job) Validate() error {
	fields := map[string]string{}
	if j.JobTitle == "" {
		fields["jobTitle"] = "Path `jobTitle` is required."
	}
	if j.Company == "" {
		fields["company"] = "Path `company` is required."
	}
	if j.Position == "" {
		fields["position"] = "Path `position` is required."
	} else if utf8.RuneCountInString(j.Position) > MaxPositionLength {
		fields["position"] = "Position cannot exceed 100 characters"
	}
	if utf8.RuneCountInString(j.Note) > MaxNoteLength {
		fields["note"] = "Note cannot exceed 500 characters"
	}
	if !IsValidJobLink(j.JobLink) {
		fields["jobLink"] = j.JobLink + " is not a valid URL!"
	}
	if !j.Status.IsValid() {
		fields["status"] = "`" + string(j.Status) + "` is not a valid enum value for path `status`."
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "Validation failed", Fields: fields}
	}
	return nil
}

// IsValidJobLink reports whether v is empty or URL-shaped.
func IsValidJobLink(v string) bool {
	return v == "" || jobLinkPattern.MatchString(v)
}

// FormattedDate renders ApplicationDate in server local time, e.g. "Mar 7, 2025".
func (j *Job) FormattedDate() string {
	return j.ApplicationDate.Local().Format(formattedDateLayout)
}

// DaysSinceApplication is the absolute distance to ApplicationDate in whole
// days, rounded up.
func (j *Job) DaysSinceApplication(now time.Time) int {
	d := now.Sub(j.ApplicationDate)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// JobView is the serialized form of a Job, including derived fields.
type JobView struct {
	MongoID              string    `json:"_id"`
	ID                   string    `json:"id"`
	JobTitle             string    `json:"jobTitle"`
	ApplicationDate      time.Time `json:"applicationDate"`
	JobLink              string    `json:"jobLink,omitempty"`
	Location             string    `json:"location,omitempty"`
	Note                 string    `json:"note,omitempty"`
	Company              string    `json:"company"`
	Position             string    `json:"position"`
	Status               JobStatus `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	FormattedDate        string    `json:"formattedDate"`
	DaysSinceApplication int       `json:"daysSinceApplication"`
}

// View computes the serialized form relative to now.
func (j *Job) View(now time.Time) JobView {
	return JobView{
		MongoID:              j.ID,
		ID:                   j.ID,
		JobTitle:             j.JobTitle,
		ApplicationDate:      j.ApplicationDate,
		JobLink:              j.JobLink,
		Location:             j.Location,
		Note:                 j.Note,
		Company:              j.Company,
		Position:             j.Position,
		Status:               j.Status,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
		FormattedDate:        j.FormattedDate(),
		DaysSinceApplication: j.DaysSinceApplication(now),
	}
}

func (j Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.View(time.Now()))
}

func (in *JobInput) validate() error {
	if len(in.CastErrors) > 0 {
		return &domain.ValidationError{Message: "Validation failed", Fields: in.CastErrors}
	}
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)
	if in.JobTitle == "" || in.Company == "" || in.Position == "" {
		return domain.NewValidationError("Job Title, Company and Position are required.")
	}
	if in.Status != nil && *in.Status != "" {
		if _, err := ParseJobStatus(*in.Status); err != nil {
			return err
		}
	}
	if in.ApplicationDate != nil && *in.ApplicationDate != "" {
		if _, err := ParseApplicationDate(*in.ApplicationDate); err != nil {
			return err
		}
	}
	return nil
}

// applyTo assumes validate has already succeeded.
func (in JobInput) applyTo(j *Job) {
	j.JobTitle = in.JobTitle
	j.Company = in.Company
	j.Position = in.Position
	if in.JobLink != nil {
		j.JobLink = strings.TrimSpace(*in.JobLink)
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.Note != nil {
		j.Note = strings.TrimSpace(*in.Note)
	}
	if in.Status != nil && *in.Status != "" {
		j.Status, _ = ParseJobStatus(*in.Status)
	}
	if in.ApplicationDate != nil && *in.ApplicationDate != "" {
		j.ApplicationDate, _ = ParseApplicationDate(*in.ApplicationDate)
	}
}

var applicationDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseApplicationDate accepts ISO-8601 timestamps and a few common date-only forms.
// Forms without an offset are read as UTC.
func ParseApplicationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range applicationDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("Invalid application date")
}
