package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"job-tracker/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

// jobRequest is the create/update body. Older clients send Location and
// Note capitalised; the lowercase key wins when both are present.
type jobRequest struct {
	JobTitle        *looseString `json:"jobTitle"`
	Company         *looseString `json:"company"`
	Position        *looseString `json:"position"`
	ApplicationDate *looseString `json:"applicationDate"`
	JobLink         *looseString `json:"jobLink"`
	Location        *looseString `json:"location"`
	LocationAlias   *looseString `json:"Location"`
	Note            *looseString `json:"note"`
	NoteAlias       *looseString `json:"Note"`
	Status          *looseString `json:"status"`
}

// usedAlias reports whether a capitalised key supplied a value.
func (req jobRequest) usedAlias() bool {
	return (req.Location == nil && req.LocationAlias != nil) || (req.Note == nil && req.NoteAlias != nil)
}

func (req jobRequest) input() model.JobInput {
	cast := map[string]string{}
	text := func(path string, v *looseString) *string {
		if v == nil {
			return nil
		}
		if v.Invalid {
			cast[path] = fmt.Sprintf("Cast to string failed for value %s at path %q", v.Text, path)
			return nil
		}
		s := v.Text
		return &s
	}

	in := model.JobInput{
		JobTitle:        deref(text("jobTitle", req.JobTitle)),
		Company:         deref(text("company", req.Company)),
		Position:        deref(text("position", req.Position)),
		ApplicationDate: text("applicationDate", req.ApplicationDate),
		JobLink:         text("jobLink", req.JobLink),
		Location:        text("location", firstSet(req.Location, req.LocationAlias)),
		Note:            text("note", firstSet(req.Note, req.NoteAlias)),
		Status:          text("status", req.Status),
	}
	if in.ApplicationDate != nil && req.ApplicationDate.Number {
		in.ApplicationDate = epochMillis(*in.ApplicationDate)
	}
	if len(cast) > 0 {
		in.CastErrors = cast
	}
	return in
}

type statusRequest struct {
	Status *looseString `json:"status"`
}

// status returns the requested status as text. Objects and arrays come
// back verbatim and fail status parsing downstream.
func (req statusRequest) status() string {
	if req.Status == nil {
		return ""
	}
	return req.Status.Text
}

// looseString decodes any JSON value as text: strings as-is, numbers and
// booleans in their literal form. Objects and arrays keep their raw text
// and are flagged Invalid.
type looseString struct {
	Text    string
	Number  bool
	Invalid bool
}

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch c := b[0]; {
	case c == '"':
		return json.Unmarshal(b, &s.Text)
	case c == '{' || c == '[':
		s.Text, s.Invalid = string(b), true
	default:
		s.Text = string(b)
		s.Number = c == '-' || (c >= '0' && c <= '9')
	}
	return nil
}

func firstSet(vs ...*looseString) *looseString {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

// epochMillis renders a millisecond Unix timestamp as RFC 3339. Text that
// is not a number is returned unchanged.
func epochMillis(v string) *string {
	ms, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return &v
	}
	s := time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano)
	return &s
}

// decodeBody reads a JSON object, or a urlencoded form, into dst. An empty
// body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if isFormBody(r) {
		return decodeForm(r, dst)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errBadBody
	}
	return nil
}

func isFormBody(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/x-www-form-urlencoded"
}

// decodeForm maps the first value of each form key onto the JSON field of
// the same name. Form values are always text.
func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return errBadBody
	}
	fields := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return errBadBody
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errBadBody
	}
	return nil
}

// jobIDParam binds the {id} path segment as a UUID and returns it in
// canonical form. Values that do not bind are returned verbatim with ok
// false so the use case can apply per-operation handling of malformed ids.
func jobIDParam(r *http.Request) (id string, ok bool) {
	raw := chi.URLParam(r, "id")
	var bound openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", raw, &bound, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return raw, false
	}
	return bound.String(), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
