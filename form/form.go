package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// ValidationError lists required fields that were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "required fields missing: " + strings.Join(e.Missing, ", ")
}

type Field struct {
	Name   string
	Values []string
	List   bool
}

type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Submission accumulates the state of one form and encodes it for the backend.
type Submission struct {
	fields   []Field
	files    []File
	required []string
}

func New(required ...string) *Submission {
	return &Submission{required: required}
}

// Set stores a scalar field, replacing any previous value.
func (s *Submission) Set(name, value string) *Submission {
	return s.put(Field{Name: name, Values: []string{value}})
}

// SetList stores an ordered list field, encoded as a JSON array or as
// repeated multipart parts.
func (s *Submission) SetList(name string, values []string) *Submission {
	return s.put(Field{Name: name, Values: append([]string{}, values...), List: true})
}

func (s *Submission) Attach(f File) *Submission {
	s.files = append(s.files, f)
	return s
}

func (s *Submission) Get(name string) string {
	for _, f := range s.fields {
		if f.Name == name && len(f.Values) > 0 {
			return f.Values[0]
		}
	}
	return ""
}

func (s *Submission) Multipart() bool {
	return len(s.files) > 0
}

// Validate checks only that each required field has a non-blank value or an
// attached file under that name.
func (s *Submission) Validate() error {
	var missing []string
	for _, name := range s.required {
		if !s.present(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Encode returns the request body and its content type: JSON when nothing is
// attached, multipart/form-data otherwise.
func (s *Submission) Encode() (io.Reader, string, error) {
	if !s.Multipart() {
		body, err := json.Marshal(s.jsonBody())
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(body), "application/json", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range s.fields {
		for _, v := range f.Values {
			if err := mw.WriteField(f.Name, v); err != nil {
				return nil, "", err
			}
		}
	}
	for _, f := range s.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func (s *Submission) jsonBody() map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		switch {
		case f.List:
			out[f.Name] = f.Values
		case len(f.Values) > 0:
			out[f.Name] = f.Values[0]
		}
	}
	return out
}

func (s *Submission) put(f Field) *Submission {
	for i := range s.fields {
		if s.fields[i].Name == f.Name {
			s.fields[i] = f
			return s
		}
	}
	s.fields = append(s.fields, f)
	return s
}

func (s *Submission) present(name string) bool {
	for _, f := range s.fields {
		if f.Name != name {
			continue
		}
		for _, v := range f.Values {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	for _, f := range s.files {
		if f.Field == name && len(f.Data) > 0 {
			return true
		}
	}
	return false
}

// SplitTags turns "a, b,,c" into [a b c], keeping order and dropping duplicates.
func SplitTags(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
