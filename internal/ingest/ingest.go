// Package ingest reads the four load-time sources into validated, typed rows. Rows that
// fail validation are rejected and counted rather than silently coerced.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Report summarizes how one source was ingested.
type Report struct {
	Source   string `json:"source"`
	Path     string `json:"path,omitempty"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
	// Skipped counts well-formed rows deliberately left out (e.g. aggregate codes).
	Skipped int `json:"skipped,omitempty"`
	// Malformed counts numeric cells that could not be parsed and were read as 0.
	Malformed int `json:"malformed_values,omitempty"`
}

func (r Report) log() {
	ev := log.Info()
	if r.Rejected > 0 || r.Malformed > 0 {
		ev = log.Warn()
	}
	ev.Str("source", r.Source).
		Str("path", r.Path).
		Int("accepted", r.Accepted).
		Int("rejected", r.Rejected).
		Int("skipped", r.Skipped).
		Int("malformed", r.Malformed).
		Msg("Source ingested")
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var validate = NewValidator()

// Text is a JSON scalar read as trimmed text. It accepts strings, numbers and null, which
// covers codes and counts that upstream files encode either way.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", b)
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}

// decodeArray streams the elements of a top-level JSON array into fn. An element that
// fails to unmarshal is passed to fn with its error; a syntax error aborts the stream.
func decodeArray[T any](r io.Reader, fn func(i int, row T, err error)) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read array start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return errors.New("expected a JSON array")
	}

	for i := 0; dec.More(); i++ {
		var row T
		err := dec.Decode(&row)
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("element %d: %w", i, err)
		}
		fn(i, row, err)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read array end: %w", err)
	}
	return nil
}
