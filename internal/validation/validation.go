// Package validation checks request payloads and path parameters before any
// storage access happens. Failures carry structured issues that handlers
// return as the "details" of a 400 response.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()
	jsonNull = []byte("null")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Issue is one validation diagnostic.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error is returned by every failing check in this package.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Field != "" {
			parts = append(parts, is.Field+": "+is.Message)
		} else {
			parts = append(parts, is.Message)
		}
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

// Issues extracts the diagnostics of err, or a single generic issue when err
// did not come from this package.
func Issues(err error) []Issue {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Issues
	}
	return []Issue{{Rule: "invalid", Message: err.Error()}}
}

// Parse decodes a JSON object strictly into dst and validates it.
func Parse(r io.Reader, dst any) error {
	if err := DecodeStrict(r, dst); err != nil {
		return err
	}
	return Struct(dst)
}

// DecodeStrict decodes exactly one JSON object into dst. Unknown keys, null
// values and trailing data are rejected; an empty body decodes as {}.
func DecodeStrict(r io.Reader, dst any) error {
	var raw json.RawMessage
	if err := decode(json.NewDecoder(r), &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := rejectNulls(raw); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	return decode(dec, dst)
}

// rejectNulls fails on a null body and on top level keys set to null, which
// would otherwise decode as absent fields.
func rejectNulls(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, jsonNull) {
		return &Error{Issues: []Issue{{Rule: "type", Message: "body must be a JSON object"}}}
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return &Error{Issues: []Issue{decodeIssue(err)}}
	}
	keys := make([]string, 0, len(fields))
	for key, value := range fields {
		if bytes.Equal(bytes.TrimSpace(value), jsonNull) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	issues := make([]Issue, 0, len(keys))
	for _, key := range keys {
		issues = append(issues, Issue{Field: key, Rule: "null", Message: "must not be null"})
	}
	return &Error{Issues: issues}
}

// Decode is DecodeStrict without the unknown key check.
func Decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return decode(dec, dst)
}

func decode(dec *json.Decoder, dst any) error {
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{Issues: []Issue{decodeIssue(err)}}
	}
	if dec.More() {
		return &Error{Issues: []Issue{{Rule: "json", Message: "body must contain a single JSON object"}}}
	}
	return nil
}

func decodeIssue(err error) Issue {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return Issue{Rule: "json", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return Issue{Rule: "type", Message: "body must be a JSON object"}
		}
		return Issue{Field: typeErr.Field, Rule: "type", Param: typeErr.Type.String(),
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Issue{Rule: "json", Message: "malformed JSON"}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return Issue{Field: field, Rule: "unknown", Message: "unrecognized key"}
	default:
		return Issue{Rule: "json", Message: err.Error()}
	}
}

// Struct runs the validate tags of v.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return &Error{Issues: issues}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s character(s)", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// ParsePositiveInt parses a base 10 path identifier that must be at least 1.
func ParsePositiveInt(s string) (int64, bool) {
	// ParseInt accepts a leading sign, path ids do not
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// PositiveInt accepts a decoded JSON value holding an integral number of at
// least 1. Strings are rejected even when they look numeric.
func PositiveInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			if i <= 0 {
				return 0, false
			}
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToPositive(f)
	case float64:
		return floatToPositive(n)
	case int:
		return int64(n), n > 0
	case int64:
		return n, n > 0
	default:
		return 0, false
	}
}

func floatToPositive(f float64) (int64, bool) {
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if f != math.Trunc(f) || f < 1 || f >= 1<<63 {
		return 0, false
	}
	i := int64(f)
	return i, i > 0
}
