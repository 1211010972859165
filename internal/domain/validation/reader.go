package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Collector accumulates field errors while an untyped value is walked.
type Collector struct {
	errs []FieldError
}

// Add records a failure at path.
func (c *Collector) Add(path string, reason Reason, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: path, Reason: reason, Message: fmt.Sprintf(format, args...)})
}

// Merge adopts the failures of err, re-rooted under prefix.
// Errors that are not structural are recorded as malformed at prefix.
func (c *Collector) Merge(prefix string, err error) {
	if err == nil {
		return
	}
	ve, ok := AsError(err)
	if !ok {
		c.Add(prefix, ReasonMalformed, "%v", err)
		return
	}
	for _, fe := range ve.Errors {
		fe.Field = Join(prefix, fe.Field)
		c.errs = append(c.errs, fe)
	}
}

// Prefix re-roots a structural error under prefix. Other errors pass through unchanged.
func Prefix(prefix string, err error) error {
	if _, ok := AsError(err); !ok {
		return err
	}
	c := &Collector{}
	c.Merge(prefix, err)
	return c.Err()
}

// Len returns the number of recorded errors.
func (c *Collector) Len() int { return len(c.errs) }

// Failed reports whether any error has been recorded.
func (c *Collector) Failed() bool { return len(c.errs) > 0 }

// Err returns the accumulated errors as *Error, or nil.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	out := make([]FieldError, len(c.errs))
	copy(out, c.errs)
	return &Error{Errors: out}
}

// Join builds a dotted path.
func Join(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	case field[0] == '[':
		return prefix + field
	}
	return prefix + "." + field
}

// Index builds the path of a sequence element.
func Index(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// Object reads typed fields out of an untyped JSON object.
type Object struct {
	raw  map[string]any
	path string
	c    *Collector
}

// NewObject wraps v as an object rooted at path. It returns false and records
// a type mismatch when v is not an object.
func NewObject(c *Collector, path string, v any) (*Object, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		if v == nil {
			c.Add(path, ReasonTypeMismatch, "expected object, got null")
		} else {
			c.Add(path, ReasonTypeMismatch, "expected object, got %s", kindOf(v))
		}
		return nil, false
	}
	return &Object{raw: m, path: path, c: c}, true
}

// Path returns the path of key inside the object.
func (o *Object) Path(key string) string { return Join(o.path, key) }

// Present reports whether key exists and is not null.
func (o *Object) Present(key string) bool {
	v, ok := o.raw[key]
	return ok && v != nil
}

// Raw returns the untyped value of key.
func (o *Object) Raw(key string) (any, bool) {
	v, ok := o.raw[key]
	if !ok || v == nil {
		o.c.Add(o.Path(key), ReasonMissing, "is required")
		return nil, false
	}
	return v, true
}

func (o *Object) String(key string) (string, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		o.c.Add(o.Path(key), ReasonTypeMismatch, "expected string, got %s", kindOf(v))
		return "", false
	}
	return s, true
}

// NonEmptyString is String that also rejects "".
func (o *Object) NonEmptyString(key string) (string, bool) {
	s, ok := o.String(key)
	if !ok {
		return "", false
	}
	if s == "" {
		o.c.Add(o.Path(key), ReasonMissing, "must not be empty")
		return "", false
	}
	return s, true
}

func (o *Object) Bool(key string) (bool, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		o.c.Add(o.Path(key), ReasonTypeMismatch, "expected boolean, got %s", kindOf(v))
		return false, false
	}
	return b, true
}

// Number reads a finite number. Numeric strings are rejected.
func (o *Object) Number(key string) (float64, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok {
		o.c.Add(o.Path(key), ReasonTypeMismatch, "expected number, got %s", kindOf(v))
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		o.c.Add(o.Path(key), ReasonRange, "must be a finite number")
		return 0, false
	}
	return f, true
}

// Int reads a number with an integral value that fits int. Integers encoded as
// json.Number are read exactly; everything else goes through float64.
func (o *Object) Int(key string) (int, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return 0, false
	}
	if n, isNumber := v.(json.Number); isNumber {
		if i, err := n.Int64(); err == nil {
			if i < math.MinInt || i > math.MaxInt {
				o.c.Add(o.Path(key), ReasonRange, "integer %d overflows int", i)
				return 0, false
			}
			return int(i), true
		}
	}

	f, ok := o.Number(key)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		o.c.Add(o.Path(key), ReasonTypeMismatch, "expected integer, got %v", f)
		return 0, false
	}
	// -MinInt is 2^63 (2^31 on 32-bit) and exactly representable
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		o.c.Add(o.Path(key), ReasonRange, "integer %v overflows int", f)
		return 0, false
	}
	return int(f), true
}

// IntRange reads an integer bounded to [lo, hi].
func (o *Object) IntRange(key string, lo, hi int) (int, bool) {
	n, ok := o.Int(key)
	if !ok {
		return 0, false
	}
	if n < lo || n > hi {
		o.c.Add(o.Path(key), ReasonRange, "must be between %d and %d, got %d", lo, hi, n)
		return 0, false
	}
	return n, true
}

// Time reads a timestamp given as time.Time or an RFC 3339 string. Result is in UTC.
func (o *Object) Time(key string) (time.Time, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			o.c.Add(o.Path(key), ReasonTypeMismatch, "expected RFC 3339 date-time, got %q", t)
			return time.Time{}, false
		}
		return parsed.UTC(), true
	}
	o.c.Add(o.Path(key), ReasonTypeMismatch, "expected date-time, got %s", kindOf(v))
	return time.Time{}, false
}

// Object reads a nested object.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return nil, false
	}
	return NewObject(o.c, o.Path(key), v)
}

// Slice reads a sequence.
func (o *Object) Slice(key string) ([]any, bool) {
	v, ok := o.Raw(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	if !ok {
		o.c.Add(o.Path(key), ReasonTypeMismatch, "expected array, got %s", kindOf(v))
		return nil, false
	}
	return s, true
}

// Enum reads a string restricted to allowed.
func (o *Object) Enum(key string, allowed ...string) (string, bool) {
	s, ok := o.String(key)
	if !ok {
		return "", false
	}
	for _, a := range allowed {
		if s == a {
			return s, true
		}
	}
	o.c.Add(o.Path(key), ReasonEnum, "must be one of %v, got %q", allowed, s)
	return "", false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// KindOf names the JSON kind of an untyped value.
func KindOf(v any) string { return kindOf(v) }
