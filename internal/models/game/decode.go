package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// placeholder is the literal value the upstream API uses to mean
// "value not available". It can appear in any field.
const placeholder = "--"

// ValidationError reports a field in an upstream payload that is missing
// or could not be coerced to its declared type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// FlexInt is an integer stat that may be absent. Upstream values arrive
// as JSON numbers or numeric strings; the "--" placeholder parses to an
// absent value.
type FlexInt struct {
	Value   int
	Present bool
}

// Int returns the value, or zero when absent.
func (f FlexInt) Int() int {
	return f.Value
}

// Or returns the value, or def when absent.
func (f FlexInt) Or(def int) int {
	if f.Present {
		return f.Value
	}
	return def
}

// MarshalJSON writes the value, or null when absent, so a re-decoded
// record carries the same presence flags.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// FlexFloat is a float stat that may be absent, with the same coercion
// rules as FlexInt.
type FlexFloat struct {
	Value   float64
	Present bool
}

// Float returns the value, or zero when absent.
func (f FlexFloat) Float() float64 {
	return f.Value
}

// MarshalJSON writes the value, or null when absent.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

func presentInt(v int) FlexInt         { return FlexInt{Value: v, Present: true} }
func presentFloat(v float64) FlexFloat { return FlexFloat{Value: v, Present: true} }

// scrubPlaceholders replaces every "--" value with nil, descending into
// nested objects. This runs over the whole record before any per-field
// conversion so the placeholder is never mistaken for a literal string.
func scrubPlaceholders(raw map[string]interface{}) {
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			if strings.TrimSpace(val) == placeholder {
				raw[k] = nil
			}
		case map[string]interface{}:
			scrubPlaceholders(val)
		}
	}
}

// fieldDecoder pulls typed fields out of a scrubbed payload, recording
// the first failure as a ValidationError naming the field.
type fieldDecoder struct {
	raw map[string]interface{}
	err error
}

func newFieldDecoder(raw map[string]interface{}) *fieldDecoder {
	scrubPlaceholders(raw)
	return &fieldDecoder{raw: raw}
}

func (d *fieldDecoder) fail(field, format string, args ...interface{}) {
	if d.err == nil {
		d.err = &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
	}
}

// Err returns the first decode failure, if any.
func (d *fieldDecoder) Err() error {
	return d.err
}

// str decodes a required string field. JSON numbers are accepted and
// formatted, matching the upstream habit of flip-flopping id fields
// between strings and numbers across releases.
func (d *fieldDecoder) str(field string) string {
	v, ok := d.raw[field]
	if !ok {
		d.fail(field, "required field missing")
		return ""
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		d.fail(field, "expected string, got %T", v)
		return ""
	}
}

// flexInt decodes a required numeric field that may carry the "--"
// placeholder (absent after the scrub pass).
func (d *fieldDecoder) flexInt(field string) FlexInt {
	v, ok := d.raw[field]
	if !ok {
		d.fail(field, "required field missing")
		return FlexInt{}
	}
	switch val := v.(type) {
	case nil:
		return FlexInt{}
	case float64:
		return presentInt(int(val))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			d.fail(field, "cannot coerce %q to int", val)
			return FlexInt{}
		}
		return presentInt(n)
	default:
		d.fail(field, "expected number, got %T", v)
		return FlexInt{}
	}
}

// flexFloat decodes a required float field with the same rules.
func (d *fieldDecoder) flexFloat(field string) FlexFloat {
	v, ok := d.raw[field]
	if !ok {
		d.fail(field, "required field missing")
		return FlexFloat{}
	}
	switch val := v.(type) {
	case nil:
		return FlexFloat{}
	case float64:
		return presentFloat(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			d.fail(field, "cannot coerce %q to float", val)
			return FlexFloat{}
		}
		return presentFloat(f)
	default:
		d.fail(field, "expected number, got %T", v)
		return FlexFloat{}
	}
}

// object decodes a required nested object field.
func (d *fieldDecoder) object(field string) map[string]interface{} {
	v, ok := d.raw[field]
	if !ok {
		d.fail(field, "required field missing")
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		d.fail(field, "expected object, got %T", v)
		return nil
	}
	return obj
}

// round2 rounds to two decimal places, the precision every derived rate
// in the model reports.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
