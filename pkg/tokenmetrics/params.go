package tokenmetrics

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date format the API expects for startDate/endDate.
const DateLayout = "2006-01-02"

// Params maps query parameter names to scalar or list values. Nil values and
// nil pointers are omitted from the query string, as are maps and structs;
// everything else is sent as given, including empty strings.
type Params map[string]any

// Set stores value under key and returns p for chaining. A nil p is allocated.
func (p Params) Set(key string, value any) Params {
	if p == nil {
		p = Params{}
	}
	if key = strings.TrimSpace(key); key != "" {
		p[key] = value
	}
	return p
}

// Values renders the present parameters as url.Values.
func (p Params) Values() url.Values {
	out := make(url.Values, len(p))
	for k, v := range p {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if s, ok := formatParam(v); ok {
			out.Set(k, s)
		}
	}
	return out
}

// Encode renders the query string (keys sorted, values URL-encoded).
func (p Params) Encode() string {
	return p.Values().Encode()
}

// formatParam renders v for the query string. Only nil values, nil pointers
// and nil slices are absent; strings are sent exactly as given. Maps, structs
// other than time.Time and other composite kinds have no query form.
func formatParam(v any) (string, bool) {
	if isNilParam(v) {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return formatParam(rv.Elem().Interface())
	}

	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case time.Time:
		return t.Format(DateLayout), true
	case fmt.Stringer:
		return t.String(), true
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := formatParam(rv.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

func isNilParam(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// The helpers below back the typed option structs: a zero field means "not set".

func (p Params) setString(key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		p[key] = value
	}
}

func (p Params) setInt(key string, value int) {
	if value != 0 {
		p[key] = value
	}
}

func (p Params) setFloat(key string, value float64) {
	if value != 0 {
		p[key] = value
	}
}

func (p Params) setDate(key string, value time.Time) {
	if !value.IsZero() {
		p[key] = value
	}
}

// merge copies extra over p; pass-through keys win over typed fields.
// Nil entries are skipped so they never erase a typed field.
func (p Params) merge(extra Params) {
	for k, v := range extra {
		if isNilParam(v) {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			p[k] = v
		}
	}
}
