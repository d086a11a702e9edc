package ubersmith

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Params are the arguments of an API call as the caller passes them.
type Params map[string]interface{}

// Values are the wire-level parameters of an API call. Every value has
// already been normalized by EncodeParams.
type Values map[string]string

// URLValues converts v into form values, in addition to the method field.
func (v Values) URLValues(method string) url.Values {
	form := url.Values{}
	for key, value := range v {
		form.Set(key, value)
	}
	if method != "" {
		form.Set(MethodField, method)
	}

	return form
}

// Clone returns a copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}

	return out
}

// Keys returns the sorted keys of v.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// ValuesFromForm extracts call parameters and method name from a decoded form.
// Repeated fields keep their first value.
func ValuesFromForm(form url.Values) (method string, values Values) {
	values = make(Values, len(form))
	for key, list := range form {
		if key == MethodField {
			if len(list) > 0 {
				method = list[0]
			}
			continue
		}

		if len(list) > 0 {
			values[key] = list[0]
		} else {
			values[key] = ""
		}
	}

	return
}

// EncodeParams serializes params the way they are sent to the API. Nested
// maps and slices are flattened PHP style, e.g. `meta[color]` or `ids[0]`.
func EncodeParams(params Params) Values {
	values := make(Values, len(params))
	for key, value := range params {
		encodeValue(values, key, value)
	}

	return values
}

// NormalizeValue returns the wire representation of a scalar value.
func NormalizeValue(v interface{}) string {
	if v == nil || isNilPointer(reflect.ValueOf(v)) {
		return ""
	}

	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return strconv.FormatInt(t.Unix(), 10)
	case fmt.Stringer:
		return t.String()
	}

	// named scalars, e.g. type Flag bool
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		if rv.Bool() {
			return "1"
		}
		return "0"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Ptr:
		return NormalizeValue(rv.Elem().Interface())
	}

	return fmt.Sprint(v)
}

func isNilPointer(rv reflect.Value) bool {
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func encodeValue(values Values, key string, value interface{}) {
	if value == nil || isNilPointer(reflect.ValueOf(value)) {
		values[key] = ""
		return
	}

	switch value.(type) {
	case []byte, string, time.Time, fmt.Stringer:
		values[key] = NormalizeValue(value)
		return
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		index := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			name := NormalizeValue(k.Interface())
			keys = append(keys, name)
			index[name] = rv.MapIndex(k)
		}
		sort.Strings(keys)

		for _, name := range keys {
			encodeValue(values, key+"["+name+"]", index[name].Interface())
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			encodeValue(values, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}

	case reflect.Ptr:
		encodeValue(values, key, rv.Elem().Interface())

	default:
		values[key] = NormalizeValue(value)
	}
}
