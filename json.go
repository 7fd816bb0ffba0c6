package domsanitizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that keeps its keys in document order.
type Object = orderedmap.OrderedMap[string, any]

// SanitizeJSON returns a sanitized copy of data. Strings, including object
// keys, go through SanitizeText; numbers, booleans and nil are returned
// unchanged. Values of any other kind are replaced by the empty string.
//
// Two keys that sanitize to the same string collapse into one entry; for an
// *Object the later value wins and keeps the earlier key's position.
func (s *Sanitizer) SanitizeJSON(data any) any {
	switch v := data.(type) {
	case nil:
		return nil
	case string:
		return s.SanitizeText(v)
	case bool, json.Number,
		float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.SanitizeJSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[s.SanitizeText(key)] = s.SanitizeJSON(val)
		}
		return out
	case *Object:
		if v == nil {
			return nil
		}
		out := orderedmap.New[string, any](v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(s.SanitizeText(pair.Key), s.SanitizeJSON(pair.Value))
		}
		return out
	}
	return s.sanitizeValue(reflect.ValueOf(data))
}

// sanitizeValue covers typed containers such as []string or
// map[string]int that the fast path above does not name.
func (s *Sanitizer) sanitizeValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.String:
		return s.SanitizeText(rv.String())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return s.SanitizeJSON(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = s.SanitizeJSON(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return ""
		}
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[s.SanitizeText(iter.Key().String())] = s.SanitizeJSON(iter.Value().Interface())
		}
		return out
	}
	return ""
}

// SanitizeJSONBytes decodes a JSON document, sanitizes it with SanitizeJSON
// and encodes it again. Object key order and number literals are preserved.
func (s *Sanitizer) SanitizeJSONBytes(data []byte) ([]byte, error) {
	v, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodeJSON(&buf, s.SanitizeJSON(v)); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeJSON reads exactly one JSON value from r. Objects decode to *Object
// so their key order survives, arrays to []any and numbers to json.Number.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := orderedmap.New[string, any]()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
}

// encodeJSON writes v compactly. HTML escaping is off: sanitized strings
// already carry entities and must not be escaped a second time as &.
func encodeJSON(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Object:
		buf.WriteByte('{')
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if pair != t.Oldest() {
				buf.WriteByte(',')
			}
			if err := encodeScalar(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeJSON(buf, pair.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	return encodeScalar(buf, v)
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(b.Bytes(), "\n"))
	return nil
}
