package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrDecode indicates the input file is not valid JSON.
	ErrDecode = errors.New("malformed json")
	// ErrShape indicates the top-level value is neither an object nor an array.
	ErrShape = errors.New("unexpected top-level shape")
)

// Record is one decoded document: nested objects, arrays and scalars.
// Scalars are string, json.Number, bool or nil.
type Record = any

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with document key order preserved. The standard
// map[string]any decoding loses order, so objects are decoded token by token.
type Object []Member

// Get returns the value stored under key, if present.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// LoadEntries reads a JSON file and returns its records. A top-level object
// yields a single-element slice, a top-level array yields its elements. Any
// other top-level value is reported as ErrShape.
func LoadEntries(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entries file: %w", err)
	}
	defer file.Close()

	return DecodeEntries(file)
}

// DecodeEntries decodes records from r. See LoadEntries for shape rules.
func DecodeEntries(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// Trailing garbage after the document is a decode error too.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}

	switch v := value.(type) {
	case []any:
		return v, nil
	case Object:
		return []Record{v}, nil
	default:
		return nil, fmt.Errorf("%w: expected object or array, got %T", ErrShape, value)
	}
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil.
		return tok, nil
	}

	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func decodeObject(dec *json.Decoder) (Object, error) {
	obj := Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Value: value})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
