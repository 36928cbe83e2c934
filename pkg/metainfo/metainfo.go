// Package metainfo provides the typed key-value map attached to
// datasets and savepoints. Values are normalized to a small set of
// kinds (bool, int64, float64, string and slices thereof) so that
// metainfo round-trips losslessly through JSON and YAML.
package metainfo

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/gridbox/pkg/errors"
)

// MetaInfo is a map of unique keys to typed values. Keys are unique;
// Insert rejects duplicates. The zero value is not usable, call New.
type MetaInfo struct {
	values map[string]interface{}
}

// New creates an empty MetaInfo
func New() *MetaInfo {
	return &MetaInfo{values: make(map[string]interface{})}
}

// FromMap creates a MetaInfo from a plain map, normalizing every value
func FromMap(m map[string]interface{}) (*MetaInfo, error) {
	mi := New()
	for key, value := range m {
		if err := mi.Insert(key, value); err != nil {
			return nil, err
		}
	}
	return mi, nil
}

// Insert adds a key with a deduced, normalized value type. Inserting
// an existing key fails with ErrMetaInfoKeyExists; unsupported value
// types fail with ErrMetaInfoType.
func (m *MetaInfo) Insert(key string, value interface{}) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "metainfo key cannot be empty")
	}
	if _, exists := m.values[key]; exists {
		return errors.Newf(errors.ErrMetaInfoKeyExists, "metainfo key '%s' already exists", key)
	}

	normalized, err := normalize(value)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMetaInfoType,
			"unsupported metainfo value for key '%s'", key)
	}

	m.values[key] = normalized
	return nil
}

// Has checks whether a key exists
func (m *MetaInfo) Has(key string) bool {
	_, exists := m.values[key]
	return exists
}

// Size returns the number of keys
func (m *MetaInfo) Size() int {
	return len(m.values)
}

// Empty reports whether the map has no keys
func (m *MetaInfo) Empty() bool {
	return len(m.values) == 0
}

// Clear removes all keys
func (m *MetaInfo) Clear() {
	m.values = make(map[string]interface{})
}

// Remove deletes a key, failing with ErrNotFound if it does not exist
func (m *MetaInfo) Remove(key string) error {
	if _, exists := m.values[key]; !exists {
		return errors.Newf(errors.ErrNotFound, "metainfo key '%s' not found", key)
	}
	delete(m.values, key)
	return nil
}

// Keys returns all keys in sorted order
func (m *MetaInfo) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the normalized value for a key
func (m *MetaInfo) Get(key string) (interface{}, error) {
	value, exists := m.values[key]
	if !exists {
		return nil, errors.Newf(errors.ErrNotFound, "metainfo key '%s' not found", key)
	}
	return value, nil
}

// Bool returns the value for key as a bool
func (m *MetaInfo) Bool(key string) (bool, error) {
	value, err := m.Get(key)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, errors.Newf(errors.ErrMetaInfoType, "metainfo key '%s' is not a bool", key)
	}
	return b, nil
}

// Int returns the value for key as an int64
func (m *MetaInfo) Int(key string) (int64, error) {
	value, err := m.Get(key)
	if err != nil {
		return 0, err
	}
	i, ok := value.(int64)
	if !ok {
		return 0, errors.Newf(errors.ErrMetaInfoType, "metainfo key '%s' is not an int", key)
	}
	return i, nil
}

// Float returns the value for key as a float64
func (m *MetaInfo) Float(key string) (float64, error) {
	value, err := m.Get(key)
	if err != nil {
		return 0, err
	}
	f, ok := value.(float64)
	if !ok {
		return 0, errors.Newf(errors.ErrMetaInfoType, "metainfo key '%s' is not a float", key)
	}
	return f, nil
}

// String returns the value for key as a string
func (m *MetaInfo) String(key string) (string, error) {
	value, err := m.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.Newf(errors.ErrMetaInfoType, "metainfo key '%s' is not a string", key)
	}
	return s, nil
}

// AsMap returns a copy of the underlying map
func (m *MetaInfo) AsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(m.values))
	for key, value := range m.values {
		out[key] = value
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (m *MetaInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.values)
}

// UnmarshalJSON implements json.Unmarshaler, normalizing every value.
// Numbers are decoded with UseNumber so integers survive the round
// trip instead of collapsing to float64.
func (m *MetaInfo) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	mi, err := FromMap(raw)
	if err != nil {
		return err
	}
	m.values = mi.values
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (m *MetaInfo) MarshalYAML() (interface{}, error) {
	return m.values, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, normalizing every value
func (m *MetaInfo) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	mi, err := FromMap(raw)
	if err != nil {
		return err
	}
	m.values = mi.values
	return nil
}

// normalize converts a value to one of the supported kinds
func normalize(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool, int64, float64, string:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float32:
		return float64(v), nil
	case json.Number:
		return normalizeNumber(v)
	case []bool:
		return append([]bool(nil), v...), nil
	case []string:
		return append([]string(nil), v...), nil
	case []int64:
		return append([]int64(nil), v...), nil
	case []int:
		out := make([]int64, len(v))
		for i, n := range v {
			out[i] = int64(n)
		}
		return out, nil
	case []float64:
		return append([]float64(nil), v...), nil
	case []interface{}:
		return normalizeSlice(v)
	default:
		return nil, errors.Newf(errors.ErrMetaInfoType, "unsupported value type %T", value)
	}
}

// normalizeSlice handles the untyped slices produced by JSON and YAML
// decoding. Elements must all normalize to the same kind.
func normalizeSlice(raw []interface{}) (interface{}, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}

	switch first := raw[0].(type) {
	case bool:
		out := make([]bool, len(raw))
		for i, elem := range raw {
			b, ok := elem.(bool)
			if !ok {
				return nil, errors.Newf(errors.ErrMetaInfoType, "mixed-type array element %T", elem)
			}
			out[i] = b
		}
		return out, nil
	case string:
		out := make([]string, len(raw))
		for i, elem := range raw {
			s, ok := elem.(string)
			if !ok {
				return nil, errors.Newf(errors.ErrMetaInfoType, "mixed-type array element %T", elem)
			}
			out[i] = s
		}
		return out, nil
	case int, int64, float64, json.Number:
		return normalizeNumberSlice(raw)
	default:
		return nil, errors.Newf(errors.ErrMetaInfoType, "unsupported array element type %T", first)
	}
}

// normalizeNumber maps a json.Number to int64 when it has no
// fractional part, float64 otherwise
func normalizeNumber(n json.Number) (interface{}, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		i, err := n.Int64()
		if err == nil {
			return i, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetaInfoType, "invalid number %q", n.String())
	}
	return f, nil
}

// normalizeNumberSlice produces []int64 when every element is an
// integer, []float64 when any element is fractional
func normalizeNumberSlice(raw []interface{}) (interface{}, error) {
	ints := make([]int64, 0, len(raw))
	floats := make([]float64, 0, len(raw))
	allInts := true

	for _, elem := range raw {
		switch n := elem.(type) {
		case int:
			ints = append(ints, int64(n))
			floats = append(floats, float64(n))
		case int64:
			ints = append(ints, n)
			floats = append(floats, float64(n))
		case float64:
			allInts = false
			floats = append(floats, n)
		case json.Number:
			v, err := normalizeNumber(n)
			if err != nil {
				return nil, err
			}
			switch v := v.(type) {
			case int64:
				ints = append(ints, v)
				floats = append(floats, float64(v))
			case float64:
				allInts = false
				floats = append(floats, v)
			}
		default:
			return nil, errors.Newf(errors.ErrMetaInfoType, "mixed-type array element %T", elem)
		}
	}

	if allInts {
		return ints, nil
	}
	return floats, nil
}
