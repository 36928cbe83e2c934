// Package savepoint provides named point-in-time markers for
// serialized data. A savepoint is identified by its name together
// with its metainfo: two savepoints with equal names but different
// metainfo are distinct.
package savepoint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/metainfo"
)

// Savepoint marks a point in time within a dataset
type Savepoint struct {
	name string
	meta *metainfo.MetaInfo
}

// New creates a savepoint with an empty metainfo map
func New(name string) (*Savepoint, error) {
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "savepoint name cannot be empty")
	}
	return &Savepoint{name: name, meta: metainfo.New()}, nil
}

// Name returns the savepoint name
func (s *Savepoint) Name() string {
	return s.name
}

// MetaInfo returns the savepoint's metainfo map
func (s *Savepoint) MetaInfo() *metainfo.MetaInfo {
	return s.meta
}

// AddMetaInfo inserts a key into the savepoint's metainfo
func (s *Savepoint) AddMetaInfo(key string, value interface{}) error {
	return s.meta.Insert(key, value)
}

// Equal reports whether two savepoints have the same name and the
// same metainfo
func (s *Savepoint) Equal(other *Savepoint) bool {
	if s.name != other.name {
		return false
	}

	keys := s.meta.Keys()
	otherKeys := other.meta.Keys()
	if len(keys) != len(otherKeys) {
		return false
	}
	for i := range keys {
		if keys[i] != otherKeys[i] {
			return false
		}
		a, _ := s.meta.Get(keys[i])
		b, _ := other.meta.Get(keys[i])
		if fmt.Sprintf("%v", a) != fmt.Sprintf("%v", b) {
			return false
		}
	}
	return true
}

// String renders the savepoint as "name {key: value, ...}"
func (s *Savepoint) String() string {
	if s.meta.Empty() {
		return s.name
	}

	var sb strings.Builder
	sb.WriteString(s.name)
	sb.WriteString(" {")
	for i, key := range s.meta.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		value, _ := s.meta.Get(key)
		fmt.Fprintf(&sb, "%s: %v", key, value)
	}
	sb.WriteString("}")
	return sb.String()
}

// savepointJSON is the wire form of a savepoint
type savepointJSON struct {
	Name     string             `json:"name"`
	MetaInfo *metainfo.MetaInfo `json:"meta_info"`
}

// MarshalJSON implements json.Marshaler
func (s *Savepoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(savepointJSON{Name: s.name, MetaInfo: s.meta})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Savepoint) UnmarshalJSON(data []byte) error {
	var raw savepointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return errors.New(errors.ErrInvalidInput, "savepoint name cannot be empty")
	}

	s.name = raw.Name
	s.meta = raw.MetaInfo
	if s.meta == nil {
		s.meta = metainfo.New()
	}
	return nil
}
