package params

import (
	"bytes"
	"math"
	"slices"

	"github.com/bytedance/sonic"
)

// Params is an ordered set of named values held by a session.
// The zero value is an empty, ready to use group.
type Params struct {
	keys   []string
	values map[string]any
}

// New creates a group populated with values.
func New(values map[string]any) *Params {
	return new(Params).SetData(values)
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (p *Params) GetString(key string) (string, bool) {
	v, ok := p.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt returns the value under key as int.
// Numbers decoded from JSON arrive as float64; only whole values are accepted.
func (p *Params) GetInt(key string) (int, bool) {
	v, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// GetBool returns the value under key if it is a bool.
func (p *Params) GetBool(key string) (bool, bool) {
	v, ok := p.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Set stores a single value. New keys are appended to the end of the order.
func (p *Params) Set(key string, value any) *Params {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Delete removes key from the group.
func (p *Params) Delete(key string) {
	if p == nil || p.values == nil {
		return
	}
	if _, exists := p.values[key]; !exists {
		return
	}
	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
}

// SetData replaces every value in the group with values.
// Keys are ordered lexicographically because map iteration order is random.
func (p *Params) SetData(values map[string]any) *Params {
	p.keys = make([]string, 0, len(values))
	p.values = make(map[string]any, len(values))
	for k, v := range values {
		p.keys = append(p.keys, k)
		p.values[k] = v
	}
	slices.Sort(p.keys)
	return p
}

// Data returns a copy of the stored values.
func (p *Params) Data() map[string]any {
	if p == nil {
		return map[string]any{}
	}
	data := make(map[string]any, len(p.values))
	for k, v := range p.values {
		data[k] = v
	}
	return data
}

// Keys returns the keys in order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// ClearData removes all values.
func (p *Params) ClearData() {
	if p == nil {
		return
	}
	p.keys = nil
	p.values = nil
}

// Count returns the number of stored values.
func (p *Params) Count() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// MarshalJSON encodes the group as a JSON object keeping key order.
func (p *Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := sonic.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the group with the decoded object.
func (p *Params) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := sonic.Unmarshal(data, &values); err != nil {
		return err
	}
	p.SetData(values)
	return nil
}
