// Package style holds ordered property maps used as start, end and settled
// states of a step and as the description pushed into render sinks.
package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/matt-g-everett/animseq/util"
	"gopkg.in/yaml.v2"
)

// Prop is one style property.
type Prop struct {
	Name  string
	Value string
}

// Props is an ordered property map. Order is kept from declaration so that
// compiled keyframes and rendered styles are stable.
type Props []Prop

// FromMap builds Props from a plain map, sorting the keys.
func FromMap(m map[string]string) Props {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := make(Props, 0, len(keys))
	for _, k := range keys {
		p = append(p, Prop{k, m[k]})
	}
	return p
}

// Get returns the value of name.
func (p Props) Get(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// Set returns a copy of p with name set to value, replacing an existing
// entry in place or appending a new one.
func (p Props) Set(name, value string) Props {
	out := p.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Prop{name, value})
}

// With merges other over a copy of p.
func (p Props) With(other Props) Props {
	out := p.Clone()
	for _, prop := range other {
		out = out.Set(prop.Name, prop.Value)
	}
	return out
}

// Clone copies p. A nil map stays nil.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	copy(out, p)
	return out
}

// Declarations renders the properties as CSS declarations with hyphenated
// names, each prefixed by a space: " background-color: red; opacity: 1;".
func (p Props) Declarations() string {
	var b strings.Builder
	for _, prop := range p {
		fmt.Fprintf(&b, " %s: %s;", util.CamelCaseToDash(prop.Name), prop.Value)
	}
	return b.String()
}

func (p Props) String() string {
	return strings.TrimSpace(p.Declarations())
}

// MarshalJSON encodes the props as a JSON object, keeping order.
func (p Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings, keeping key order.
func (p *Props) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("style: expected object, got %v", tok)
	}
	props := Props{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("style property %v: %w", tok, err)
		}
		props = append(props, Prop{tok.(string), value})
	}
	*p = props
	return nil
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (p *Props) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var slice yaml.MapSlice
	if err := unmarshal(&slice); err != nil {
		return err
	}
	props, err := FromMapSlice(slice)
	if err != nil {
		return err
	}
	*p = props
	return nil
}

// FromMapSlice converts a decoded YAML mapping into Props. Values must be
// scalars.
func FromMapSlice(slice yaml.MapSlice) (Props, error) {
	props := make(Props, 0, len(slice))
	for _, item := range slice {
		switch item.Value.(type) {
		case yaml.MapSlice, []interface{}, map[interface{}]interface{}:
			return nil, fmt.Errorf("style property %v: value must be a scalar", item.Key)
		}
		value := ""
		if item.Value != nil {
			value = fmt.Sprint(item.Value)
		}
		props = append(props, Prop{fmt.Sprint(item.Key), value})
	}
	return props, nil
}

// Equal reports whether p and q hold the same properties in the same order.
func (p Props) Equal(q Props) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
