package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Param is one named argument handed to the candidate's function.
type Param struct {
	Name  string
	Value interface{}
}

// Params keeps declaration order, harnesses pass the values positionally.
type Params []Param

// MarshalJSON encodes the params as a JSON object whose keys follow declaration order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal param name %q: %w", param.Name, err)
		}
		val, err := json.Marshal(param.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal param %q: %w", param.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of the named param.
func (p Params) Get(name string) (interface{}, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}
