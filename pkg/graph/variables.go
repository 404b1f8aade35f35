package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Variable is one request variable with its raw JSON value.
type Variable struct {
	Name  string          `json:"name" bson:"name"`
	Value json.RawMessage `json:"value" bson:"value"`
}

// Variables holds request variables in their original order.
//
// The JSON form is an object; key order is preserved on both decode and
// encode so that the projected request body matches the input.
type Variables []Variable

// Set assigns value to name. A repeated name keeps its first position and
// takes the new value, matching how JSON objects with duplicate keys decode.
func (v *Variables) Set(name string, value json.RawMessage) {
	for i := range *v {
		if (*v)[i].Name == name {
			(*v)[i].Value = value
			return
		}
	}
	*v = append(*v, Variable{Name: name, Value: value})
}

// Get returns the raw value of name.
func (v Variables) Get(name string) (json.RawMessage, bool) {
	for _, vv := range v {
		if vv.Name == name {
			return vv.Value, true
		}
	}
	return nil, false
}

// Names returns the variable names in order.
func (v Variables) Names() []string {
	names := make([]string, len(v))
	for i, vv := range v {
		names[i] = vv.Name
	}
	return names
}

// MarshalJSON encodes the variables as an ordered JSON object.
// A nil or empty set encodes as {}.
func (v Variables) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, vv := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(vv.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(vv.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if !json.Valid(vv.Value) {
			return nil, fmt.Errorf("variable %q: invalid JSON value", vv.Name)
		}
		buf.Write(vv.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order.
// null decodes to an empty set.
func (v *Variables) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch {
	case res.Type == gjson.Null:
		*v = Variables{}
		return nil
	case !res.IsObject():
		return fmt.Errorf("variables: expected object, got %s", res.Type)
	}
	*v = FromObject(res)
	return nil
}

// FromObject collects the members of a gjson object in source order.
func FromObject(obj gjson.Result) Variables {
	out := Variables{}
	obj.ForEach(func(key, value gjson.Result) bool {
		out.Set(key.String(), json.RawMessage(value.Raw))
		return true
	})
	return out
}
