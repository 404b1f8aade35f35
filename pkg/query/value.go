package query

import (
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
)

// ValueKind discriminates [Value].
type ValueKind int

// Value kinds, mirroring the GraphQL value grammar.
const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindString
	KindBoolean
	KindEnum
	KindList
	KindObject
	KindVariable
)

var kindNames = [...]string{"null", "int", "float", "string", "boolean", "enum", "list", "object", "variable"}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is an argument literal.
//
// Raw holds the scalar text (the variable name for KindVariable). List is
// set for KindList and Fields for KindObject.
type Value struct {
	Kind   ValueKind
	Raw    string
	List   []Value
	Fields []ObjectField
}

// ObjectField is one member of an object literal, in source order.
type ObjectField struct {
	Name  string
	Value Value
}

// FromAST converts a parsed value. A nil value converts to null.
func FromAST(v *ast.Value) Value {
	if v == nil {
		return Value{Kind: KindNull}
	}
	switch v.Kind {
	case ast.Variable:
		return Value{Kind: KindVariable, Raw: v.Raw}
	case ast.IntValue:
		return Value{Kind: KindInt, Raw: v.Raw}
	case ast.FloatValue:
		return Value{Kind: KindFloat, Raw: v.Raw}
	case ast.StringValue, ast.BlockValue:
		return Value{Kind: KindString, Raw: v.Raw}
	case ast.BooleanValue:
		return Value{Kind: KindBoolean, Raw: v.Raw}
	case ast.EnumValue:
		return Value{Kind: KindEnum, Raw: v.Raw}
	case ast.ListValue:
		out := Value{Kind: KindList, List: make([]Value, 0, len(v.Children))}
		for _, c := range v.Children {
			out.List = append(out.List, FromAST(c.Value))
		}
		return out
	case ast.ObjectValue:
		out := Value{Kind: KindObject, Fields: make([]ObjectField, 0, len(v.Children))}
		for _, c := range v.Children {
			out.Fields = append(out.Fields, ObjectField{Name: c.Name, Value: FromAST(c.Value)})
		}
		return out
	default:
		return Value{Kind: KindNull}
	}
}

// Interface returns the plain Go form: int64, float64, string, bool, nil,
// []any or map[string]any. Enums yield their name and variable references
// yield "$name". Integers beyond int64 degrade to float64.
func (v Value) Interface() any {
	switch v.Kind {
	case KindInt:
		if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return f
		}
		return v.Raw
	case KindFloat:
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return f
		}
		return v.Raw
	case KindString, KindEnum:
		return v.Raw
	case KindBoolean:
		return v.Raw == "true"
	case KindVariable:
		return "$" + v.Raw
	case KindList:
		out := make([]any, len(v.List))
		for i, c := range v.List {
			out[i] = c.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Arguments converts a field's arguments to their plain Go form.
// It returns nil when there are none.
func Arguments(args ast.ArgumentList) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, len(args))
	for _, a := range args {
		out[a.Name] = FromAST(a.Value).Interface()
	}
	return out
}
