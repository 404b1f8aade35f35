package query

import (
	stderrors "errors"

	"github.com/tidwall/gjson"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// User-facing messages of the three request errors.
const (
	MsgInvalidJSON    = "Invalid JSON format"
	MsgMissingQuery   = `Missing or invalid "query" field`
	MsgInvalidGraphQL = "Invalid GraphQL query: %s"
)

// Request is a decoded GraphQL HTTP request body.
type Request struct {
	// OperationName is nil when absent, null, empty or not a string. A
	// non-string value is reported in Warnings.
	OperationName *string

	// Variables keeps the order of the "variables" object. Missing, null and
	// non-object values all yield an empty set.
	Variables graph.Variables

	// Query is the query text exactly as submitted.
	Query string

	// Document is the parsed query.
	Document *ast.QueryDocument

	// Warnings lists tolerated oddities of the body.
	Warnings []string
}

// ParseRequest decodes a request body and parses its query.
//
// It fails with INVALID_JSON, MISSING_QUERY or INVALID_GRAPHQL. No partial
// request is returned on error. A key repeated in the body takes its last
// value.
func ParseRequest(body []byte) (*Request, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New(errors.ErrCodeInvalidJSON, MsgInvalidJSON)
	}
	root := gjson.ParseBytes(body)

	q := member(root, "query")
	if q.Type != gjson.String || q.Str == "" {
		return nil, errors.New(errors.ErrCodeMissingQuery, MsgMissingQuery)
	}

	doc, err := ParseDocument(q.Str)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Query:     q.Str,
		Document:  doc,
		Variables: graph.Variables{},
	}
	switch name := member(root, "operationName"); {
	case name.Type == gjson.String:
		if name.Str != "" {
			s := name.Str
			req.OperationName = &s
		}
	case name.Exists() && name.Type != gjson.Null:
		req.Warnings = append(req.Warnings, "operationName is not a string; ignored")
	}

	switch vars := member(root, "variables"); {
	case vars.IsObject():
		req.Variables = graph.FromObject(vars)
	case vars.Exists() && vars.Type != gjson.Null:
		req.Warnings = append(req.Warnings, "variables is not an object; ignored")
	}
	return req, nil
}

// member returns the last value of key in obj, or a non-existent result.
func member(obj gjson.Result, key string) gjson.Result {
	var out gjson.Result
	if !obj.IsObject() {
		return out
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			out = v
		}
		return true
	})
	return out
}

// ParseDocument parses GraphQL query text.
func ParseDocument(text string) (*ast.QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: text})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraphQL, err, MsgInvalidGraphQL, parserMessage(err))
	}
	return doc, nil
}

func parserMessage(err error) string {
	var gqlErr *gqlerror.Error
	if stderrors.As(err, &gqlErr) && gqlErr.Message != "" {
		return gqlErr.Message
	}
	return err.Error()
}
