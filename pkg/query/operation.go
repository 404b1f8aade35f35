package query

import "github.com/vektah/gqlparser/v2/ast"

// SelectOperation picks the operation to lay out.
//
// With a name, the operation of that name is returned. Without one, or when
// the name matches nothing, the first operation is returned and found
// reports whether the name (if any) was honoured. A document without
// operations yields nil.
func SelectOperation(doc *ast.QueryDocument, name *string) (op *ast.OperationDefinition, found bool) {
	if doc == nil || len(doc.Operations) == 0 {
		return nil, name == nil
	}
	if name == nil {
		return doc.Operations[0], true
	}
	for _, o := range doc.Operations {
		if o.Name == *name {
			return o, true
		}
	}
	return doc.Operations[0], false
}

// OperationType returns the operation keyword, defaulting to "query" for
// the shorthand form.
func OperationType(op *ast.OperationDefinition) string {
	if op.Operation == "" {
		return string(ast.Query)
	}
	return string(op.Operation)
}
