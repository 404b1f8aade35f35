// Package graph provides the canvas data model and its serialization.
//
// A canvas is the positioned node/edge graph derived from one GraphQL request
// body. This package defines the canonical wire format shared by the CLI,
// the HTTP API, the canvas store and the renderers.
//
// # Core Types
//
//   - [ParsedResult]: one parsed request plus its derived graph
//   - [Node], [Edge]: positioned graph elements
//   - [NodeData]: the payload a renderer displays and edits
//   - [Variables]: request variables in their original order
//   - [Patch]: a partial node-data update sent back by a renderer
//
// # Node Kinds
//
//	graph.KindOperation   // "operation"  (the root, IsRoot = true)
//	graph.KindField       // "field"      (field with a selection set)
//	graph.KindFieldGroup  // "fieldGroup" (sibling leaf fields)
//	graph.KindFragment    // "fragment"   (spread or inline fragment)
//	graph.KindVariable    // "variable"   (one per request variable)
//
// # Canvas Serialization
//
//	{
//	  "operationName": "Q",
//	  "variables": {"x": 5},
//	  "query": "query Q($x: Int){ f(arg:1) }",
//	  "nodes": [{"id": "node-0", "type": "operation", ...}],
//	  "edges": [{"id": "node-0-node-1", "source": "node-0", "target": "node-1"}]
//	}
//
// Common operations:
//
//	r, _ := graph.ReadResultFile("canvas.json")  // File -> ParsedResult
//	graph.WriteResultFile(r, "canvas.json")      // ParsedResult -> File
//	out, _ := graph.MarshalOutput(r)             // request body projection
//
// # Request Projection
//
// [MarshalOutput] produces the pretty-printed {operationName, variables,
// query} body. The query text is the one captured at parse time: patches
// change node data only and never regenerate GraphQL syntax.
//
// # Concurrency
//
// Values are not safe for concurrent mutation. [ParsedResult.ApplyPatch]
// overwrites fields in place; callers serialize edits per canvas.
package graph
