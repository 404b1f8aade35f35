// Package pkg holds the gqlcanvas libraries.
//
// # Overview
//
// gqlcanvas turns a GraphQL request body into a canvas: a flat list of
// positioned nodes and parent/child edges that a graph renderer can draw
// and edit. Edited canvases project back into request bodies.
//
// # Architecture
//
//	request body {"query", "operationName", "variables"}
//	         ↓
//	    [query] (decode body, parse query, collect fragments)
//	         ↓
//	    [layout] (bucket selections into a tree, place nodes, place variables)
//	         ↓
//	    [graph] canvas (nodes, edges, variables)
//	         ↓
//	    [render/nodelink] (DOT, SVG, PNG, PDF) or [graph.MarshalOutput]
//
// [pipeline] runs these stages for the CLI and the API server. Canvases
// are addressed by content hash in [cache] for rendered artifacts and by ID
// in [store] for editing sessions.
//
// # Quick Start
//
//	res, err := pipeline.Build(body, pipeline.Options{Mode: layout.ModePrecomputed})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return
//	}
//	for _, n := range res.Canvas.Nodes {
//	    fmt.Println(n.ID, n.Kind, n.Label, n.Position)
//	}
//
// # Main Packages
//
// [query] - Request body decoding, GraphQL parsing through gqlparser, the
// fragment table and argument values.
//
// [layout] - The selection tree builder and the tree layout engine. Node IDs
// come from a [layout.Counter] owned by one build.
//
// [graph] - The canvas types, JSON encoding, node patches and the request
// output projection.
//
// [render/nodelink] - DOT generation and graphviz rendering. [render]
// converts SVG to PDF.
//
// [pipeline] - Parse, layout and render with caching and observability hooks.
//
// [cache] - Artifact cache (file, Redis, null).
//
// [store] - Canvas snapshots (memory, file, MongoDB).
//
// [config] - TOML configuration.
//
// [observability] - Hook interfaces; [observability/prom] records them as
// Prometheus metrics.
//
// [errors] - Coded errors with user-facing messages.
//
// # Testing
//
//	go test ./...                  # All tests
//	go test ./pkg/layout/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [query]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/query
// [layout]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/layout
// [layout.Counter]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/layout#Counter
// [graph]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/graph
// [graph.MarshalOutput]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/graph#MarshalOutput
// [render]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/observability/prom
// [errors]: https://pkg.go.dev/github.com/matzehuels/gqlcanvas/pkg/errors
package pkg
