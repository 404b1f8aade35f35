// Package query turns a GraphQL HTTP request body into a parsed document.
//
// The request body is decoded with [gjson] so that the order of the
// "variables" object survives, and the query text is parsed with the
// gqlparser grammar. Nothing is validated against a schema.
//
// # Parsing
//
//	req, err := query.ParseRequest(body)
//	if err != nil {
//	    // errors.UserMessage(err) is one of:
//	    //   Invalid JSON format
//	    //   Missing or invalid "query" field
//	    //   Invalid GraphQL query: <parser message>
//	}
//
// # Fragments
//
// [CollectFragments] indexes every fragment definition by name. It runs
// before any selection walk since a spread may precede its definition.
//
// # Argument Values
//
// [FromAST] converts argument literals into [Value], a tagged union over
// the GraphQL value grammar. [Value.Interface] yields the plain Go form
// stored on canvas nodes.
//
// [gjson]: https://github.com/tidwall/gjson
package query
