package query

import "github.com/vektah/gqlparser/v2/ast"

// Fragments maps fragment names to their definitions.
type Fragments struct {
	defs       map[string]*ast.FragmentDefinition
	duplicates []string
}

// CollectFragments indexes the fragment definitions of doc in one pass.
// A repeated name keeps the last definition and is listed by
// [Fragments.Duplicates].
func CollectFragments(doc *ast.QueryDocument) *Fragments {
	f := &Fragments{defs: make(map[string]*ast.FragmentDefinition)}
	if doc == nil {
		return f
	}
	for _, def := range doc.Fragments {
		if _, seen := f.defs[def.Name]; seen {
			f.duplicates = append(f.duplicates, def.Name)
		}
		f.defs[def.Name] = def
	}
	return f
}

// Lookup returns the definition named name.
func (f *Fragments) Lookup(name string) (*ast.FragmentDefinition, bool) {
	if f == nil {
		return nil, false
	}
	def, ok := f.defs[name]
	return def, ok
}

// Len returns the number of distinct fragment names.
func (f *Fragments) Len() int {
	if f == nil {
		return 0
	}
	return len(f.defs)
}

// Duplicates returns each overwritten fragment name once per repeat, in
// source order.
func (f *Fragments) Duplicates() []string {
	if f == nil {
		return nil
	}
	return f.duplicates
}
