package graph

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/gqlcanvas/pkg/errors"
)

// Patch is a partial node update forwarded by a renderer.
// Nil fields are left untouched.
type Patch struct {
	Label *string         `json:"label,omitempty"`
	Name  *string         `json:"name,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Label == nil && p.Name == nil && len(p.Value) == 0
}

// ApplyPatch merges p into the node with the given ID, last write wins.
//
// Layout is not recomputed and the query text is not regenerated. A value
// patch on a variable node also updates the request variable so the
// projected output carries the edited value. The request variable is found
// by the node ID, which keeps the parse-time name after a rename.
func (r *ParsedResult) ApplyPatch(nodeID string, p Patch) error {
	if err := errors.ValidateNodeID(nodeID); err != nil {
		return err
	}
	if p.IsEmpty() {
		return errors.New(errors.ErrCodeInvalidPatch, "patch for %s changes nothing", nodeID)
	}
	n, ok := r.Node(nodeID)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %s not found", nodeID)
	}

	if len(p.Value) > 0 {
		if n.Kind != KindVariable {
			return errors.New(errors.ErrCodeInvalidPatch, "node %s is a %s; only variables carry a value", nodeID, n.Kind)
		}
		if !json.Valid(p.Value) {
			return errors.New(errors.ErrCodeInvalidPatch, "value for %s is not valid JSON", nodeID)
		}
	}

	if p.Label != nil {
		n.Label = *p.Label
	}
	if p.Name != nil {
		n.Data.Name = *p.Name
	}
	if len(p.Value) > 0 {
		n.Data.Value = append(json.RawMessage(nil), p.Value...)
		r.Variables.Set(strings.TrimPrefix(n.ID, VariableIDPrefix), n.Data.Value)
	}
	return nil
}
