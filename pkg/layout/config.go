package layout

import (
	"fmt"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// Mode selects whether coordinates are assigned.
type Mode string

// Layout modes.
const (
	ModePrecomputed Mode = "precomputed"
	ModeDeferred    Mode = "deferred"
)

// ParseMode parses a mode name. The empty string means precomputed.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModePrecomputed:
		return ModePrecomputed, nil
	case ModeDeferred:
		return ModeDeferred, nil
	}
	return "", fmt.Errorf("unknown layout mode %q (want %s or %s)", s, ModePrecomputed, ModeDeferred)
}

// Config holds the layout constants.
type Config struct {
	Mode Mode

	MinWidth       float64 // lower bound on any node width
	LeafFieldWidth float64 // width per name in a field group
	Gap            float64 // horizontal gap between siblings
	NodeHeight     float64 // vertical step per depth level

	Root      graph.Position // fixed root position
	FirstRowY float64        // y of the root's children

	VariableX         float64
	VariableY         float64 // y of the first variable
	VariableRowHeight float64
}

// DefaultConfig returns the standard canvas geometry.
func DefaultConfig() Config {
	return Config{
		Mode:              ModePrecomputed,
		MinWidth:          200,
		LeafFieldWidth:    60,
		Gap:               50,
		NodeHeight:        120,
		Root:              graph.Position{X: 250, Y: 50},
		FirstRowY:         100,
		VariableX:         50,
		VariableY:         100,
		VariableRowHeight: 60,
	}
}

// Validate checks that the geometry is usable.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.MinWidth <= 0 || c.LeafFieldWidth <= 0 || c.NodeHeight <= 0 {
		return fmt.Errorf("layout widths and heights must be positive")
	}
	if c.Gap < 0 || c.VariableRowHeight < 0 {
		return fmt.Errorf("layout gaps must not be negative")
	}
	return nil
}

func (c Config) deferred() bool { return c.Mode == ModeDeferred }
