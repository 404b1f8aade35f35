package pipeline

import (
	"testing"

	"github.com/matzehuels/gqlcanvas/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"output", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.Mode != layout.ModePrecomputed {
		t.Errorf("Mode = %q", o.Mode)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v", o.Scale)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "Deferred", opts: Options{Mode: layout.ModeDeferred}},
		{name: "BadMode", opts: Options{Mode: "radial"}, wantErr: true},
		{name: "BadFormat", opts: Options{Formats: []string{"gif"}}, wantErr: true},
		{name: "NegativeScale", opts: Options{Scale: -1}, wantErr: true},
		{name: "BadGeometry", opts: Options{Geometry: &layout.Config{}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutConfigMode(t *testing.T) {
	geo := layout.DefaultConfig()
	geo.Gap = 10
	o := Options{Mode: layout.ModeDeferred, Geometry: &geo}
	cfg := o.LayoutConfig()
	if cfg.Mode != layout.ModeDeferred || cfg.Gap != 10 {
		t.Errorf("LayoutConfig = %+v", cfg)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Mode: layout.ModePrecomputed, Scale: 3}
	if got := o.ArtifactKeyOpts(FormatSVG); got.Scale != 0 {
		t.Errorf("scale should only key PNG artifacts, got %+v", got)
	}
	if got := o.ArtifactKeyOpts(FormatPNG); got.Scale != 3 {
		t.Errorf("PNG key opts = %+v", got)
	}
}
