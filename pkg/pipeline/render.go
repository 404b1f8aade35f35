package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/render"
	"github.com/matzehuels/gqlcanvas/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, canvas *graph.ParsedResult, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	dot := nodelink.ToDOT(canvas, nodelink.Options{Mode: opts.Mode, Detailed: opts.Detailed})
	engine := nodelink.EngineFor(opts.Mode)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if svg == nil {
				svg, err = nodelink.RenderSVG(ctx, dot, engine)
			}
			data = svg
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, engine, opts.Scale)
		case FormatPDF:
			if svg == nil {
				svg, err = nodelink.RenderSVG(ctx, dot, engine)
			}
			if err == nil {
				data, err = render.ToPDF(ctx, svg)
			}
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = graph.MarshalResult(canvas)
		case FormatOutput:
			data, err = graph.MarshalOutput(canvas)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
