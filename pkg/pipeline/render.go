package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/heatsvg/pkg/render"
	"github.com/matzehuels/heatsvg/pkg/svg"
)

// Render serializes doc in each of the given formats. Raster and PDF
// conversions run concurrently.
func Render(ctx context.Context, doc *svg.Node, formats []string, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	markup := svg.Marshal(doc)
	artifacts := make(map[string][]byte, len(formats))
	var mu sync.Mutex
	set := func(format string, data []byte) {
		mu.Lock()
		artifacts[format] = data
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		switch format {
		case FormatSVG:
			set(format, markup)
		case FormatJSON:
			g.Go(func() error {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("render json: %w", err)
				}
				set(format, data)
				return nil
			})
		case FormatPNG:
			g.Go(func() error {
				data, err := render.ToPNG(gctx, markup, opts.Output.Scale)
				if err != nil {
					return fmt.Errorf("render png: %w", err)
				}
				set(format, data)
				return nil
			})
		case FormatPDF:
			g.Go(func() error {
				data, err := render.ToPDF(gctx, markup)
				if err != nil {
					return fmt.Errorf("render pdf: %w", err)
				}
				set(format, data)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
