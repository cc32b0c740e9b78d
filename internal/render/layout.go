// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays plain paragraphs onto fixed-size pages and draws them
// on a canvas. It is the fallback renderer: one paragraph per line, no
// wrapping, no styles, no images, no tables. That loss is part of its
// contract.
package render

import (
	"fmt"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// Geometry fixes where lines go. Coordinates are points with the origin at
// the bottom-left corner of the page.
type Geometry struct {
	Left       float64
	Top        float64
	Bottom     float64
	LineHeight float64
	FontSize   float64
}

// DefaultGeometry is the layout used when nothing is configured.
func DefaultGeometry() Geometry {
	return Geometry{Left: 50, Top: 800, Bottom: 50, LineHeight: 20, FontSize: 12}
}

// GeometryFromConfig converts cfg, keeping defaults for zero fields.
func GeometryFromConfig(cfg types.RenderConfig) Geometry {
	g := DefaultGeometry()
	if cfg.Left != 0 {
		g.Left = cfg.Left
	}
	if cfg.Top != 0 {
		g.Top = cfg.Top
	}
	if cfg.Bottom != 0 {
		g.Bottom = cfg.Bottom
	}
	if cfg.LineHeight != 0 {
		g.LineHeight = cfg.LineHeight
	}
	if cfg.FontSize != 0 {
		g.FontSize = cfg.FontSize
	}
	return g
}

// Validate rejects geometries that cannot place a single line.
func (g Geometry) Validate() error {
	if g.LineHeight <= 0 {
		return fmt.Errorf("line height must be positive, got %v", g.LineHeight)
	}
	if g.Top <= g.Bottom {
		return fmt.Errorf("top margin %v must be above bottom margin %v", g.Top, g.Bottom)
	}
	return nil
}

// Line is one placed string.
type Line struct {
	X, Y float64
	Text string
}

// Page holds the lines of one page, top to bottom.
type Page struct {
	Lines []Line
}

// Layout places each paragraph on its own line. A document with no
// paragraphs still yields one blank page.
func Layout(paragraphs []string, g Geometry) []Page {
	var (
		pages []Page
		cur   Page
		y     = g.Top
	)
	for _, p := range paragraphs {
		cur.Lines = append(cur.Lines, Line{X: g.Left, Y: y, Text: p})
		y -= g.LineHeight
		if y < g.Bottom {
			pages = append(pages, cur)
			cur = Page{}
			y = g.Top
		}
	}
	if len(cur.Lines) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}
	return pages
}
