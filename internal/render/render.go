// Package render draws a link graph as a static node-link diagram.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"link-analyzer/internal/linkgraph"
)

type Options struct {
	Title         string
	Width         vg.Length
	Height        vg.Length
	FontSize      vg.Length
	NodeRadius    vg.Length
	ArrowSize     vg.Length
	NodeColor     color.Color
	EdgeColor     color.Color
	LayoutUpdates int
}

func DefaultOptions() Options {
	return Options{
		Title:         "Link graph",
		Width:         10 * vg.Inch,
		Height:        8 * vg.Inch,
		FontSize:      vg.Points(8),
		NodeRadius:    vg.Points(9),
		ArrowSize:     vg.Points(6),
		NodeColor:     color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff}, // lightblue
		EdgeColor:     color.Gray{Y: 0x80},
		LayoutUpdates: 30,
	}
}

// Layout places every page of g with a force-directed (Eades) layout.
// Edges are treated as undirected and self-loops are ignored.
func Layout(g *linkgraph.Graph, updates int) map[int64]r2.Vec {
	pages := g.Pages()
	coords := make(map[int64]r2.Vec, len(pages))
	if len(pages) == 0 {
		return coords
	}
	if updates < 1 {
		updates = 1
	}

	u := simple.NewUndirectedGraph()
	for _, p := range pages {
		u.AddNode(simple.Node(p.ID()))
	}
	for _, l := range g.Links() {
		if l.From.ID() == l.To.ID() || u.HasEdgeBetween(l.From.ID(), l.To.ID()) {
			continue
		}
		u.SetEdge(simple.Edge{F: simple.Node(l.From.ID()), T: simple.Node(l.To.ID())})
	}

	eades := layout.EadesR2{Repulsion: 1, Rate: 0.05, Updates: updates, Theta: 0.2}
	o := layout.NewOptimizerR2(u, eades.Update)
	for o.Update() {
	}

	for _, p := range pages {
		coords[p.ID()] = o.Coord2(p.ID())
	}
	return coords
}

// PNG renders g as a PNG image.
func PNG(g *linkgraph.Graph, opts Options) ([]byte, error) {
	coords := Layout(g, opts.LayoutUpdates)

	p := plot.New()
	p.Title.Text = opts.Title
	p.HideAxes()

	heads := arrows{radius: opts.NodeRadius, size: opts.ArrowSize, color: opts.EdgeColor}
	for _, l := range g.Links() {
		if l.From.ID() == l.To.ID() {
			continue
		}
		from, to := coords[l.From.ID()], coords[l.To.ID()]
		heads.edges = append(heads.edges, [2]r2.Vec{from, to})
		line, err := plotter.NewLine(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
		if err != nil {
			return nil, fmt.Errorf("failed to plot link %s -> %s: %w", l.From.URL, l.To.URL, err)
		}
		line.LineStyle.Color = opts.EdgeColor
		line.LineStyle.Width = vg.Points(0.5)
		p.Add(line)
	}
	p.Add(heads)

	pages := g.Pages()
	xys := make(plotter.XYs, len(pages))
	names := make([]string, len(pages))
	for i, pg := range pages {
		c := coords[pg.ID()]
		xys[i] = plotter.XY{X: c.X, Y: c.Y}
		names[i] = pg.URL
	}

	if len(pages) > 0 {
		nodes, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot nodes: %w", err)
		}
		nodes.GlyphStyle = draw.GlyphStyle{
			Color:  opts.NodeColor,
			Radius: opts.NodeRadius,
			Shape:  draw.CircleGlyph{},
		}

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
		if err != nil {
			return nil, fmt.Errorf("failed to plot labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = opts.FontSize
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YCenter
		}

		p.Add(nodes, labels)
	}

	setRanges(p, xys)

	w, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create PNG canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// arrows draws a filled head at the target end of every edge, stopping at
// the rim of the target node.
type arrows struct {
	edges  [][2]r2.Vec
	radius vg.Length
	size   vg.Length
	color  color.Color
}

func (a arrows) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, e := range a.edges {
		from := vg.Point{X: trX(e[0].X), Y: trY(e[0].Y)}
		to := vg.Point{X: trX(e[1].X), Y: trY(e[1].Y)}
		if head := arrowHead(from, to, a.radius, a.size); head != nil {
			c.FillPolygon(a.color, head)
		}
	}
}

// arrowHead returns the triangle pointing at to, with its tip radius short of
// it. Edges too short to fit a head return nil.
func arrowHead(from, to vg.Point, radius, size vg.Length) []vg.Point {
	d := to.Sub(from)
	length := vg.Length(math.Hypot(float64(d.X), float64(d.Y)))
	if length <= radius+size {
		return nil
	}
	u := d.Scale(1 / length)
	normal := vg.Point{X: -u.Y, Y: u.X}

	tip := to.Sub(u.Scale(radius))
	back := tip.Sub(u.Scale(size))
	return []vg.Point{
		tip,
		back.Add(normal.Scale(size / 2)),
		back.Sub(normal.Scale(size / 2)),
	}
}

// setRanges fits the axes to the node positions with a margin, which also
// keeps single-node and empty graphs drawable.
func setRanges(p *plot.Plot, xys plotter.XYs) {
	minX, maxX, minY, maxY := -1.0, 1.0, -1.0, 1.0
	if len(xys) > 0 {
		minX, maxX = math.Inf(1), math.Inf(-1)
		minY, maxY = math.Inf(1), math.Inf(-1)
		for _, xy := range xys {
			minX, maxX = math.Min(minX, xy.X), math.Max(maxX, xy.X)
			minY, maxY = math.Min(minY, xy.Y), math.Max(maxY, xy.Y)
		}
	}

	padX := math.Max((maxX-minX)*0.1, 1)
	padY := math.Max((maxY-minY)*0.1, 1)
	p.X.Min, p.X.Max = minX-padX, maxX+padX
	p.Y.Min, p.Y.Max = minY-padY, maxY+padY
}
