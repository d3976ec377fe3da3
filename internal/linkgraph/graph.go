// Package linkgraph holds the directed page→link graph built from a crawl.
package linkgraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"
)

// Page is a graph node identified and labelled by its URL.
type Page struct {
	id  int64
	URL string
}

func (p Page) ID() int64 { return p.id }

func (p Page) DOTID() string { return fmt.Sprintf("n%d", p.id) }

func (p Page) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: p.URL}}
}

// Link is a directed edge between two pages.
type Link struct {
	From Page
	To   Page
}

// Graph is a directed link graph. A multigraph backs it so that a page
// linking to itself can be represented; parallel edges are never stored.
type Graph struct {
	g     *multi.DirectedGraph
	byURL map[string]Page
	pages []Page
	links []Link
}

func New() *Graph {
	return &Graph{
		g:     multi.NewDirectedGraph(),
		byURL: make(map[string]Page),
	}
}

// AddPage returns the page for url, adding it if it is not yet present.
func (g *Graph) AddPage(url string) Page {
	if p, ok := g.byURL[url]; ok {
		return p
	}
	p := Page{id: int64(len(g.pages)), URL: url}
	g.g.AddNode(p)
	g.byURL[url] = p
	g.pages = append(g.pages, p)
	return p
}

// AddLink adds the edge from→to, creating both pages as needed.
// It reports whether the edge is new.
func (g *Graph) AddLink(from, to string) bool {
	f := g.AddPage(from)
	t := g.AddPage(to)
	if g.g.HasEdgeFromTo(f.ID(), t.ID()) {
		return false
	}
	g.g.SetLine(g.g.NewLine(f, t))
	g.links = append(g.links, Link{From: f, To: t})
	return true
}

func (g *Graph) HasLink(from, to string) bool {
	f, ok := g.byURL[from]
	if !ok {
		return false
	}
	t, ok := g.byURL[to]
	if !ok {
		return false
	}
	return g.g.HasEdgeFromTo(f.ID(), t.ID())
}

func (g *Graph) PageByURL(url string) (Page, bool) {
	p, ok := g.byURL[url]
	return p, ok
}

func (g *Graph) Page(id int64) (Page, bool) {
	if id < 0 || id >= int64(len(g.pages)) {
		return Page{}, false
	}
	return g.pages[id], true
}

// Pages returns the pages in insertion order.
func (g *Graph) Pages() []Page { return append([]Page(nil), g.pages...) }

// Links returns the edges in insertion order.
func (g *Graph) Links() []Link { return append([]Link(nil), g.links...) }

func (g *Graph) NodeCount() int { return len(g.pages) }

func (g *Graph) EdgeCount() int { return len(g.links) }

// Directed exposes the graph to gonum algorithms.
func (g *Graph) Directed() graph.Directed { return g.g }

// MarshalDOT encodes the graph in Graphviz DOT with URL labels.
func (g *Graph) MarshalDOT(name string) ([]byte, error) {
	b, err := dot.MarshalMulti(g.g, name, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph as DOT: %w", err)
	}
	return b, nil
}
