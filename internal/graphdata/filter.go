package graphdata

import (
	"errors"
	"strings"

	"github.com/psidex/assetmap/internal/frontier"
	"github.com/psidex/assetmap/internal/lib"
)

var ErrUnknownNode = errors.New("unknown node")

// Criteria is the page level filter. The zero value matches everything.
type Criteria struct {
	AssetType AssetType `json:"asset_type"`
	Search    string    `json:"search"`
}

func (c Criteria) Empty() bool {
	return c.AssetType == "" && c.Search == ""
}

func (c Criteria) Match(n Node) bool {
	if c.AssetType != "" && n.AssetType != c.AssetType {
		return false
	}
	search := strings.ToLower(c.Search)
	if search != "" && !strings.Contains(strings.ToLower(n.Name), search) {
		return false
	}
	return true
}

// Filter keeps the nodes matching c and the links whose both ends were kept.
func Filter(g Graph, c Criteria) Graph {
	keep := lib.NewSet[string]()
	out := Graph{Nodes: []Node{}, Links: []Link{}}
	for _, n := range g.Nodes {
		if c.Match(n) {
			keep.Add(n.ID)
			out.Nodes = append(out.Nodes, n)
		}
	}
	out.Links = linksWithin(g.Links, keep)
	return out
}

// Subgraph keeps the nodes in ids and the links among them.
func Subgraph(g Graph, ids lib.Set[string]) Graph {
	out := Graph{Nodes: []Node{}, Links: []Link{}}
	for _, n := range g.Nodes {
		if ids.Contains(n.ID) {
			out.Nodes = append(out.Nodes, n)
		}
	}
	out.Links = linksWithin(g.Links, ids)
	return out
}

func linksWithin(links []Link, ids lib.Set[string]) []Link {
	out := []Link{}
	for _, l := range links {
		if ids.Contains(l.Source.Resolve()) && ids.Contains(l.Target.Resolve()) {
			out = append(out, Link{Source: ID(l.Source.Resolve()), Target: ID(l.Target.Resolve()), RelationshipType: l.RelationshipType})
		}
	}
	return out
}

type Direction string

const (
	Outgoing Direction = "outgoing"
	Incoming Direction = "incoming"
)

// Connection is one row of the detail panel for a selected node.
type Connection struct {
	Node             *Node     `json:"node"`
	RelationshipType string    `json:"relationship_type"`
	Direction        Direction `json:"direction"`
}

// Connections lists every link touching id. Node is nil when the other end is not in
// the graph.
func Connections(g Graph, id string) []Connection {
	conns := []Connection{}
	for _, l := range g.Links {
		src, tgt := l.Source.Resolve(), l.Target.Resolve()
		if src != id && tgt != id {
			continue
		}
		direction, other := Outgoing, tgt
		if src != id {
			direction, other = Incoming, src
		}
		c := Connection{RelationshipType: l.RelationshipType, Direction: direction}
		if n, ok := g.NodeByID(other); ok {
			copied := *n
			c.Node = &copied
		}
		conns = append(conns, c)
	}
	return conns
}

// Impact returns the nodes reachable from id by following links forwards at most depth
// times, plus id itself, and the links among them.
func Impact(g Graph, id string, depth int) (Graph, error) {
	if _, ok := g.NodeByID(id); !ok {
		return Graph{}, ErrUnknownNode
	}

	successors := make(map[string][]string)
	for _, l := range g.Links {
		src := l.Source.Resolve()
		successors[src] = append(successors[src], l.Target.Resolve())
	}

	f := frontier.New()
	f.Add(id, 0)
	for {
		entry, ok := f.Pop()
		if !ok {
			break
		}
		if entry.Depth >= depth {
			continue
		}
		for _, next := range successors[entry.ID] {
			f.Add(next, entry.Depth+1)
		}
	}

	return Subgraph(g, f.Visited()), nil
}
