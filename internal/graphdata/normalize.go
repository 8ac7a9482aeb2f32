package graphdata

import "github.com/psidex/assetmap/internal/lib"

// Snapshot is the normalised form handed to a layout: independent node copies and
// links with id-only endpoints.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

// Normalize copies nodes and resolves every link endpoint to its id. It does not check
// that the ids exist. Calling it twice on the same input gives equal results and the
// caller's slices are never modified.
func Normalize(nodes []Node, links []Link) Snapshot {
	s := Snapshot{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(links)),
	}
	copy(s.Nodes, nodes)
	for i, l := range links {
		s.Edges[i] = Edge{
			Source:           l.Source.Resolve(),
			Target:           l.Target.Resolve(),
			RelationshipType: l.RelationshipType,
		}
	}
	return s
}

// NodeIDs returns the node ids in order.
func (s Snapshot) NodeIDs() []string {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func (s Snapshot) Empty() bool {
	return len(s.Nodes) == 0
}

// Links turns the edges back in to id links.
func (s Snapshot) Links() []Link {
	links := make([]Link, len(s.Edges))
	for i, e := range s.Edges {
		links[i] = Link{Source: ID(e.Source), Target: ID(e.Target), RelationshipType: e.RelationshipType}
	}
	return links
}

// Neighbors returns the ids directly linked to id in either direction. id itself is
// only included if it has a link to itself.
func Neighbors(edges []Edge, id string) lib.Set[string] {
	adj := lib.NewSet[string]()
	for _, e := range edges {
		if e.Source == id {
			adj.Add(e.Target)
		}
		if e.Target == id {
			adj.Add(e.Source)
		}
	}
	return adj
}
