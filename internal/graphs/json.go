package graphs

import (
	"encoding/json"
	"io"

	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/render"
)

// AdjacencyJSON writes a map of asset id to the sorted ids it links to. Assets with no
// outgoing links map to an empty list.
type AdjacencyJSON struct{}

var _ Exporter = AdjacencyJSON{}

func (AdjacencyJSON) Extension() string {
	return ".json"
}

func adjacency(f render.Frame) map[string][]string {
	sets := make(map[string]lib.Set[string], len(f.Nodes))
	for _, n := range f.Nodes {
		sets[n.ID] = lib.NewSet[string]()
	}
	for _, l := range f.Links {
		if _, ok := sets[l.Source]; !ok {
			sets[l.Source] = lib.NewSet[string]()
		}
		sets[l.Source].Add(l.Target)
	}

	out := make(map[string][]string, len(sets))
	for id, set := range sets {
		out[id] = lib.Sorted(set)
	}
	return out
}

func (AdjacencyJSON) Render(w io.Writer, f render.Frame) error {
	data, err := json.MarshalIndent(adjacency(f), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
