// Package assetapi fetches relationship graphs from the inventory REST API, with an
// optional redis cache in front and a static source for offline use.
package assetapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/psidex/assetmap/internal/graphdata"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadDepth     = fmt.Errorf("depth must be between %d and %d", MinDepth, MaxDepth)
)

const (
	MinDepth     = 1
	MaxDepth     = 10
	DefaultDepth = 2
)

// Source is where a view gets its graph from.
type Source interface {
	// Graph returns the relationship graph, restricted to one asset type if given.
	Graph(ctx context.Context, assetType graphdata.AssetType) (graphdata.Graph, error)
	// Impact returns id and everything downstream of it within depth hops.
	Impact(ctx context.Context, id string, depth int) (graphdata.Graph, error)
}

func checkDepth(depth int) error {
	if depth < MinDepth || depth > MaxDepth {
		return ErrBadDepth
	}
	return nil
}

// StaticSource serves a fixed graph, applying the API's filtering itself.
type StaticSource struct {
	graph graphdata.Graph
}

var _ Source = (*StaticSource)(nil)

func NewStaticSource(g graphdata.Graph) *StaticSource {
	return &StaticSource{graph: g}
}

func (s *StaticSource) Graph(ctx context.Context, assetType graphdata.AssetType) (graphdata.Graph, error) {
	return graphdata.Filter(s.graph, graphdata.Criteria{AssetType: assetType}), nil
}

func (s *StaticSource) Impact(ctx context.Context, id string, depth int) (graphdata.Graph, error) {
	if err := checkDepth(depth); err != nil {
		return graphdata.Graph{}, err
	}
	g, err := graphdata.Impact(s.graph, id, depth)
	if errors.Is(err, graphdata.ErrUnknownNode) {
		return graphdata.Graph{}, fmt.Errorf("asset %s: %w", id, ErrNotFound)
	}
	return g, err
}
