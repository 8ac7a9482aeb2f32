package layoutsvc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/layout"
)

// Request asks for the settled positions of a graph.
type Request struct {
	Nodes    []string
	Links    []graphdata.Edge
	Width    float64
	Height   float64
	Seed     int64
	MaxTicks int
}

type Position struct {
	X float64
	Y float64
}

type Response struct {
	Positions map[string]Position
	Ticks     int
	Settled   bool
}

var errMalformed = errors.New("malformed layout message")

func (r Request) toStruct() (*structpb.Struct, error) {
	nodes := make([]any, 0, len(r.Nodes))
	for _, id := range r.Nodes {
		nodes = append(nodes, id)
	}
	links := make([]any, 0, len(r.Links))
	for _, e := range r.Links {
		links = append(links, map[string]any{
			"source":            e.Source,
			"target":            e.Target,
			"relationship_type": e.RelationshipType,
		})
	}
	return structpb.NewStruct(map[string]any{
		"nodes":     nodes,
		"links":     links,
		"width":     r.Width,
		"height":    r.Height,
		"seed":      float64(r.Seed),
		"max_ticks": float64(r.MaxTicks),
	})
}

func requestFromStruct(s *structpb.Struct) (Request, error) {
	var r Request
	fields := s.GetFields()

	for _, v := range fields["nodes"].GetListValue().GetValues() {
		id, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return r, fmt.Errorf("%w: node ids must be strings", errMalformed)
		}
		r.Nodes = append(r.Nodes, id.StringValue)
	}
	for i, v := range fields["links"].GetListValue().GetValues() {
		link := v.GetStructValue().GetFields()
		if link == nil {
			return r, fmt.Errorf("%w: link %d is not an object", errMalformed, i)
		}
		e := graphdata.Edge{
			Source:           link["source"].GetStringValue(),
			Target:           link["target"].GetStringValue(),
			RelationshipType: link["relationship_type"].GetStringValue(),
		}
		if e.Source == "" || e.Target == "" {
			return r, fmt.Errorf("%w: link %d has no source or target", errMalformed, i)
		}
		r.Links = append(r.Links, e)
	}
	r.Width = fields["width"].GetNumberValue()
	r.Height = fields["height"].GetNumberValue()
	r.Seed = int64(fields["seed"].GetNumberValue())
	r.MaxTicks = int(fields["max_ticks"].GetNumberValue())
	return r, nil
}

func (r Response) toStruct() (*structpb.Struct, error) {
	positions := make(map[string]any, len(r.Positions))
	for id, p := range r.Positions {
		positions[id] = map[string]any{"x": p.X, "y": p.Y}
	}
	return structpb.NewStruct(map[string]any{
		"positions": positions,
		"ticks":     float64(r.Ticks),
		"settled":   r.Settled,
	})
}

func responseFromStruct(s *structpb.Struct) (Response, error) {
	fields := s.GetFields()
	resp := Response{
		Positions: map[string]Position{},
		Ticks:     int(fields["ticks"].GetNumberValue()),
		Settled:   fields["settled"].GetBoolValue(),
	}
	for id, v := range fields["positions"].GetStructValue().GetFields() {
		p := v.GetStructValue().GetFields()
		if p == nil {
			return resp, fmt.Errorf("%w: position of %q is not an object", errMalformed, id)
		}
		resp.Positions[id] = Position{X: p["x"].GetNumberValue(), Y: p["y"].GetNumberValue()}
	}
	return resp, nil
}

// Lookup lets a response stand in for a simulation when projecting frames.
func (r Response) Lookup(id string) (*layout.Body, bool) {
	p, ok := r.Positions[id]
	if !ok {
		return nil, false
	}
	return layout.PlacedBody(id, p.X, p.Y), true
}
