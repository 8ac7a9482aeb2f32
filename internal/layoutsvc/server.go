package layoutsvc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
)

const (
	DefaultMaxTicks = 300
	MaxTicksLimit   = 10_000
	// ctx is checked between batches of ticks.
	tickBatch = 50
)

type Server struct {
	logger  *slog.Logger
	metrics *metrics.Registry
	layout  layout.Config
}

var _ LayoutServer = (*Server)(nil)

// NewServer computes layouts with base, request dimensions and seed override it.
func NewServer(logger *slog.Logger, m *metrics.Registry, base layout.Config) *Server {
	return &Server{logger: lib.OrDiscard(logger), metrics: m, layout: base}
}

func (s *Server) Compute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	out, err := s.compute(ctx, in)
	s.metrics.RecordLayoutRequest(status.Code(err).String())
	return out, err
}

func (s *Server) compute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.MaxTicks <= 0 {
		req.MaxTicks = DefaultMaxTicks
	}
	if req.MaxTicks > MaxTicksLimit {
		return nil, status.Errorf(codes.InvalidArgument, "max_ticks %d is over the limit of %d", req.MaxTicks, MaxTicksLimit)
	}

	known := lib.NewSet(req.Nodes...)
	if known.Size() != len(req.Nodes) {
		return nil, status.Error(codes.InvalidArgument, "duplicate node ids")
	}
	for _, e := range req.Links {
		if !known.Contains(e.Source) || !known.Contains(e.Target) {
			return nil, status.Errorf(codes.InvalidArgument, "link %s -> %s references an unknown node", e.Source, e.Target)
		}
	}

	resp := Response{Positions: map[string]Position{}}
	if len(req.Nodes) > 0 {
		cfg := s.layout
		if req.Width > 0 {
			cfg.Width = req.Width
		}
		if req.Height > 0 {
			cfg.Height = req.Height
		}
		if req.Seed != 0 {
			cfg.Seed = req.Seed
		}

		sim := layout.New(req.Nodes, req.Links, cfg)
		for resp.Ticks < req.MaxTicks && sim.State() != layout.Settled {
			if err := ctx.Err(); err != nil {
				return nil, status.FromContextError(err).Err()
			}
			resp.Ticks += sim.Settle(min(tickBatch, req.MaxTicks-resp.Ticks))
		}
		resp.Settled = sim.State() == layout.Settled
		for _, b := range sim.Bodies() {
			resp.Positions[b.ID] = Position{X: b.X, Y: b.Y}
		}
		sim.Stop()
	}

	s.logger.Debug("Computed layout", "nodes", len(req.Nodes), "links", len(req.Links), "ticks", resp.Ticks, "settled", resp.Settled)
	out, err := resp.toStruct()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
