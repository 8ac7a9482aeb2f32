package view

import (
	"context"
	"log/slog"
	"math"

	"github.com/psidex/assetmap/internal/assetapi"
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/graphs"
	"github.com/psidex/assetmap/internal/interact"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
)

// MinHeight is the smallest height a resize will store.
const MinHeight = 500

// SelectionInfo is the detail panel content for the selected node.
type SelectionInfo struct {
	Node        *graphdata.Node        `json:"node"`
	Connections []graphdata.Connection `json:"connections"`
}

// Stats is the summary line over the graph.
type Stats struct {
	Nodes      int `json:"nodes"`
	Links      int `json:"links"`
	TotalNodes int `json:"total_nodes"`
}

// Publisher receives everything a Session shows.
type Publisher interface {
	graphs.FrameSink
	PublishSelection(SelectionInfo)
	PublishStats(Stats)
	PublishError(msg string)
}

// Mode picks what a session loads from its source.
type Mode struct {
	// ImpactID switches the session to the downstream impact of one asset.
	ImpactID string
	Depth    int
}

type SessionOptions struct {
	Logger   *slog.Logger
	Metrics  *metrics.Registry
	Source   assetapi.Source
	Mode     Mode
	Criteria graphdata.Criteria
	// Fallback is shown when the first load fails.
	Fallback graphdata.Graph
	View     Options
}

// Session is the page around a view: the loaded graph, the filter, the selection and
// the dimensions. Client events are posted to it from any goroutine and handled on the
// view's loop.
type Session struct {
	logger  *slog.Logger
	metrics *metrics.Registry
	source  assetapi.Source
	pub     Publisher
	view    *View

	mode      Mode
	fallback  graphdata.Graph
	graph     graphdata.Graph
	loaded    bool
	filtered  graphdata.Graph
	criteria  graphdata.Criteria
	selection interact.Selection
	loadSeq   int
	ctx       context.Context
}

func NewSession(pub Publisher, opts SessionOptions) *Session {
	opts.View.Sink = pub
	if opts.View.Logger == nil {
		opts.View.Logger = opts.Logger
	}
	if opts.View.Metrics == nil {
		opts.View.Metrics = opts.Metrics
	}
	return &Session{
		logger:   lib.OrDiscard(opts.Logger),
		metrics:  opts.Metrics,
		source:   opts.Source,
		pub:      pub,
		view:     New(opts.View),
		mode:     opts.Mode,
		fallback: opts.Fallback,
		criteria: opts.Criteria,
		ctx:      context.Background(),
	}
}

func (s *Session) View() *View {
	return s.view
}

// Post queues e to be handled on the loop goroutine.
func (s *Session) Post(e Event) {
	s.view.Post(func(*View) {
		s.metrics.RecordSessionEvent(e.eventType())
		s.handle(e)
	})
}

// Run loads the graph and runs the view loop until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	s.metrics.RecordSessionOpened()
	defer s.metrics.RecordSessionClosed()
	s.view.Post(func(*View) { s.load() })
	return s.view.Run(ctx)
}

func (s *Session) handle(e Event) {
	switch e := e.(type) {
	case PointerDown:
		s.view.PointerDown(e.X, e.Y)
	case PointerMove:
		s.view.PointerMove(e.X, e.Y)
	case PointerUp:
		s.view.PointerUp(e.X, e.Y)
	case Wheel:
		s.view.Wheel(e.DeltaY, e.X, e.Y)
	case Resize:
		s.view.Resize(e.Width, math.Max(e.Height, MinHeight))
	case FilterChange:
		s.setCriteria(e.Criteria)
	case ClearSelection:
		s.setSelection("")
	case SelectNode:
		s.setSelection(e.ID)
	case Reload:
		s.load()
	case graphLoaded:
		s.loadedGraph(e)
	case Unmount:
		s.view.Unmount()
	default:
		s.logger.Warn("Unhandled session event", "type", e.eventType())
	}
}

// load fetches the graph in the background, the result comes back as an event.
func (s *Session) load() {
	s.loadSeq++
	seq := s.loadSeq
	if s.source == nil {
		s.handle(graphLoaded{seq: seq, graph: s.fallback})
		return
	}
	ctx, mode, assetType := s.ctx, s.mode, s.criteria.AssetType
	go func() {
		var (
			g   graphdata.Graph
			err error
		)
		if mode.ImpactID != "" {
			g, err = s.source.Impact(ctx, mode.ImpactID, mode.Depth)
		} else {
			g, err = s.source.Graph(ctx, assetType)
		}
		s.Post(graphLoaded{seq: seq, graph: g, err: err})
	}()
}

func (s *Session) loadedGraph(e graphLoaded) {
	if e.seq != s.loadSeq {
		return
	}
	if e.err != nil {
		s.logger.Warn("Failed to load graph", "error", e.err, "impact", s.mode.ImpactID)
		s.pub.PublishError("failed to load graph: " + e.err.Error())
		if s.loaded {
			return
		}
		e.graph = s.fallback
	}
	s.graph = e.graph
	s.loaded = true
	s.selection.Clear()
	s.redraw()
}

func (s *Session) setCriteria(c graphdata.Criteria) {
	typeChanged := c.AssetType != s.criteria.AssetType
	s.criteria = c
	s.selection.Clear()
	if typeChanged && s.source != nil && s.mode.ImpactID == "" {
		s.load()
	}
	s.redraw()
}

func (s *Session) redraw() {
	s.filtered = graphdata.Filter(s.graph, s.criteria)
	s.view.Draw(DrawRequest{
		Nodes:      s.filtered.Nodes,
		Links:      s.filtered.Links,
		OnClick:    s.nodeClicked,
		SelectedID: s.selection.ID(),
	})
	s.pub.PublishStats(Stats{
		Nodes:      len(s.filtered.Nodes),
		Links:      len(s.filtered.Links),
		TotalNodes: len(s.graph.Nodes),
	})
	s.publishSelection()
}

func (s *Session) nodeClicked(n graphdata.Node) {
	s.selection.Toggle(n.ID)
	s.view.Select(s.selection.ID())
	s.publishSelection()
}

func (s *Session) setSelection(id string) {
	if id == "" {
		s.selection.Clear()
	} else {
		s.selection.Set(id)
	}
	s.view.Select(s.selection.ID())
	s.publishSelection()
}

func (s *Session) publishSelection() {
	id, ok := s.selection.Selected()
	if !ok {
		s.pub.PublishSelection(SelectionInfo{Connections: []graphdata.Connection{}})
		return
	}
	info := SelectionInfo{Connections: graphdata.Connections(s.graph, id)}
	if n, found := s.graph.NodeByID(id); found {
		copied := *n
		info.Node = &copied
	}
	s.pub.PublishSelection(info)
}

// Criteria returns the current filter.
func (s *Session) Criteria() graphdata.Criteria {
	return s.criteria
}

// Selection returns the selected node id, if any.
func (s *Session) Selection() (string, bool) {
	return s.selection.Selected()
}
