package graphs

import (
	"sync"

	"github.com/psidex/assetmap/internal/render"
)

// Recorder is a FrameSink that keeps the frames it's given.
type Recorder struct {
	mu     *sync.Mutex
	frames []render.Frame
	limit  int
}

var _ FrameSink = (*Recorder)(nil)

// NewRecorder keeps at most limit frames, dropping the oldest. A limit <= 0 keeps all.
func NewRecorder(limit int) *Recorder {
	return &Recorder{mu: &sync.Mutex{}, limit: limit}
}

func (r *Recorder) PublishFrame(f render.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	if r.limit > 0 && len(r.frames) > r.limit {
		r.frames = r.frames[len(r.frames)-r.limit:]
	}
}

func (r *Recorder) Frames() []render.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]render.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the most recent frame.
func (r *Recorder) Last() (render.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return render.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}
