// Package frontier is a breadth-first work list that never yields the same id twice.
package frontier

import (
	"sync"

	. "github.com/psidex/assetmap/internal/lib"
)

// Entry is a queued id with the number of hops taken to reach it.
type Entry struct {
	ID    string
	Depth int
}

type Frontier struct {
	queue *Queue[Entry]
	// visitedMu makes the visited check and the add in Pop atomic, the same id can be
	// queued twice if it's found from two parents at the same depth.
	visitedMu *sync.Mutex
	visited   map[string]int
}

func New() *Frontier {
	return &Frontier{
		queue:     NewQueue[Entry](),
		visitedMu: &sync.Mutex{},
		visited:   make(map[string]int),
	}
}

// Add queues id, returns false if it's already been visited.
func (f *Frontier) Add(id string, depth int) bool {
	f.visitedMu.Lock()
	defer f.visitedMu.Unlock()
	if _, seen := f.visited[id]; seen {
		return false
	}
	f.queue.Enqueue(Entry{ID: id, Depth: depth})
	return true
}

// Pop returns the oldest unvisited entry and marks it visited.
func (f *Frontier) Pop() (Entry, bool) {
	f.visitedMu.Lock()
	defer f.visitedMu.Unlock()
	for {
		entry, ok := f.queue.Dequeue()
		if !ok {
			return Entry{}, false
		}
		if _, seen := f.visited[entry.ID]; seen {
			continue
		}
		f.visited[entry.ID] = entry.Depth
		return entry, true
	}
}

// Visited returns every popped id.
func (f *Frontier) Visited() Set[string] {
	f.visitedMu.Lock()
	defer f.visitedMu.Unlock()
	s := NewSet[string]()
	for id := range f.visited {
		s.Add(id)
	}
	return s
}

// Depth returns the hop count id was first visited at.
func (f *Frontier) Depth(id string) (int, bool) {
	f.visitedMu.Lock()
	defer f.visitedMu.Unlock()
	d, ok := f.visited[id]
	return d, ok
}

// Size does not account for queued entries that have already been visited.
func (f *Frontier) Size() int {
	return f.queue.Size()
}
