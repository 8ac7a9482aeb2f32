package lib

// Indexer gives a dense, zero based int to each unique string in the order they are
// first seen. It is used to key per-body arrays by node id. Not thread-safe.
type Indexer struct {
	ids  map[string]int
	keys []string
}

func NewIndexer() *Indexer {
	return &Indexer{
		ids:  make(map[string]int),
		keys: []string{},
	}
}

// Index returns the index for str, assigning the next free one if it's new.
func (s *Indexer) Index(str string) int {
	if id, ok := s.ids[str]; ok {
		return id
	}
	id := len(s.keys)
	s.ids[str] = id
	s.keys = append(s.keys, str)
	return id
}

// Lookup returns the index for str without assigning one.
func (s *Indexer) Lookup(str string) (int, bool) {
	id, ok := s.ids[str]
	return id, ok
}

// Key is the inverse of Index.
func (s *Indexer) Key(id int) string {
	return s.keys[id]
}

func (s *Indexer) Len() int {
	return len(s.keys)
}
