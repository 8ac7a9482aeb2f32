package interact

import (
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
)

// Selection is the optional selected node. The zero value selects nothing.
type Selection struct {
	id  string
	set bool
}

// Toggle selects id, or clears the selection if id is already selected. It returns
// whether id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if s.set && s.id == id {
		s.Clear()
		return false
	}
	s.Set(id)
	return true
}

func (s *Selection) Set(id string) {
	s.id, s.set = id, true
}

func (s *Selection) Clear() {
	s.id, s.set = "", false
}

// Selected returns the selected id, if any.
func (s Selection) Selected() (string, bool) {
	return s.id, s.set
}

// ID returns the selected id or "".
func (s Selection) ID() string {
	return s.id
}

// Adjacent returns the ids directly linked to the selected node. It is empty when
// nothing is selected.
func (s Selection) Adjacent(edges []graphdata.Edge) lib.Set[string] {
	if !s.set {
		return lib.NewSet[string]()
	}
	return graphdata.Neighbors(edges, s.id)
}
