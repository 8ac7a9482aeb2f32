// Package graphdata holds the asset graph as delivered by the inventory API and the
// pure transformations the views apply to it before layout.
package graphdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type AssetType string

const (
	Hardware AssetType = "hardware"
	Software AssetType = "software"
	Cloud    AssetType = "cloud"
	Network  AssetType = "network"
)

// AssetTypes lists the known asset types in display order.
var AssetTypes = []AssetType{Hardware, Software, Cloud, Network}

func (t AssetType) Valid() bool {
	switch t {
	case Hardware, Software, Cloud, Network:
		return true
	}
	return false
}

// normalizeAssetType maps the backend's longer spellings on to the short ones.
func normalizeAssetType(s string) AssetType {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "cloud_service" {
		return Cloud
	}
	return AssetType(s)
}

type Status string

const (
	Active      Status = "active"
	Retired     Status = "retired"
	Maintenance Status = "maintenance"
	Disposed    Status = "disposed"
	Planned     Status = "planned"
)

func (s Status) Valid() bool {
	switch s {
	case Active, Retired, Maintenance, Disposed, Planned:
		return true
	}
	return false
}

// Node is one asset. It never carries layout state.
type Node struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AssetType AssetType `json:"asset_type"`
	Status    Status    `json:"status"`
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID        flexID `json:"id"`
		Name      string `json:"name"`
		AssetType string `json:"asset_type"`
		Type      string `json:"type"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	assetType := aux.AssetType
	if assetType == "" {
		assetType = aux.Type
	}
	*n = Node{
		ID:        string(aux.ID),
		Name:      aux.Name,
		AssetType: normalizeAssetType(assetType),
		Status:    Status(strings.ToLower(aux.Status)),
	}
	return nil
}

// Endpoint is one end of a link: either a bare node id or a reference to a resolved
// node. The zero value is an empty id.
type Endpoint struct {
	id   string
	node *Node
}

// ID returns an Endpoint holding a bare id.
func ID(id string) Endpoint {
	return Endpoint{id: id}
}

// Ref returns an Endpoint referencing a resolved node.
func Ref(n *Node) Endpoint {
	return Endpoint{node: n}
}

// Resolve returns the node id regardless of which form the Endpoint is in.
func (e Endpoint) Resolve() string {
	if e.node != nil {
		return e.node.ID
	}
	return e.id
}

func (e Endpoint) IsRef() bool {
	return e.node != nil
}

func (e Endpoint) String() string {
	return e.Resolve()
}

func (e Endpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Resolve())
}

// UnmarshalJSON accepts a string id, a numeric id, or an object with an "id" field.
func (e *Endpoint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var n Node
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("decode endpoint object: %w", err)
		}
		*e = Ref(&n)
		return nil
	}
	var id flexID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	*e = ID(string(id))
	return nil
}

// Link is a directed, typed relationship between two nodes.
type Link struct {
	Source           Endpoint `json:"source"`
	Target           Endpoint `json:"target"`
	RelationshipType string   `json:"relationship_type"`
}

func (l *Link) UnmarshalJSON(b []byte) error {
	var aux struct {
		Source           Endpoint `json:"source"`
		Target           Endpoint `json:"target"`
		RelationshipType string   `json:"relationship_type"`
		Type             string   `json:"type"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	rel := aux.RelationshipType
	if rel == "" {
		rel = aux.Type
	}
	*l = Link{Source: aux.Source, Target: aux.Target, RelationshipType: rel}
	return nil
}

// Edge is a Link after normalisation, both ends are plain ids.
type Edge struct {
	Source           string `json:"source"`
	Target           string `json:"target"`
	RelationshipType string `json:"relationship_type"`
}

// Touches reports whether id is either end of the edge.
func (e Edge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

func (g Graph) Empty() bool {
	return len(g.Nodes) == 0
}

// NodeByID returns a pointer into g.Nodes.
func (g Graph) NodeByID(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// flexID decodes a JSON string or number in to a string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	if i, err := n.Int64(); err == nil {
		*f = flexID(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexID(n.String())
	return nil
}
