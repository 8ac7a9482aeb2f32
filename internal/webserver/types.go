package webserver

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/psidex/assetmap/internal/assetapi"
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/view"
)

// SessionConfig is the first message a painter sends on /ws.
type SessionConfig struct {
	Type      string  `json:"type"` // always "init"
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	AssetType string  `json:"asset_type"`
	Search    string  `json:"search"`
	// Impact is the asset id to show the downstream impact of, "" for the full map.
	Impact string `json:"impact"`
	Depth  int    `json:"depth"`
}

func parseSessionConfig(msg []byte) (SessionConfig, error) {
	var cfg SessionConfig
	if err := json.Unmarshal(msg, &cfg); err != nil {
		return cfg, fmt.Errorf("decode init message: %w", err)
	}
	if cfg.Type != "init" {
		return cfg, fmt.Errorf("expected init message, got %q", cfg.Type)
	}
	t := graphdata.AssetType(strings.ToLower(strings.TrimSpace(cfg.AssetType)))
	if t != "" && t != "all" && !t.Valid() {
		return cfg, fmt.Errorf("unknown asset type %q", cfg.AssetType)
	}
	if cfg.Depth == 0 {
		cfg.Depth = assetapi.DefaultDepth
	}
	if cfg.Impact != "" && (cfg.Depth < assetapi.MinDepth || cfg.Depth > assetapi.MaxDepth) {
		return cfg, fmt.Errorf("%w: %d", assetapi.ErrBadDepth, cfg.Depth)
	}
	return cfg, nil
}

func (c SessionConfig) criteria() graphdata.Criteria {
	t := graphdata.AssetType(strings.ToLower(strings.TrimSpace(c.AssetType)))
	if t == "all" {
		t = ""
	}
	return graphdata.Criteria{AssetType: t, Search: c.Search}
}

func (c SessionConfig) mode() view.Mode {
	return view.Mode{ImpactID: strings.TrimSpace(c.Impact), Depth: c.Depth}
}

// dimensions applies the page's minimum height. Zero values keep the layout defaults.
func (c SessionConfig) dimensions() (width, height float64) {
	width = c.Width
	if c.Height > 0 {
		height = math.Max(c.Height, view.MinHeight)
	}
	return width, height
}
