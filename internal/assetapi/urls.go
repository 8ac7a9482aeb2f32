package assetapi

import (
	"net/url"
	"strconv"
)

const (
	graphPath  = "relationships/graph"
	impactPath = "relationships/impact"
)

// endpoint joins elems on to base and sets query, keeping base's own path.
// For example: https://inv.local/api + relationships/graph -> https://inv.local/api/relationships/graph
func endpoint(base *url.URL, query url.Values, elems ...string) string {
	u := base.JoinPath(elems...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func graphURL(base *url.URL, assetType string) string {
	q := url.Values{}
	if assetType != "" {
		q.Set("asset_type", assetType)
	}
	return endpoint(base, q, graphPath)
}

func impactURL(base *url.URL, id string, depth int) string {
	q := url.Values{}
	q.Set("depth", strconv.Itoa(depth))
	return endpoint(base, q, impactPath, id)
}

// hostname takes a URL and returns just the hostname, for logging.
// For example: https://inv.local:8443/api -> inv.local
func hostname(u *url.URL) string {
	return u.Hostname()
}
