package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psidex/assetmap/internal/graphdata"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "#337ab7", Color(graphdata.Hardware))
	assert.Equal(t, "wifi", Lookup(graphdata.Network).Icon)
	assert.Equal(t, Fallback, Lookup("license"))
	assert.Len(t, Legend(), 4)
	assert.Equal(t, "Cloud", Legend()[2].Label)
}
