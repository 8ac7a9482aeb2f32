package wsframes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/render"
	"github.com/psidex/assetmap/internal/view"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		msg  string
		want view.Event
	}{
		{`{"type":"pointerdown","x":1,"y":2}`, view.PointerDown{X: 1, Y: 2}},
		{`{"type":"pointermove","x":3,"y":4}`, view.PointerMove{X: 3, Y: 4}},
		{`{"type":"pointerup","x":5,"y":6}`, view.PointerUp{X: 5, Y: 6}},
		{`{"type":"wheel","delta_y":-100,"x":7,"y":8}`, view.Wheel{DeltaY: -100, X: 7, Y: 8}},
		{`{"type":"resize","width":1024,"height":300}`, view.Resize{Width: 1024, Height: 300}},
		{`{"type":"filter","asset_type":"Network","search":"core"}`,
			view.FilterChange{Criteria: graphdata.Criteria{AssetType: graphdata.Network, Search: "core"}}},
		{`{"type":"filter","asset_type":"all"}`, view.FilterChange{}},
		{`{"type":"clear"}`, view.ClearSelection{}},
		{`{"type":"select","id":"7"}`, view.SelectNode{ID: "7"}},
		{`{"type":"select"}`, view.ClearSelection{}},
		{`{"type":"reload"}`, view.Reload{}},
	}
	for _, tt := range tests {
		got, err := DecodeEvent([]byte(tt.msg))
		require.NoError(t, err, tt.msg)
		assert.Equal(t, tt.want, got, tt.msg)
	}
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":"teleport"}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)

	_, err = DecodeEvent([]byte(`{"type":"filter","asset_type":"printer"}`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}

// echoPair returns a server side Conn and the client websocket reading from it.
func echoPair(t *testing.T) (*Conn, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- NewConn(lib.NewThreadSafeWebSocket(c, time.Second), nil)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case c := <-conns:
		return c, client
	case <-time.After(time.Second):
		t.Fatal("no server connection")
	}
	return nil, nil
}

func readMessage(t *testing.T, client *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	var m struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, client.ReadJSON(&m))
	return m.Type, m.Data
}

func TestConnPublishes(t *testing.T) {
	conn, client := echoPair(t)

	conn.SendHello("abc")
	conn.PublishFrame(render.Frame{Tick: 3, Nodes: []render.NodeFrame{{ID: "1"}}})
	conn.PublishStats(view.Stats{Nodes: 1, Links: 0, TotalNodes: 12})
	conn.PublishSelection(view.SelectionInfo{})
	conn.PublishError("failed to load graph")

	typ, data := readMessage(t, client)
	assert.Equal(t, TypeHello, typ)
	var hello Hello
	require.NoError(t, json.Unmarshal(data, &hello))
	assert.Equal(t, "abc", hello.SessionID)
	assert.Len(t, hello.Legend, len(graphdata.AssetTypes))

	typ, data = readMessage(t, client)
	assert.Equal(t, TypeFrame, typ)
	var f render.Frame
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, 3, f.Tick)

	typ, data = readMessage(t, client)
	assert.Equal(t, TypeStats, typ)
	assert.JSONEq(t, `{"nodes":1,"links":0,"total_nodes":12}`, string(data))

	typ, _ = readMessage(t, client)
	assert.Equal(t, TypeSelection, typ)

	typ, data = readMessage(t, client)
	assert.Equal(t, TypeError, typ)
	assert.JSONEq(t, `{"message":"failed to load graph"}`, string(data))

	assert.Equal(t, int64(5), conn.Sent())
	assert.False(t, conn.Broken())
}

func TestConnStopsAfterFailedWrite(t *testing.T) {
	conn, client := echoPair(t)
	require.NoError(t, conn.ws.Close())
	client.Close()

	conn.PublishStats(view.Stats{})
	assert.True(t, conn.Broken())
	conn.PublishStats(view.Stats{})
	assert.Equal(t, int64(0), conn.Sent())
}
