package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clicker/internal/core/autoclicker"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) (frame, autoclicker.Status) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var f frame
	require.NoError(t, json.Unmarshal(payload, &f))
	var st autoclicker.Status
	if f.Type != "error" {
		require.NoError(t, json.Unmarshal(f.Data, &st))
	}
	return f, st
}

// readFrameOfType skips frames until one of typ arrives; the broadcaster may
// interleave its own "state" frames.
func readFrameOfType(t *testing.T, conn *websocket.Conn, typ string) autoclicker.Status {
	t.Helper()
	for i := 0; i < 10; i++ {
		f, st := readFrame(t, conn)
		if f.Type == typ {
			return st
		}
	}
	t.Fatalf("no %q frame received", typ)
	return autoclicker.Status{}
}

func startTestServer(t *testing.T, ctrl Controller) (*Server, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := NewServer(slog.Default(), ctrl, ServerConfig{Interval: 10 * time.Millisecond})
	go s.Hub().Run(ctx)
	go s.RunBroadcaster(ctx)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebsocketInitAndCommands(t *testing.T) {
	ctrl := newFakeController()
	s, ts := startTestServer(t, ctrl)
	conn := dial(t, ts)

	f, st := readFrame(t, conn)
	assert.Equal(t, "state_init", f.Type)
	assert.Equal(t, "fake", st.Backend)
	assert.False(t, st.State.Running)
	waitUntil(t, time.Second, func() bool { return s.Hub().ClientCount() == 1 }, "client not registered")

	require.NoError(t, conn.WriteJSON(Command{Type: "toggle"}))
	st = readFrameOfType(t, conn, "state")
	assert.True(t, st.State.Running)

	require.NoError(t, conn.WriteJSON(Command{Type: "set_min_cps", Value: 40}))
	readFrameOfType(t, conn, "error")
	assert.Equal(t, uint32(5), ctrl.Status().State.MinCPS)
}

func TestBroadcasterPushesExternalChanges(t *testing.T) {
	ctrl := newFakeController()
	s, ts := startTestServer(t, ctrl)
	conn := dial(t, ts)

	f, _ := readFrame(t, conn)
	require.Equal(t, "state_init", f.Type)
	waitUntil(t, time.Second, func() bool { return s.Hub().ClientCount() == 1 }, "client not registered")

	ctrl.SetClickMode(autoclicker.ClickModeBoth)

	f, st := readFrame(t, conn)
	assert.Equal(t, "state", f.Type)
	assert.Equal(t, "both", st.State.Mode)
}

func TestStatusEndpoint(t *testing.T) {
	_, ts := startTestServer(t, newFakeController())

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var st autoclicker.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, autoclicker.DefaultMaxCPS, st.State.MaxCPS)

	resp2, err := http.Post(ts.URL+"/status", "application/json", nil)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}

func TestSameHostOrigin(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://127.0.0.1:8765/ws", nil)
	assert.True(t, sameHostOrigin(r), "no origin header")

	r.Header.Set("Origin", "http://127.0.0.1:8765")
	assert.True(t, sameHostOrigin(r))

	r.Header.Set("Origin", "http://evil.example")
	assert.False(t, sameHostOrigin(r))
}
