package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	http_server "github.com/lintang-b-s/roadfinder/pkg/http/server"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, rateLimit RateLimit) *httptest.Server {
	t.Helper()
	ps, err := usecases.NewPlanningService(zap.NewNop(), usecases.Config{CacheSize: 8, SnapRadius: 2, NumWorkers: 2})
	require.NoError(t, err)
	grid, err := da.NewOccupancyGrid([][]int{
		{0, 1, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	require.NoError(t, ps.RegisterMap("yard", grid))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	api := NewAPI(zap.NewNop())
	srv := httptest.NewServer(api.Handler(ctx, http_server.Config{Timeout: 5 * time.Second}, ps, rateLimit))
	t.Cleanup(srv.Close)
	return srv
}

const yardRequest = `{"map_name":"yard","start":{"row":0,"col":0},"end":{"row":2,"col":2}}`

func TestRouterComputePath(t *testing.T) {
	srv := newTestServer(t, RateLimit{})

	resp, err := http.Post(srv.URL+"/api/computePath", "application/json", strings.NewReader(yardRequest))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, err = uuid.Parse(resp.Header.Get(requestIDHeader))
	assert.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"rendered":"[(0, 0) -> (1, 1) -> (2, 2)]"`)
}

func TestRouterKeepsIncomingRequestID(t *testing.T) {
	srv := newTestServer(t, RateLimit{})
	id := uuid.New().String()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/maps", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get(requestIDHeader))
}

func TestRouterEnforcesJSON(t *testing.T) {
	srv := newTestServer(t, RateLimit{})

	resp, err := http.Post(srv.URL+"/api/computePath", "text/plain", strings.NewReader(yardRequest))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestRouterHeartbeatAndMetrics(t *testing.T) {
	srv := newTestServer(t, RateLimit{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/computePath", "application/json", strings.NewReader(yardRequest))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "roadfinder_planner_requests_total")
}

func TestRouterRateLimit(t *testing.T) {
	srv := newTestServer(t, RateLimit{Enabled: true, RPS: 0.001, Burst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/api/maps")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouterWebsocket(t *testing.T) {
	srv := newTestServer(t, RateLimit{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wsutil.WriteClientText(conn, []byte(yardRequest)))
	msg, err := wsutil.ReadServerText(conn)
	require.NoError(t, err)

	var env struct {
		Data usecases.PlanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &env))
	assert.True(t, env.Data.Found)
	assert.Len(t, env.Data.Path, 3)

	require.NoError(t, wsutil.WriteClientText(conn, []byte(`{"map_name":"yard"}`)))
	msg, err = wsutil.ReadServerText(conn)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(msg, []byte(`"error"`)), string(msg))

	require.NoError(t, wsutil.WriteClientText(conn, []byte(`not json`)))
	msg, err = wsutil.ReadServerText(conn)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(msg, []byte(`"Bad Request"`)), string(msg))
}

func TestRouterWebsocketRejectsLargeFrame(t *testing.T) {
	srv := newTestServer(t, RateLimit{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, _, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws")
	require.NoError(t, err)
	defer conn.Close()

	large := append([]byte(`{"grid":"`), bytes.Repeat([]byte("0"), 5<<20)...)
	large = append(large, `"}`...)
	require.NoError(t, wsutil.WriteClientText(conn, large))
	msg, err := wsutil.ReadServerText(conn)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(msg, []byte(`"Request Entity Too Large"`)), string(msg))

	require.NoError(t, wsutil.WriteClientText(conn, []byte(yardRequest)))
	msg, err = wsutil.ReadServerText(conn)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(msg, []byte(`"data"`)), string(msg))
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.1", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "192.168.1.7")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.168.1.7", got)
}
