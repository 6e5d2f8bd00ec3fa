package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	helper "github.com/lintang-b-s/roadfinder/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ps, err := usecases.NewPlanningService(zap.NewNop(), usecases.Config{CacheSize: 8, SnapRadius: 2, NumWorkers: 2})
	require.NoError(t, err)

	grid, err := da.NewOccupancyGrid([][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)
	require.NoError(t, ps.RegisterMap("warehouse", grid))

	router := httprouter.New()
	New(ps, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestComputePath(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doJSON(t, h, http.MethodPost, "/api/computePath",
		`{"map_name":"warehouse","start":{"row":0,"col":0},"end":{"row":2,"col":3}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp usecases.PlanResponse
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, []da.GridCell{
		da.NewGridCell(0, 0), da.NewGridCell(0, 1), da.NewGridCell(0, 2), da.NewGridCell(1, 3), da.NewGridCell(2, 3),
	}, resp.Path)
	assert.Contains(t, string(env["data"]), `"commands":["forward","forward","right","right","stop"]`)
}

func TestComputePathInlineGridUnreachable(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doJSON(t, h, http.MethodPost, "/api/computePath",
		`{"grid":[[0,1,0],[0,1,0],[0,1,0]],"start":{"row":0,"col":0},"end":{"row":2,"col":2},"solver":"dijkstra"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp usecases.PlanResponse
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Path)
}

func TestComputePathErrors(t *testing.T) {
	h := newTestRouter(t)

	testCases := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "malformed json",
			body:   `{"map_name":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"map_name":"warehouse","start":{"row":0,"col":0},"end":{"row":2,"col":3},"speed":3}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing end",
			body:   `{"map_name":"warehouse","start":{"row":0,"col":0}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing col",
			body:   `{"map_name":"warehouse","start":{"row":0},"end":{"row":2,"col":3}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "neither map nor grid",
			body:   `{"start":{"row":0,"col":0},"end":{"row":2,"col":3}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unsupported solver",
			body:   `{"map_name":"warehouse","start":{"row":0,"col":0},"end":{"row":2,"col":3},"solver":"a-star"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "ragged inline grid",
			body:   `{"grid":[[0,0],[0]],"start":{"row":0,"col":0},"end":{"row":0,"col":1}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "blocked end",
			body:   `{"map_name":"warehouse","start":{"row":0,"col":0},"end":{"row":1,"col":1}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown map",
			body:   `{"map_name":"garage","start":{"row":0,"col":0},"end":{"row":2,"col":3}}`,
			status: http.StatusNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doJSON(t, h, http.MethodPost, "/api/computePath", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(env["error"], &body))
			assert.Equal(t, http.StatusText(tt.status), body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestComputePaths(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doJSON(t, h, http.MethodPost, "/api/computePaths", `{"requests":[
		{"map_name":"warehouse","start":{"row":0,"col":0},"end":{"row":2,"col":3}},
		{"map_name":"garage","start":{"row":0,"col":0},"end":{"row":2,"col":3}},
		{"grid":[[0,0],[0]],"start":{"row":0,"col":0},"end":{"row":0,"col":1}},
		{"map_name":"warehouse","start":{"row":2,"col":0},"end":{"row":2,"col":0}}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var items []batchItemResponse
	require.NoError(t, json.Unmarshal(env["data"], &items))
	require.Len(t, items, 4)

	require.NotNil(t, items[0].Data)
	assert.Len(t, items[0].Data.Path, 5)

	require.NotNil(t, items[1].Error)
	assert.Equal(t, http.StatusText(http.StatusNotFound), items[1].Error.Code)

	require.NotNil(t, items[2].Error)
	assert.Equal(t, http.StatusText(http.StatusBadRequest), items[2].Error.Code)

	require.NotNil(t, items[3].Data)
	assert.Equal(t, []da.GridCell{da.NewGridCell(2, 0)}, items[3].Data.Path)
}

func TestComputePathsEmpty(t *testing.T) {
	h := newTestRouter(t)
	rec, _ := doJSON(t, h, http.MethodPost, "/api/computePaths", `{"requests":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMaps(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/maps", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var maps []usecases.MapInfo
	require.NoError(t, json.Unmarshal(env["data"], &maps))
	assert.Equal(t, []usecases.MapInfo{{Name: "warehouse", Rows: 3, Cols: 4, FreeCells: 10, Regions: 1}}, maps)
}
