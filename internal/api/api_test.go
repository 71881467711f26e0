package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/metrograph/internal/feed"
	"github.com/vk/metrograph/internal/mapservice"
	"github.com/vk/metrograph/internal/metro"
)

const testFeed = "../feed/testdata/shanghai.hcl"

func newTestServer(t *testing.T, feedPath string) (*Server, *mapservice.Service) {
	t.Helper()
	svc := mapservice.New(metro.New(), mapservice.Options{FeedPath: feedPath})
	if feedPath != "" {
		_, err := svc.Reload(context.Background())
		require.NoError(t, err)
	}
	srv := NewServer(context.Background(), svc, Options{})
	t.Cleanup(srv.Close)
	return srv, svc
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMap(t *testing.T) {
	srv, _ := newTestServer(t, filepath.FromSlash(testFeed))
	rec := do(t, srv, http.MethodGet, "/api/map", "")
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decodeBody[mapservice.Snapshot](t, rec)
	assert.Len(t, snap.Stations, 8)
	assert.Len(t, snap.Lines, 3)
	assert.Len(t, snap.Edges, 8)
}

func TestBuildMapOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/lines", `{"id":"L1","name":"Line 1","color":"E3002A"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, body := range []string{
		`{"name":"A","x":0,"y":0}`,
		`{"name":"B","x":3,"y":4}`,
	} {
		rec = do(t, srv, http.MethodPost, "/api/stations", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodPost, "/api/edges", `{"from":"A","to":"B","line":"L1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	edge := decodeBody[mapservice.Edge](t, rec)
	assert.InDelta(t, 5.0, edge.Weight, 1e-9)
	assert.Equal(t, []string{"L1"}, edge.LineIDs)
	assert.Equal(t, []string{"E3002A"}, edge.Colors)
	assert.Equal(t, []string{"Line 1"}, edge.LineNames)

	rec = do(t, srv, http.MethodGet, "/api/lines/L1/stations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"line":{"id":"L1","name":"Line 1","color":"E3002A"},"stations":["A","B"]}`,
		rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/edges/B/A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"L1"}, decodeBody[mapservice.Edge](t, rec).LineIDs)
}

func TestErrorStatuses(t *testing.T) {
	srv, _ := newTestServer(t, filepath.FromSlash(testFeed))

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"duplicate station", http.MethodPost, "/api/stations", `{"name":"Xinzhuang","x":1,"y":1}`, http.StatusConflict},
		{"duplicate line", http.MethodPost, "/api/lines", `{"id":"L1"}`, http.StatusConflict},
		{"missing coordinates", http.MethodPost, "/api/stations", `{"name":"Nowhere"}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/lines", `{"id":"L9","colour":"000000"}`, http.StatusBadRequest},
		{"self loop", http.MethodPost, "/api/edges", `{"from":"Xinzhuang","to":"Xinzhuang","line":"L1"}`, http.StatusBadRequest},
		{"unknown station route", http.MethodPost, "/api/route", `{"from":"Xinzhuang","to":"Ghost"}`, http.StatusNotFound},
		{"not adjacent", http.MethodGet, "/api/edges/Xinzhuang/Longcao%20Road", "", http.StatusUnprocessableEntity},
		{"delete unknown", http.MethodDelete, "/api/stations/Ghost", "", http.StatusNotFound},
		{"line stations unknown", http.MethodGet, "/api/lines/L9/stations", "", http.StatusNotFound},
		{"no current route", http.MethodGet, "/api/route", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["error"])
		})
	}
}

func TestAddEdge_UnregisteredLine(t *testing.T) {
	srv, _ := newTestServer(t, filepath.FromSlash(testFeed))

	rec := do(t, srv, http.MethodPost, "/api/edges", `{"from":"Xinzhuang","to":"Waihuan Road","line":"L9"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	edge := decodeBody[mapservice.Edge](t, rec)
	assert.Equal(t, []string{"L1", "L9"}, edge.LineIDs)
	assert.Equal(t, []string{"E3002A"}, edge.Colors)
	assert.Equal(t, []string{"Line 1"}, edge.LineNames)
}

func TestRoute(t *testing.T) {
	srv, _ := newTestServer(t, filepath.FromSlash(testFeed))

	rec := do(t, srv, http.MethodPost, "/api/route", `{"from":"Xinzhuang","to":"Shilong Road"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	route := decodeBody[mapservice.Route](t, rec)
	assert.Equal(t, "Xinzhuang", route.Path[0])
	assert.Equal(t, "Shilong Road", route.Path[len(route.Path)-1])
	require.Len(t, route.Legs, 2)
	assert.Equal(t, []string{"Line 1"}, route.Legs[0].Lines)
	assert.Equal(t, []string{"Line 3"}, route.Legs[1].Lines)
	assert.Contains(t, route.Guide, "Transfer to Line 3")

	rec = do(t, srv, http.MethodGet, "/api/route", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, route, decodeBody[mapservice.Route](t, rec))
}

func TestClearAndReload(t *testing.T) {
	srv, svc := newTestServer(t, filepath.FromSlash(testFeed))

	var kinds []string
	svc.Subscribe(func(ev mapservice.Event) { kinds = append(kinds, ev.Kind) })

	rec := do(t, srv, http.MethodPost, "/api/clear", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	snap := decodeBody[mapservice.Snapshot](t, do(t, srv, http.MethodGet, "/api/map", ""))
	assert.Empty(t, snap.Stations)

	rec = do(t, srv, http.MethodPost, "/api/reload", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	counts := decodeBody[feed.Counts](t, rec)
	assert.Equal(t, 8, counts.Stations)
	assert.Equal(t, 3, counts.Lines)

	assert.Equal(t, []string{mapservice.EventCleared, mapservice.EventReloaded}, kinds)
}

func TestReloadWithoutFeed(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteStation(t *testing.T) {
	srv, _ := newTestServer(t, filepath.FromSlash(testFeed))

	rec := do(t, srv, http.MethodDelete, "/api/stations/Xinzhuang", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/edges/Xinzhuang/Waihuan%20Road", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	svc := mapservice.New(metro.New(), mapservice.Options{})
	srv := NewServer(context.Background(), svc, Options{AllowedOrigins: []string{"http://map.example"}})
	t.Cleanup(srv.Close)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://map.example")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://map.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://elsewhere.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouteResult(t *testing.T) {
	srv, _ := newTestServer(t, filepath.FromSlash(testFeed))

	got := srv.routeResult([]any{map[string]any{"from": "Xinzhuang", "to": "Shilong Road"}})
	require.Contains(t, got, "route")
	route := got["route"].(*mapservice.Route)
	assert.Equal(t, "Shilong Road", route.Path[len(route.Path)-1])

	got = srv.routeResult([]any{map[string]any{"from": "Xinzhuang"}})
	assert.Equal(t, "from and to are required", got["error"])

	got = srv.routeResult(nil)
	assert.Contains(t, got, "error")

	got = srv.routeResult([]any{map[string]any{"from": "Xinzhuang", "to": "Ghost"}})
	assert.Contains(t, got["error"], "Ghost")
}
