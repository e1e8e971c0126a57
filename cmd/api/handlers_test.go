package main

import (
	"HoopStatApi/internal/assert"
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/extract"
	"HoopStatApi/internal/gamehub"
	"HoopStatApi/internal/jsonlog"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	var cfg config
	cfg.version = "test"
	cfg.env = "testing"
	cfg.store.kind = "memory"

	state := data.NewState(data.NewMemoryStore())
	app := &application{
		logger: jsonlog.New(io.Discard, jsonlog.LevelOff),
		config: cfg,
		state:  state,
		hubs:   gamehub.NewRegistry(state),
	}
	t.Cleanup(app.hubs.Shutdown)

	return app
}

type testServer struct {
	*httptest.Server
	t *testing.T
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, t: t}
}

func (ts *testServer) do(method, path string, body any, header http.Header) (int, map[string]any) {
	ts.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		js, err := json.Marshal(b)
		assert.NilError(ts.t, err)
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	assert.NilError(ts.t, err)
	for k, v := range header {
		req.Header[k] = v
	}

	res, err := ts.Client().Do(req)
	assert.NilError(ts.t, err)
	defer res.Body.Close()

	var out map[string]any
	err = json.NewDecoder(res.Body).Decode(&out)
	assert.NilError(ts.t, err)

	return res.StatusCode, out
}

func field(m map[string]any, path ...string) any {
	var cur any = m
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[p]
	}
	return cur
}

func createPlayer(t *testing.T, ts *testServer) string {
	t.Helper()

	status, body := ts.do(http.MethodPost, "/v1/players", map[string]string{
		"name": "Jordan", "number": "23", "team": "Bulls"}, nil)
	assert.Equal(t, status, http.StatusCreated)
	return field(body, "player", "id").(string)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, body := ts.do(http.MethodGet, "/v1/healthcheck", nil, nil)

	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "status"), any("available"))
	assert.Equal(t, field(body, "features", "schedule_import"), any(false))
}

func TestPlayers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	id := createPlayer(t, ts)

	status, body := ts.do(http.MethodGet, "/v1/players/"+id, nil, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "player", "season"), any(data.DefaultSeason))

	status, body = ts.do(http.MethodPatch, "/v1/players/"+id, map[string]string{
		"season": "Winter 2025"}, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "player", "season"), any("Winter 2025"))
	assert.Equal(t, field(body, "player", "name"), any("Jordan"))

	tests := []struct {
		name   string
		body   any
		status int
		key    string
	}{
		{"Missing Name", map[string]string{"number": "1"}, http.StatusUnprocessableEntity, "name"},
		{"Bad Season", map[string]string{"name": "A", "number": "1", "season": "Spring 1999"},
			http.StatusUnprocessableEntity, "season"},
		{"Unknown Field", map[string]string{"name": "A", "number": "1", "height": "6'6"},
			http.StatusBadRequest, ""},
		{"Bad JSON", []byte(`{"name":`), http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ts.do(http.MethodPost, "/v1/players", tt.body, nil)
			assert.Equal(t, status, tt.status)
			if tt.key != "" {
				assert.Equal(t, field(body, "error", tt.key) != nil, true)
			}
		})
	}

	status, body = ts.do(http.MethodGet, "/v1/players", nil, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, len(field(body, "players").([]any)), 1)

	status, _ = ts.do(http.MethodGet, "/v1/players/nope", nil, nil)
	assert.Equal(t, status, http.StatusNotFound)
}

func TestTrackingFlow(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	playerID := createPlayer(t, ts)

	status, body := ts.do(http.MethodPost, "/v1/tracking", map[string]string{"player_id": playerID}, nil)
	assert.Equal(t, status, http.StatusCreated)
	sessionID := field(body, "session", "id").(string)

	for _, e := range []map[string]string{
		{"shot": "2pt", "action": "make"},
		{"shot": "2pt", "action": "make"},
		{"shot": "2pt", "action": "make"},
		{"shot": "2pt", "action": "miss"},
		{"shot": "2pt", "action": "miss"},
		{"shot": "3pt", "action": "make"},
		{"shot": "3pt", "action": "miss"},
		{"shot": "ft", "action": "make"},
		{"shot": "ft", "action": "make"},
		{"shot": "ft", "action": "miss"},
	} {
		status, _ := ts.do(http.MethodPost, "/v1/tracking/"+sessionID+"/events", e, nil)
		assert.Equal(t, status, http.StatusOK)
	}
	for _, stat := range []string{"off_reb", "off_reb", "off_reb", "off_reb", "def_reb",
		"def_reb", "def_reb", "def_reb", "def_reb", "def_reb", "stl", "stl", "blk"} {
		status, _ := ts.do(http.MethodPost, "/v1/tracking/"+sessionID+"/events",
			map[string]string{"stat": stat, "action": "add"}, nil)
		assert.Equal(t, status, http.StatusOK)
	}
	for i := 0; i < 11; i++ {
		ts.do(http.MethodPost, "/v1/tracking/"+sessionID+"/events",
			map[string]string{"stat": "ast", "action": "add"}, nil)
	}

	status, _ = ts.do(http.MethodPost, "/v1/tracking/"+sessionID+"/events",
		map[string]string{"stat": "dunks", "action": "add"}, nil)
	assert.Equal(t, status, http.StatusBadRequest)

	status, body = ts.do(http.MethodGet, "/v1/tracking/"+sessionID, nil, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "session", "derived", "points"), any(float64(11)))
	assert.Equal(t, field(body, "session", "derived", "rebounds"), any(float64(10)))

	// refused without an opponent, session stays open
	status, body = ts.do(http.MethodPost, "/v1/tracking/"+sessionID+"/finalize", nil, nil)
	assert.Equal(t, status, http.StatusUnprocessableEntity)
	assert.Equal(t, field(body, "error", "opponent"), any("must be provided"))

	status, _ = ts.do(http.MethodPatch, "/v1/tracking/"+sessionID, map[string]string{
		"opponent": "Eastside", "date": "2025-11-04"}, nil)
	assert.Equal(t, status, http.StatusOK)

	status, body = ts.do(http.MethodPost, "/v1/tracking/"+sessionID+"/finalize", nil, nil)
	assert.Equal(t, status, http.StatusCreated)
	assert.Equal(t, field(body, "game", "badge"), any("Triple-Double"))
	assert.Equal(t, field(body, "game", "classification", "triple_double"), any(true))
	assert.Equal(t, field(body, "game", "classification", "double_double"), any(true))

	status, _ = ts.do(http.MethodGet, "/v1/tracking/"+sessionID, nil, nil)
	assert.Equal(t, status, http.StatusNotFound)

	status, body = ts.do(http.MethodGet, "/v1/players/"+playerID+"/games", nil, nil)
	assert.Equal(t, status, http.StatusOK)
	games := field(body, "games").([]any)
	assert.Equal(t, len(games), 1)
	assert.Equal(t, field(games[0].(map[string]any), "opponent"), any("Eastside"))

	status, body = ts.do(http.MethodGet, "/v1/players/"+playerID+"/card", nil, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "card", "season", "averages", "points"), any("11.0"))
	assert.Equal(t, field(body, "card", "season", "percentages", "ft"), any("67%"))
	assert.Equal(t, len(field(body, "card", "notable_games").([]any)), 1)

	status, body = ts.do(http.MethodGet, "/v1/players/"+playerID+"/dashboard", nil, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "dashboard", "total_points"), any(float64(11)))
}

func TestEmptyPlayerCard(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	playerID := createPlayer(t, ts)

	status, body := ts.do(http.MethodGet, "/v1/players/"+playerID+"/card", nil, nil)
	assert.Equal(t, status, http.StatusOK)
	for _, avg := range []string{"points", "rebounds", "assists", "steals", "blocks"} {
		assert.Equal(t, field(body, "card", "season", "averages", avg), any("0.0"))
	}
	for _, pct := range []string{"fg", "three", "ft"} {
		assert.Equal(t, field(body, "card", "season", "percentages", pct), any("0%"))
	}
}

func TestSchedule(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	playerID := createPlayer(t, ts)
	path := "/v1/players/" + playerID + "/schedule"

	status, body := ts.do(http.MethodPost, path, map[string]string{
		"opponent": "Northview", "date": "2025-11-18"}, nil)
	assert.Equal(t, status, http.StatusCreated)
	gameID := field(body, "game", "id").(string)

	status, _ = ts.do(http.MethodPost, path, map[string]string{
		"opponent": "Eastside", "date": "2025-11-04", "time": "6:30 PM"}, nil)
	assert.Equal(t, status, http.StatusCreated)

	status, body = ts.do(http.MethodPost, path, map[string]string{"opponent": "", "date": "2025-11-25"}, nil)
	assert.Equal(t, status, http.StatusUnprocessableEntity)
	assert.Equal(t, field(body, "error", "opponent"), any("must be provided"))

	status, body = ts.do(http.MethodGet, path, nil, nil)
	assert.Equal(t, status, http.StatusOK)
	schedule := field(body, "schedule").([]any)
	assert.Equal(t, len(schedule), 2)
	assert.Equal(t, field(schedule[0].(map[string]any), "opponent"), any("Eastside"))

	status, _ = ts.do(http.MethodDelete, path+"/"+gameID, nil, nil)
	assert.Equal(t, status, http.StatusOK)
	status, _ = ts.do(http.MethodDelete, path+"/"+gameID, nil, nil)
	assert.Equal(t, status, http.StatusNotFound)
}

type fakeExtractor struct {
	entries []extract.Entry
	err     error
}

func (f fakeExtractor) Extract(_ context.Context, document []byte, _ string) ([]extract.Entry, error) {
	if len(document) == 0 {
		return nil, extract.ErrEmptyDocument
	}
	return f.entries, f.err
}

func multipartDocument(t *testing.T, field string, content []byte) ([]byte, http.Header) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "schedule.png")
	assert.NilError(t, err)
	_, err = fw.Write(content)
	assert.NilError(t, err)
	assert.NilError(t, mw.Close())

	header := make(http.Header)
	header.Set("Content-Type", mw.FormDataContentType())
	return buf.Bytes(), header
}

func TestImportSchedule(t *testing.T) {
	tests := []struct {
		name      string
		extractor extract.Extractor
		status    int
		added     int
	}{
		{
			name:      "Not Configured",
			extractor: nil,
			status:    http.StatusServiceUnavailable,
		},
		{
			name: "Success",
			extractor: fakeExtractor{entries: []extract.Entry{
				{Date: "2025-11-04", Opponent: "Eastside"},
				{Date: "2025-11-11", Opponent: "Northview", Time: "7:00 PM"},
				{Date: "2025-11-18", Opponent: "Westlake"},
			}},
			status: http.StatusCreated,
			added:  3,
		},
		{
			name:      "Extraction Failed",
			extractor: fakeExtractor{err: extract.ErrMalformedResponse},
			status:    http.StatusBadGateway,
		},
		{
			name:      "Busy",
			extractor: fakeExtractor{err: extract.ErrBusy},
			status:    http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			app.extractor = tt.extractor
			ts := newTestServer(t, app.routes())

			playerID := createPlayer(t, ts)
			path := "/v1/players/" + playerID + "/schedule"
			for _, opp := range []string{"Central", "Southside"} {
				ts.do(http.MethodPost, path, map[string]string{"opponent": opp, "date": "2025-12-01"}, nil)
			}

			body, header := multipartDocument(t, "document", []byte("\x89PNG\r\n\x1a\nfake"))
			status, out := ts.do(http.MethodPost, path+"/import", body, header)
			assert.Equal(t, status, tt.status)
			if tt.status == http.StatusBadGateway {
				assert.Equal(t, field(out, "error"),
					any("could not extract schedule, please try a clearer image"))
			}

			_, out = ts.do(http.MethodGet, path, nil, nil)
			assert.Equal(t, len(field(out, "schedule").([]any)), 2+tt.added)
		})
	}
}

func TestImportScheduleMissingDocument(t *testing.T) {
	app := newTestApplication(t)
	app.extractor = fakeExtractor{}
	ts := newTestServer(t, app.routes())

	playerID := createPlayer(t, ts)

	body, header := multipartDocument(t, "photo", []byte("x"))
	status, _ := ts.do(http.MethodPost, "/v1/players/"+playerID+"/schedule/import", body, header)
	assert.Equal(t, status, http.StatusBadRequest)
}

func TestSettings(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, body := ts.do(http.MethodGet, "/v1/settings", nil, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, field(body, "settings", "dark_mode"), any(false))

	status, _ = ts.do(http.MethodPut, "/v1/settings", map[string]any{}, nil)
	assert.Equal(t, status, http.StatusUnprocessableEntity)

	status, body = ts.do(http.MethodPut, "/v1/settings", map[string]bool{"dark_mode": true}, nil)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, app.state.DarkMode(), true)
}

func TestShareCardDisabled(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	playerID := createPlayer(t, ts)
	status, _ := ts.do(http.MethodPost, "/v1/players/"+playerID+"/card/share",
		map[string]string{"email": "coach@example.com"}, nil)
	assert.Equal(t, status, http.StatusServiceUnavailable)
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("courtside"), bcrypt.MinCost)
	assert.NilError(t, err)

	app := newTestApplication(t)
	app.config.auth.keyHash = string(hash)
	ts := newTestServer(t, app.routes())

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"Healthcheck Is Open", "/v1/healthcheck", "", http.StatusOK},
		{"Missing Key", "/v1/players", "", http.StatusUnauthorized},
		{"Wrong Key", "/v1/players", "Bearer bench", http.StatusUnauthorized},
		{"Malformed Header", "/v1/players", "courtside", http.StatusUnauthorized},
		{"Valid Key", "/v1/players", "Bearer courtside", http.StatusOK},
		{"Query Key", "/v1/players?key=courtside", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := make(http.Header)
			if tt.header != "" {
				header.Set("Authorization", tt.header)
			}
			status, _ := ts.do(http.MethodGet, tt.path, nil, header)
			assert.Equal(t, status, tt.status)
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(t)
	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, rr.Code, http.StatusInternalServerError)
	assert.Equal(t, rr.Header().Get("Connection"), "close")
}
