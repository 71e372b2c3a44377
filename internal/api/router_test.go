package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/api/handlers"
	"github.com/wonny/readytrade/internal/catalog"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scheduler"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/pkg/database"
	"github.com/wonny/readytrade/pkg/logger"
)

var testPlayers = []contracts.Player{
	{ID: 1, Name: "Ja'Marr Chase", Position: "WR", Team: "CIN", Value: 10519, RedraftValue: 10519, OverallRank: 1},
	{ID: 2, Name: "Travis Kelce", Position: "TE", Team: "KC", Value: 5000, RedraftValue: 5000, OverallRank: 50},
	{ID: 3, Name: "Josh Allen", Position: "QB", Team: "BUF", Value: 8900, RedraftValue: 9100, OverallRank: 6},
	{ID: 4, Name: "Josh Jacobs", Position: "RB", Team: "GB", Value: 6100, RedraftValue: 6900, OverallRank: 30},
}

type fakeSource struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *fakeSource) FetchPlayers(_ context.Context, _ contracts.LeagueSettings) ([]contracts.Player, error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return nil, contracts.NewFetchError("FantasyCalc", http.StatusServiceUnavailable, nil)
	}
	return testPlayers, nil
}

type fakeADP struct{}

func (fakeADP) FetchADP(_ context.Context, q contracts.ADPQuery) (*contracts.ADPResponse, error) {
	return &contracts.ADPResponse{
		Status:  "Success",
		Meta:    contracts.ADPMeta{Type: string(q.Type), Teams: q.Teams},
		Players: []contracts.ADPPlayer{{PlayerID: 2749, Name: "Christian McCaffrey", ADP: 1.3}},
	}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *fakeSource) {
	t.Helper()
	log := logger.Nop()
	src := &fakeSource{}
	cache := catalog.New(src, log)
	engine := scoring.Default()

	h := Handlers{
		Health:  handlers.NewHealthHandler(nil, nil, log),
		Players: handlers.NewPlayerHandler(cache, log),
		Trade:   handlers.NewTradeHandler(analyzer.NewEvaluator(cache, engine, nil, log), log),
		ADP:     handlers.NewADPHandler(catalog.NewADPBoards(fakeADP{}, nil, time.Hour, log), log),
		History: handlers.NewHistoryHandler(nil, log),
		Session: handlers.NewSessionHandler(cache, engine, 5*time.Millisecond, 0, nil, log),
	}
	return NewRouter(h, []string{"http://localhost:3000"}, log), src
}

func doRequest(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "readytrade-api")
}

type fakeDBHealth struct{ healthy bool }

func (f fakeDBHealth) HealthCheck(_ context.Context) database.HealthStatus {
	if !f.healthy {
		return database.HealthStatus{Error: "connection refused"}
	}
	return database.HealthStatus{Healthy: true, TotalConns: 2}
}

type fakeJobStats map[string]scheduler.JobStats

func (f fakeJobStats) GetJobStats() map[string]scheduler.JobStats { return f }

func TestHealth_ReportsDatabaseAndJobs(t *testing.T) {
	jobs := fakeJobStats{"catalog-prune": {JobName: "catalog-prune", TotalRuns: 3, SuccessCount: 3, SuccessRate: 1}}

	tests := []struct {
		name       string
		healthy    bool
		wantCode   int
		wantStatus string
	}{
		{"healthy database", true, http.StatusOK, "ok"},
		{"unreachable database", false, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(fakeDBHealth{healthy: tt.healthy}, jobs, logger.Nop())
			rec := httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			var body struct {
				Status   string                        `json:"status"`
				Service  string                        `json:"service"`
				Database database.HealthStatus         `json:"database"`
				Jobs     map[string]scheduler.JobStats `json:"jobs"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "readytrade-api", body.Service)
			assert.Equal(t, tt.healthy, body.Database.Healthy)
			assert.Equal(t, 3, body.Jobs["catalog-prune"].TotalRuns)
		})
	}
}

func TestGetPlayers_CachedAcrossRequests(t *testing.T) {
	router, src := newTestRouter(t)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, router, http.MethodGet, "/api/players?numTeams=12&ppr=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Count   int                `json:"count"`
			Players []contracts.Player `json:"players"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, 4, body.Count)
	}

	assert.Equal(t, int32(1), src.calls.Load())

	rec := doRequest(t, router, http.MethodGet, "/api/catalog/stats", nil)
	var stats catalog.Stats
	decodeBody(t, rec, &stats)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Fetches)
}

func TestGetPlayers_Errors(t *testing.T) {
	router, src := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/players?numTeams=40", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	src.fail.Store(true)
	rec = doRequest(t, router, http.MethodGet, "/api/players", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "FantasyCalc")
}

func TestSearchPlayers(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/players/search?q=josh&exclude=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Players []contracts.Player `json:"players"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, []int{4}, contracts.PlayerIDs(body.Players))

	rec = doRequest(t, router, http.MethodGet, "/api/players/search?q=josh&exclude=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateTrade(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/trade/evaluate", map[string]interface{}{
		"giving":  []int{1},
		"getting": []int{2},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result analyzer.TradeResult
	decodeBody(t, rec, &result)
	assert.Equal(t, contracts.CategoryVeryBad, result.Verdict.Category)
	assert.Equal(t, -55.2, result.Verdict.ValueDifference)
	assert.Equal(t, contracts.DefaultLeagueSettings, result.Settings)
}

func TestEvaluateTrade_Placeholder(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/trade/evaluate", map[string]interface{}{
		"giving": []int{1},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result analyzer.TradeResult
	decodeBody(t, rec, &result)
	assert.True(t, result.Verdict.Placeholder)
	assert.Equal(t, scoring.PlaceholderMessage, result.Verdict.Message)
}

func TestEvaluateTrade_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/trade/evaluate", map[string]interface{}{
		"giving": []int{99}, "getting": []int{1},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/trade/evaluate", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetADP(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/adp/ppr?teams=12", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var board contracts.ADPResponse
	decodeBody(t, rec, &board)
	assert.Equal(t, "ppr", board.Meta.Type)
	assert.Len(t, board.Players, 1)

	rec = doRequest(t, router, http.MethodGet, "/api/adp/superflex", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/adp/standard?teams=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluations_Disabled(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/evaluations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled": false, "evaluations": []}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/trade/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// readUntil reads server messages until match returns true
func readUntil(t *testing.T, conn *websocket.Conn, match func(handlers.ServerMessage) bool) handlers.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg handlers.ServerMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func TestSessionWebSocket(t *testing.T) {
	router, _ := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/session"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	settings := contracts.DefaultLeagueSettings
	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: handlers.ActionSettings, Settings: &settings}))
	msg := readUntil(t, conn, func(m handlers.ServerMessage) bool {
		return m.Type == handlers.MessageState && m.State.CatalogSize == 4
	})
	assert.True(t, msg.State.Verdict.Placeholder)

	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: handlers.ActionSearch, Side: "getting", Query: "JOSH"}))
	msg = readUntil(t, conn, func(m handlers.ServerMessage) bool {
		return m.Type == handlers.MessageResults && m.Results.Query == "JOSH"
	})
	assert.Equal(t, []int{3, 4}, contracts.PlayerIDs(msg.Results.Players))

	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: handlers.ActionAdd, Side: "giving", PlayerID: 1}))
	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: handlers.ActionAdd, Side: "getting", PlayerID: 2}))
	msg = readUntil(t, conn, func(m handlers.ServerMessage) bool {
		return m.Type == handlers.MessageState && len(m.State.Getting) == 1
	})
	assert.Equal(t, contracts.CategoryVeryBad, msg.State.Verdict.Category)

	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: handlers.ActionAdd, Side: "giving", PlayerID: 999}))
	msg = readUntil(t, conn, func(m handlers.ServerMessage) bool { return m.Type == handlers.MessageError })
	assert.Contains(t, msg.Error, "999")

	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: handlers.ActionReset}))
	msg = readUntil(t, conn, func(m handlers.ServerMessage) bool {
		return m.Type == handlers.MessageState && len(m.State.Giving) == 0 && len(m.State.Getting) == 0
	})
	assert.True(t, msg.State.Verdict.Placeholder)

	require.NoError(t, conn.WriteJSON(handlers.ClientMessage{Action: "teleport"}))
	msg = readUntil(t, conn, func(m handlers.ServerMessage) bool { return m.Type == handlers.MessageError })
	assert.Contains(t, msg.Error, "teleport")
}
