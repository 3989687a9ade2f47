package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topichat/internal/config"
	"topichat/internal/httpserver"
	"topichat/internal/notify"
	"topichat/internal/service"
	"topichat/internal/store/memory"
	"topichat/internal/ws"
)

type testEnv struct {
	server *httptest.Server
	store  *memory.TopicStore
	stats  *memory.Stats
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppName:     "topichat-test",
		CORSOrigins: []string{"http://localhost:3000"},
	}

	store := memory.NewTopicStore()
	reportLog := memory.NewReportLog()
	stats := memory.NewStats(store)
	notifier := notify.NewLogNotifier(zerolog.Nop())

	hub := ws.NewHub(store, stats, zerolog.Nop())
	topicSvc := service.NewTopicService(store, stats, hub, zerolog.Nop())
	reportSvc := service.NewReportService(reportLog, stats, notifier, zerolog.Nop())
	summarySvc := service.NewSummaryService(stats, notifier, zerolog.Nop())

	router := httpserver.NewRouter(cfg, topicSvc, reportSvc, summarySvc, stats, hub, zerolog.Nop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, store: store, stats: stats}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateTopicEndpoint(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Created", func(t *testing.T) {
		resp, body := env.postJSON(t, "/api/topics", map[string]any{
			"name":        "General",
			"description": "",
			"sessionId":   "A",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		topic := body["topic"].(map[string]any)
		assert.Equal(t, "General", topic["name"])
		assert.Equal(t, float64(0), topic["messageCount"])
		assert.NotEmpty(t, topic["id"])
	})

	t.Run("MissingName", func(t *testing.T) {
		resp, body := env.postJSON(t, "/api/topics", map[string]any{
			"sessionId": "A",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	})

	t.Run("MissingSession", func(t *testing.T) {
		resp, _ := env.postJSON(t, "/api/topics", map[string]any{
			"name": "NoSession",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetTopicEndpoints(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.store.CreateTopic("General", "talk", "A")
	require.NoError(t, err)
	_, err = env.store.AppendMessage(created.ID, "hi", "A")
	require.NoError(t, err)

	t.Run("List", func(t *testing.T) {
		resp, body := env.get(t, "/api/topics")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		topics := body["topics"].([]any)
		require.Len(t, topics, 1)
		first := topics[0].(map[string]any)
		assert.Equal(t, float64(1), first["messageCount"])
		_, hasCreator := first["createdBy"]
		assert.False(t, hasCreator, "list projection must omit the creator session")
	})

	t.Run("GetByID", func(t *testing.T) {
		resp, body := env.get(t, "/api/topics/"+created.ID)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		topic := body["topic"].(map[string]any)
		assert.Equal(t, created.ID, topic["id"])
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, body := env.get(t, "/api/topics/missing")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	})

	t.Run("Messages", func(t *testing.T) {
		resp, body := env.get(t, "/api/topics/"+created.ID+"/messages")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		msgs := body["messages"].([]any)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hi", msgs[0].(map[string]any)["content"])
	})
}

func TestReportEndpoint(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Created", func(t *testing.T) {
		resp, body := env.postJSON(t, "/api/report", map[string]any{
			"type":      "topic",
			"targetId":  "topic-1",
			"reason":    "spam",
			"sessionId": "B",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, 1, env.stats.Snapshot().TotalReports)
	})

	t.Run("MissingFields", func(t *testing.T) {
		resp, _ := env.postJSON(t, "/api/report", map[string]any{
			"type":      "topic",
			"sessionId": "B",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("BadType", func(t *testing.T) {
		resp, _ := env.postJSON(t, "/api/report", map[string]any{
			"type":      "user",
			"targetId":  "x",
			"reason":    "y",
			"sessionId": "B",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStatsAndSummaryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	topic, err := env.store.CreateTopic("General", "", "A")
	require.NoError(t, err)
	_, err = env.store.AppendMessage(topic.ID, "hi", "A")
	require.NoError(t, err)
	env.stats.RecordMessage()
	env.stats.RecordTopicCreated()

	t.Run("StatsDoesNotReset", func(t *testing.T) {
		resp, body := env.get(t, "/api/stats")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		stats := body["stats"].(map[string]any)
		assert.Equal(t, float64(1), stats["messages"])
		assert.Equal(t, float64(1), stats["activeUsers"])
		assert.Equal(t, float64(1), stats["totalTopicsInDb"])

		assert.Equal(t, 1, env.stats.Snapshot().TotalMessages)
	})

	t.Run("SendSummaryResets", func(t *testing.T) {
		resp, body := env.postJSON(t, "/api/send-summary", map[string]any{})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		summary := body["summary"].(map[string]any)
		assert.Equal(t, float64(1), summary["totalMessages"])

		assert.Equal(t, 0, env.stats.Snapshot().TotalMessages)
	})
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}
