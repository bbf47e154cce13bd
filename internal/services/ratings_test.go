package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRankingEngineClient_TeamDayRatings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ratings/HAM", r.URL.Path)
		assert.Equal(t, "2026-03-14", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ratings":[{"player_id":"p-1","rating":75.5},{"player_id":"p-2","rating":82.3}]}`))
	}))
	defer server.Close()

	client := NewRankingEngineClient(server.URL, 5*time.Second, 100, 5, testLogger())
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	ratings, err := client.TeamDayRatings(context.Background(), "HAM", date)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"p-1": 75.5, "p-2": 82.3}, ratings)
}

func TestRankingEngineClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRankingEngineClient(server.URL, 5*time.Second, 100, 5, testLogger())

	_, err := client.TeamDayRatings(context.Background(), "HAM", time.Now().UTC())
	assert.Error(t, err)
}

func TestRankingEngineClient_BreakerTripsAfterConsecutiveFailures(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRankingEngineClient(server.URL, 5*time.Second, 100, 2, testLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.TeamDayRatings(ctx, "HAM", time.Now().UTC())
		assert.Error(t, err)
	}

	// After two consecutive failures the breaker opens and stops hitting
	// the engine at all.
	assert.Equal(t, 2, hits)
}
