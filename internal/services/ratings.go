package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// RatingProvider supplies per-player performance ratings for one team-day.
// How the ratings are scored from box-score stat lines is the ranking
// engine's business, not ours.
type RatingProvider interface {
	TeamDayRatings(ctx context.Context, teamID string, date time.Time) (map[string]float64, error)
}

// RankingEngineClient calls the external ranking engine over HTTP. Requests
// are rate limited, and a circuit breaker keeps a struggling engine from
// stalling every scheduled recompute.
type RankingEngineClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewRankingEngineClient creates a ranking engine client. requestsPerSecond
// bounds outbound call rate; the breaker trips after failureThreshold
// consecutive failures.
func NewRankingEngineClient(baseURL string, timeout time.Duration, requestsPerSecond int, failureThreshold int, logger *logrus.Logger) *RankingEngineClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	if failureThreshold <= 0 {
		failureThreshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ranking-engine",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Ranking engine circuit breaker state changed")
		},
	})

	return &RankingEngineClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		breaker: breaker,
		logger:  logger,
	}
}

type ratingsResponse struct {
	Ratings []struct {
		PlayerID string  `json:"player_id"`
		Rating   float64 `json:"rating"`
	} `json:"ratings"`
}

// TeamDayRatings fetches ratings for everyone rostered on teamID for the
// given day, keyed by player ID. Players absent from the response simply
// keep whatever rating they already carry.
func (c *RankingEngineClient) TeamDayRatings(ctx context.Context, teamID string, date time.Time) (map[string]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		url := fmt.Sprintf("%s/ratings/%s?date=%s", c.baseURL, teamID, date.Format("2006-01-02"))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("ranking engine returned status %d", resp.StatusCode)
		}

		var body ratingsResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode ratings: %w", err)
		}
		return &body, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch ratings for team %s: %w", teamID, err)
	}

	body := result.(*ratingsResponse)
	ratings := make(map[string]float64, len(body.Ratings))
	for _, r := range body.Ratings {
		ratings[r.PlayerID] = r.Rating
	}

	c.logger.WithFields(logrus.Fields{
		"team":    teamID,
		"date":    date.Format("2006-01-02"),
		"ratings": len(ratings),
	}).Debug("Fetched ratings from ranking engine")

	return ratings, nil
}
