// Package rosterfeed optionally fetches a team's starting roster file
// from a remote source instead of the local ROSTER_DIR, circuit-broken
// and rate-limited the same way the teacher protects its external
// sports-data calls (services/sports-data-service/internal/services/circuit_breaker.go).
// The roster-file parsing itself belongs to internal/rosterio (§6); this
// package only governs whether and how often a remote fetch is allowed.
package rosterfeed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/rosterio"
)

// Fetcher fetches a team's roster file body over HTTP, protected by a
// circuit breaker and a token-bucket rate limiter.
type Fetcher struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewFetcher builds a Fetcher; rps bounds the sustained request rate
// and burst 1 request (remote roster fetches are infrequent, ahead of
// a season or search run, never hot-path).
func NewFetcher(baseURL string, timeout time.Duration, rps float64, logger *logrus.Logger) *Fetcher {
	settings := gobreaker.Settings{
		Name:        "roster-feed",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"component": "rosterfeed",
					"from":      from.String(),
					"to":        to.String(),
				}).Info("circuit breaker state changed")
			}
		},
	}
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// FetchRoster fetches and parses a team's roster file from
// baseURL/<team>.roster.
func (f *Fetcher) FetchRoster(ctx context.Context, team string) (engine.Roster, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return engine.Roster{}, fmt.Errorf("rate limiter: %w", err)
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, team)
	})
	if err != nil {
		return engine.Roster{}, err
	}
	return result.(engine.Roster), nil
}

func (f *Fetcher) doFetch(ctx context.Context, team string) (engine.Roster, error) {
	url := fmt.Sprintf("%s/%s.roster", f.baseURL, team)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return engine.Roster{}, engine.NewIOError("failed building roster-feed request", err.Error())
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return engine.Roster{}, engine.NewIOError("roster-feed request failed", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.Roster{}, engine.NewIOError("roster-feed returned non-200", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return engine.Roster{}, engine.NewIOError("failed reading roster-feed body", err.Error())
	}

	return rosterio.Read(bytes.NewReader(body), team)
}
