// Package notify sends operator alerts for rating-search milestones
// (restart, completion). Adapted from the teacher's
// internal/services/twilio_sms.go and sms.go: same circuit-breaker +
// rate-limiter wrapped Twilio client, repurposed from OTP delivery to
// one-line run-status messages; the OTP-specific surface is dropped
// (§ DESIGN.md).
package notify

import (
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier sends a one-line operator message about a rating-search run.
type Notifier interface {
	Notify(message string) error
}

// MockNotifier logs through the standard log package (stderr by
// default) instead of sending a real message, used
// in development (§ AMBIENT STACK).
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier { return &MockNotifier{} }

func (n *MockNotifier) Notify(message string) error {
	log.Printf("MOCK NOTIFY: %s", message)
	return nil
}

// rateLimiter throttles outbound notifications per destination number
// so a noisy restart loop can't exhaust the Twilio quota.
type rateLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	return &rateLimiter{requests: make(map[string][]time.Time), maxRequests: maxRequests, window: window}
}

func (rl *rateLimiter) allow(key string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)
	kept := rl.requests[key][:0]
	for _, t := range rl.requests[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= rl.maxRequests {
		rl.requests[key] = kept
		return fmt.Errorf("rate limit exceeded: maximum %d notifications per %v", rl.maxRequests, rl.window)
	}
	rl.requests[key] = append(kept, now)
	return nil
}

// breaker is a minimal closed/open circuit breaker, the same shape as
// the teacher's simpleCircuitBreaker. It has no half-open state: once
// timeout has passed, an open breaker closes fully and its failure
// count resets.
type breaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	threshold   int
	timeout     time.Duration
	open        bool
}

func newBreaker(threshold int, timeout time.Duration) *breaker {
	return &breaker{threshold: threshold, timeout: timeout}
}

func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open && time.Since(b.lastFailure) > b.timeout {
		b.open = false
		b.failures = 0
	}
	return !b.open
}

func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.open = false
}

func (b *breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.lastFailure = time.Now()
	if b.failures >= b.threshold {
		b.open = true
	}
}

// TwilioNotifier sends notifications via the Twilio REST API.
type TwilioNotifier struct {
	client     *twilio.RestClient
	fromNumber string
	toNumber   string
	breaker    *breaker
	limiter    *rateLimiter
}

func NewTwilioNotifier(accountSID, authToken, fromNumber, toNumber string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{
		client:     client,
		fromNumber: fromNumber,
		toNumber:   toNumber,
		breaker:    newBreaker(5, 30*time.Second),
		limiter:    newRateLimiter(10, time.Hour),
	}
}

func (n *TwilioNotifier) Notify(message string) error {
	if !n.breaker.allow() {
		return fmt.Errorf("notification service temporarily unavailable")
	}
	if err := n.limiter.allow(n.toNumber); err != nil {
		return err
	}

	to, err := normalizePhoneNumber(n.toNumber)
	if err != nil {
		return fmt.Errorf("invalid destination number: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.fromNumber)
	params.SetBody(message)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		n.breaker.recordFailure()
		return fmt.Errorf("failed to send notification: %w", err)
	}
	n.breaker.recordSuccess()
	return nil
}

func normalizePhoneNumber(phone string) (string, error) {
	re := regexp.MustCompile(`[^\d+]`)
	cleaned := re.ReplaceAllString(phone, "")
	if !regexp.MustCompile(`^\+`).MatchString(cleaned) {
		if regexp.MustCompile(`^\d{10}$`).MatchString(cleaned) {
			cleaned = "+1" + cleaned
		} else {
			return "", fmt.Errorf("invalid phone number format")
		}
	}
	if !regexp.MustCompile(`^\+[1-9]\d{1,14}$`).MatchString(cleaned) {
		return "", fmt.Errorf("invalid phone number format")
	}
	return cleaned, nil
}

// RestartMessage formats the alert sent when a rating-search run hits
// its stale_limit and restarts from sims_best.
func RestartMessage(searchRunID string, step int) string {
	return fmt.Sprintf("pitchsim search %s restarted at step %d (stale limit reached)", searchRunID, step)
}

// CompleteMessage formats the alert sent when a rating-search run
// reaches its terminal step.
func CompleteMessage(searchRunID string, bestRMSE float64) string {
	return fmt.Sprintf("pitchsim search %s complete, best RMSE %.4f", searchRunID, bestRMSE)
}
