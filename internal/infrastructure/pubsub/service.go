// Package pubsub delivers custody events to webhook endpoints over HTTP.
package pubsub

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/pkg/circuitbreaker"
	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 15 * time.Second

type service struct {
	httpClient *client

	lock     *sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewService returns a WebhookNotifier whose requests time out after the
// given duration, or after 15 seconds if zero. Each endpoint is guarded by
// its own circuit breaker, so that an unreachable endpoint does not prevent
// notifying the others.
func NewService(requestTimeout time.Duration) ports.WebhookNotifier {
	if requestTimeout <= 0 {
		requestTimeout = defaultTimeout
	}
	return &service{
		httpClient: newHTTPClient(requestTimeout),
		lock:       &sync.Mutex{},
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (s *service) Notify(
	ctx context.Context, hooks []domain.Webhook, message []byte,
) error {
	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return s.doRequest(ctx, hook, message) })
	}
	return eg.Wait()
}

func (s *service) breaker(endpoint string) *gobreaker.CircuitBreaker {
	s.lock.Lock()
	defer s.lock.Unlock()

	cb, ok := s.breakers[endpoint]
	if !ok {
		cb = circuitbreaker.NewCircuitBreaker("webhook " + endpoint)
		s.breakers[endpoint] = cb
	}
	return cb
}

func (s *service) doRequest(
	ctx context.Context, hook domain.Webhook, payload []byte,
) error {
	_, err := s.breaker(hook.Endpoint).Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if hook.IsSecured() {
			tokenString, err := signToken(hook.Secret)
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := s.httpClient.post(ctx, hook.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return nil, fmt.Errorf(
				"webhook %s replied with status %d: %s",
				hook.ID, status, strings.TrimSpace(resp),
			)
		}
		return nil, nil
	})
	return err
}

func signToken(secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		IssuedAt: time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}
