package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/metrics"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sony/gobreaker/v2"
)

const (
	breakerName        = "search-index"
	defaultSearchLimit = 50
	maxErrorBody       = 4 << 10
)

type (
	SearchClient interface {
		CreateIndex(ctx context.Context, uid, primaryKey string) error
		AddDocuments(ctx context.Context, uid, primaryKey string, documents any) error
		Search(ctx context.Context, uid, query string, limit int, hits any) error
		SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error)
	}

	ClientConfig struct {
		BaseURL string
		APIKey  string
		Timeout time.Duration
	}

	// APIError is a non-2xx answer from the search service.
	APIError struct {
		StatusCode int
		Code       string `json:"code"`
		Message    string `json:"message"`
	}

	searchClient struct {
		baseURL    string
		apiKey     string
		httpClient *http.Client
		cb         *gobreaker.CircuitBreaker[[]byte]
	}
)

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("search service error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("search service error %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the failure is on the service side.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// IsRetryable is true for transport failures and retryable API errors.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}

func NewSearchClient(cfg ClientConfig) SearchClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 4xx answers mean the service is up
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Infow("circuit breaker state transition", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &searchClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		cb:         cb,
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (c *searchClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	res, err := c.cb.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, path, query, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	return res, err
}

func (c *searchClient) roundTrip(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil || apiErr.Message == "" {
			if len(respBody) > maxErrorBody {
				respBody = respBody[:maxErrorBody]
			}
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return nil, apiErr
	}

	return respBody, nil
}

// CreateIndex returns domain.ErrIndexAlreadyExists when the index is present.
func (c *searchClient) CreateIndex(ctx context.Context, uid, primaryKey string) error {
	_, err := c.do(ctx, http.MethodGet, "indexes/"+url.PathEscape(uid), nil, nil)
	if err == nil {
		return domain.ErrIndexAlreadyExists
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		return err
	}

	_, err = c.do(ctx, http.MethodPost, "indexes", nil, map[string]string{
		"uid":        uid,
		"primaryKey": primaryKey,
	})
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusConflict || apiErr.Code == "index_already_exists") {
		return domain.ErrIndexAlreadyExists
	}
	return err
}

func (c *searchClient) AddDocuments(ctx context.Context, uid, primaryKey string, documents any) error {
	query := url.Values{}
	if primaryKey != "" {
		query.Set("primaryKey", primaryKey)
	}
	_, err := c.do(ctx, http.MethodPost, "indexes/"+url.PathEscape(uid)+"/documents", query, documents)
	return err
}

func (c *searchClient) Search(ctx context.Context, uid, query string, limit int, hits any) error {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	body, err := c.do(ctx, http.MethodPost, "indexes/"+url.PathEscape(uid)+"/search", nil, map[string]any{
		"q":     query,
		"limit": limit,
	})
	if err != nil {
		return err
	}

	var res struct {
		Hits json.RawMessage `json:"hits"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil
	}
	return json.Unmarshal(res.Hits, hits)
}

func (c *searchClient) SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := c.Search(ctx, domain.RecipeIndexUID, query, defaultSearchLimit, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}
